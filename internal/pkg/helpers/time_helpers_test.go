package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-10 20:30 UTC is already 2024-03-11 in Tokyo
	instant := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		loc  *time.Location
		want time.Time
	}{
		{"utc", time.UTC, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"nil means utc", nil, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"ahead of utc", tokyo, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateOf(instant, tt.loc)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestToday(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC) }
	assert.Equal(t, "2024-06-01", FormatDate(Today(now, time.UTC)))
	assert.Equal(t, "2024-06-02", FormatDate(Today(now, time.FixedZone("X", 3600))))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC).Equal(got))

	for _, bad := range []string{"", "2023-02-29", "29/02/2024", "2024-2-9"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestTruncateDateKeepsOwnZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2024, 1, 31, 23, 0, 0, 0, est)

	assert.Equal(t, "2024-01-31", FormatDate(TruncateDate(late)))
}

func TestFormatOptionalDate(t *testing.T) {
	assert.Equal(t, "-", FormatOptionalDate(nil))
	d := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-09-01", FormatOptionalDate(&d))
}
