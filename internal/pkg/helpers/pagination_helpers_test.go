package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		start, end        int
	}{
		{"first page", 1, 10, 25, 0, 10},
		{"last partial page", 3, 10, 25, 20, 25},
		{"past the end", 4, 10, 25, 25, 25},
		{"page below one", 0, 10, 25, 0, 10},
		{"size falls back to default", 1, 0, 120, 0, DefaultPageSize},
		{"empty list", 1, 10, 0, 0, 0},
		{"largest page number", math.MaxInt, DefaultPageSize, 3, 3, 3},
		{"largest page and size", math.MaxInt, MaxPageSize, 3, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(DefaultPageSize+1, MaxPageSize+1))
}
