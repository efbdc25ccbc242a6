package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, GenderOther.Valid())
	assert.False(t, Gender("male").Valid())

	assert.True(t, AttendanceAbsent.Valid())
	assert.False(t, AttendanceStatus("Late").Valid())

	assert.True(t, FeeOverdue.Valid())
	assert.False(t, FeeStatus("Waived").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("Staff").Valid())
}

func TestLetterGrades(t *testing.T) {
	assert.Len(t, LetterGrades, 11)
	for _, g := range LetterGrades {
		assert.True(t, g.Valid(), g)
	}
	for _, g := range []LetterGrade{"E", "A++", "", "a"} {
		assert.False(t, g.Valid(), g)
	}
}
