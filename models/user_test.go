package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_CalculateNewPoints(t *testing.T) {
	tests := []struct {
		name     string
		points   int64
		change   int64
		expected int64
	}{
		{"award", 10, 5, 15},
		{"deduction", 10, -4, 6},
		{"deduction clamps at zero", 3, -10, 0},
		{"large award saturates", 10, math.MaxInt64, math.MaxInt64},
		{"award at ceiling stays", math.MaxInt64, 1, math.MaxInt64},
		{"smallest deduction clamps", 10, math.MinInt64, 0},
		{"zero change", 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Points: tt.points}
			assert.Equal(t, tt.expected, user.CalculateNewPoints(tt.change))
		})
	}
}

func TestUser_HasPoints(t *testing.T) {
	assert.False(t, (&User{}).HasPoints())
	assert.True(t, (&User{Points: 1}).HasPoints())
}
