package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{112.5349, 2, 112.53},
		{14.275, 1, 14.3},
		{9.999, 2, 10},
		{-3.14159, 3, -3.142},
		{7, 0, 7},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 1e-9)
	}
}
