package pure_utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPrecision(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		sigFigs int
		want    float64
	}{
		{name: "nominal", value: 1.23456789, sigFigs: 7, want: 1.234568},
		{name: "integer part only", value: 123456789, sigFigs: 3, want: 123000000},
		{name: "small value", value: 0.000123456, sigFigs: 4, want: 0.0001235},
		{name: "half rounds up", value: 1.25, sigFigs: 2, want: 1.3},
		{name: "negative half rounds away from zero", value: -1.25, sigFigs: 2, want: -1.3},
		{name: "zero", value: 0, sigFigs: 7, want: 0},
		{name: "negative", value: -9.87654321, sigFigs: 5, want: -9.8765},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToPrecision(tt.value, tt.sigFigs), 1e-12)
		})
	}
}

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(3.0, 3.0000000001, DefaultSignificantFigures))
	assert.True(t, AlmostEqual(1.0/3.0, 0.3333333, DefaultSignificantFigures))
	assert.False(t, AlmostEqual(3.0, 3.001, DefaultSignificantFigures))
	assert.False(t, AlmostEqual(math.NaN(), math.NaN(), DefaultSignificantFigures))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 2.0, RoundHalfUp(1.5))
	assert.Equal(t, -2.0, RoundHalfUp(-1.5))
	assert.Equal(t, 1.0, RoundHalfUp(0.5))
	assert.Equal(t, 0.0, RoundHalfUp(0.4))
}
