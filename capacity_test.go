package gochunk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapacity(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int
		wantErr error
	}{
		{name: "valid range", lo: 1, hi: 4},
		{name: "equal bounds", lo: 4, hi: 4},
		{name: "zero minimum", lo: 0, hi: 10},
		{name: "lo greater than hi", lo: 2, hi: 1, wantErr: ErrInvalidCapacity},
		{name: "negative lo", lo: -1, hi: 4, wantErr: ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCapacity(tt.lo, tt.hi)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lo, c.Lo)
			assert.Equal(t, tt.hi, c.Hi)
		})
	}
}

func TestCapacityFits(t *testing.T) {
	c, err := NewCapacity(3, 5)
	require.NoError(t, err)

	assert.Equal(t, FitUnder, c.Fits(2))
	assert.Equal(t, FitOk, c.Fits(3))
	assert.Equal(t, FitOk, c.Fits(5))
	assert.Equal(t, FitOver, c.Fits(6))
}

func TestCapacityHasMinimum(t *testing.T) {
	zero, err := NewCapacity(0, 10)
	require.NoError(t, err)
	assert.False(t, zero.hasMinimum())

	nonZero, err := NewCapacity(1, 10)
	require.NoError(t, err)
	assert.True(t, nonZero.hasMinimum())
}
