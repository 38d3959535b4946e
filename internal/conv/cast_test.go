package conv

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		in   int
		want uint32
	}{
		{0, 0},
		{123, 123},
		{math.MaxInt32, math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.in), func(t *testing.T) {
			got, err := IntToUint32(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := IntToUint32(-1)
	assert.ErrorIs(t, err, ErrOverflow)

	if strconv.IntSize == 64 {
		big := uint64(math.MaxUint32) + 1
		_, err = IntToUint32(int(big))
		assert.ErrorIs(t, err, ErrOverflow)
	}
}

func TestMustIntToUint32(t *testing.T) {
	assert.Equal(t, uint32(7), MustIntToUint32(7))
	assert.Panics(t, func() { MustIntToUint32(-3) })
}
