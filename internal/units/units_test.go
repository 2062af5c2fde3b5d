package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"1.5", 18, "1500000000000000000"},
		{"1", 6, "1000000"},
		{"0.000001", 6, "1"},
		{"0.0000015", 6, "2"},
		{" 42 ", 0, "42"},
	}
	for _, tt := range tests {
		got, err := ParseUnits(tt.amount, tt.decimals)
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.want, got, tt.amount)
	}

	_, err := ParseUnits("abc", 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ParseUnits("1", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatUnits(t *testing.T) {
	got, err := FormatUnits("1500000000000000000", 18)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got)

	got, err = FormatUnits("310000000000000", 18)
	require.NoError(t, err)
	assert.Equal(t, "0.00031", got)

	got, err = FormatUnits("2500000", 6)
	require.NoError(t, err)
	assert.Equal(t, "2.5", got)

	_, err = FormatUnits("1.5", 6)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestHalf(t *testing.T) {
	got, err := Half("1000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", got)

	_, err = Half("x")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
