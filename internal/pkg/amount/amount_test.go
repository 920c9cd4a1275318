package amount

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     string
		wantErr  error
	}{
		{name: "half unit with six decimals", amount: "0.50", decimals: 6, want: "500000"},
		{name: "whole amount", amount: "12", decimals: 6, want: "12000000"},
		{name: "eighteen decimals", amount: "1.000000000000000001", decimals: 18, want: "1000000000000000001"},
		{name: "zero", amount: "0", decimals: 6, want: "0"},
		{name: "too precise", amount: "0.0000001", decimals: 6, wantErr: ErrTooPrecise},
		{name: "negative", amount: "-1", decimals: 6, wantErr: ErrNegative},
		{name: "negative decimals", amount: "1", decimals: -1, wantErr: ErrInvalidDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFromBaseUnits(t *testing.T) {
	got := FromBaseUnits(big.NewInt(500000), 6)
	assert.True(t, got.Equal(decimal.RequireFromString("0.5")))

	assert.True(t, FromBaseUnits(nil, 6).IsZero())
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"0.000001", "3.14", "1000000", "999999.999999"} {
		d := decimal.RequireFromString(s)
		base, err := ToBaseUnits(d, 6)
		require.NoError(t, err)
		assert.True(t, FromBaseUnits(base, 6).Equal(d), s)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("10.25")
	require.NoError(t, err)
	assert.Equal(t, "10.25", d.String())

	_, err = Parse("abc")
	assert.Error(t, err)

	_, err = Parse("0")
	assert.Error(t, err)

	_, err = Parse("-3")
	assert.Error(t, err)
}
