package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSumAndMulInt(t *testing.T) {
	total := Sum(FromFloat(10.5), FromFloat(0.25), MulInt(FromFloat(3.1), 2))
	require.True(t, total.Equal(decimal.RequireFromString("16.95")), "got %s", total)
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		whole string
		want  string
	}{
		{name: "margin", part: "7500", whole: "10300", want: "72.82"},
		{name: "markup", part: "7500", whole: "2500", want: "300"},
		{name: "zero denominator", part: "10", whole: "0", want: "0"},
		{name: "negative denominator", part: "10", whole: "-5", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.whole))
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	_, err := FromString("12,50")
	require.Error(t, err)

	d, err := FromString("12.505")
	require.NoError(t, err)
	require.Equal(t, "12.51", d.StringFixed(2))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "Rs. 1250.50", Format("Rs.", FromFloat(1250.5)))
	require.Equal(t, "99.00", Format("", FromFloat(99)))
}
