package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takibi/backend/internal/domain/shared"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "turkish format with sign", input: "12.345,67 ₺", want: 1234567},
		{name: "plain comma decimal", input: "1,5", want: 150},
		{name: "dot decimal", input: "1.5", want: 150},
		{name: "dot thousands no decimal", input: "1.234", want: 123400},
		{name: "both separators", input: "1.234,56", want: 123456},
		{name: "english style", input: "1,234.56", want: 123456},
		{name: "thin space grouping", input: "12 345,67", want: 1234567},
		{name: "integer", input: "500", want: 50000},
		{name: "half up rounding", input: "0,005", want: 1},
		{name: "TL suffix", input: "250 TL", want: 25000},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, shared.ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "12.345,67 ₺", FormatCents(1234567))
	assert.Equal(t, "0,00 ₺", FormatCents(0))
	assert.Equal(t, "0,05 ₺", FormatCents(5))
	assert.Equal(t, "1.000.000,00 ₺", FormatCents(100000000))
	assert.Equal(t, "-1.234,50 ₺", FormatCents(-123450))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"12.345,67 ₺", "0,05 ₺", "3.000,00 ₺"} {
		cents, err := ParseCents(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatCents(cents))
	}
}

func TestPercentageCents(t *testing.T) {
	// 10% of 50.000,00
	assert.Equal(t, int64(500000), PercentageCents(5000000, 10))
	// 12.5% of 1,00 rounds half up
	assert.Equal(t, int64(13), PercentageCents(100, 12.5))
	assert.Equal(t, int64(0), PercentageCents(0, 33))
}

func TestSplitCents(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		shares := SplitCents(1500000, 5)
		require.Len(t, shares, 5)
		for _, s := range shares {
			assert.Equal(t, int64(300000), s)
		}
	})

	t.Run("remainder absorbed by last share", func(t *testing.T) {
		shares := SplitCents(1000, 3)
		require.Len(t, shares, 3)
		assert.Equal(t, int64(333), shares[0])
		assert.Equal(t, int64(333), shares[1])
		assert.Equal(t, int64(334), shares[2])

		var sum int64
		for _, s := range shares {
			sum += s
		}
		assert.Equal(t, int64(1000), sum)
	})

	t.Run("single share", func(t *testing.T) {
		shares := SplitCents(777, 1)
		require.Len(t, shares, 1)
		assert.Equal(t, int64(777), shares[0])
	})

	t.Run("total smaller than count", func(t *testing.T) {
		shares := SplitCents(2, 4)
		require.Len(t, shares, 4)
		assert.Equal(t, []int64{1, 1, 0, 0}, shares)

		var sum int64
		for _, s := range shares {
			sum += s
			assert.GreaterOrEqual(t, s, int64(0))
		}
		assert.Equal(t, int64(2), sum)
	})

	t.Run("non positive count", func(t *testing.T) {
		assert.Nil(t, SplitCents(100, 0))
	})
}

func TestCentsFromFloat(t *testing.T) {
	assert.Equal(t, int64(1050), CentsFromFloat(10.5))
	assert.Equal(t, int64(1), CentsFromFloat(0.005))
	assert.Equal(t, int64(0), CentsFromFloat(0))
}
