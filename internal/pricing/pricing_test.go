package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"three nights", "2025-01-01", "2025-01-04", 3},
		{"one night", "2025-01-01", "2025-01-02", 1},
		{"across month end", "2025-01-30", "2025-02-02", 3},
		{"across leap day", "2024-02-28", "2024-03-01", 2},
		{"across year end", "2024-12-31", "2025-01-01", 1},
		{"across millennia", "1000-01-01", "3000-01-01", 730485},
		{"same day", "2025-01-01", "2025-01-01", 0},
		{"check-out before check-in", "2025-01-04", "2025-01-01", 0},
		{"unparsable check-in", "yesterday", "2025-01-04", 0},
		{"unparsable check-out", "2025-01-01", "2025/01/04", 0},
		{"empty input", "", "", 0},
		{"impossible date", "2025-02-30", "2025-03-02", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestStayNights(t *testing.T) {
	t.Run("valid range keeps the day difference", func(t *testing.T) {
		n, fellBack := StayNights("2025-01-01", "2025-01-04")
		assert.Equal(t, 3, n)
		assert.False(t, fellBack)
	})

	t.Run("zero nights falls back to the minimum", func(t *testing.T) {
		n, fellBack := StayNights("2025-01-01", "2025-01-01")
		assert.Equal(t, MinimumNights, n)
		assert.True(t, fellBack)
	})

	t.Run("garbage falls back to the minimum", func(t *testing.T) {
		n, fellBack := StayNights("soon", "later")
		assert.Equal(t, 1, n)
		assert.True(t, fellBack)
	})
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		nights   int
		rate     string
		taxRate  string
		fixedFee string
		want     string
	}{
		{"plain nights times rate", 3, "100", "0", "0", "300.00"},
		{"tax and fixed fee", 3, "100.00", "0.08", "50", "374.00"},
		{"rounds half up", 3, "33.335", "0", "0", "100.01"},
		{"rounds down below half", 3, "33.3333", "0", "0", "100.00"},
		{"zero nights leaves only the fee", 0, "80", "0.1", "12.5", "12.50"},
		{"fractional tax", 7, "60", "0.13", "50", "524.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPrice(tt.nights, dec(tt.rate), dec(tt.taxRate), dec(tt.fixedFee))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestTotalPriceIsMonotonic(t *testing.T) {
	base := TotalPrice(2, dec("50"), dec("0.1"), dec("5"))

	assert.True(t, TotalPrice(3, dec("50"), dec("0.1"), dec("5")).GreaterThanOrEqual(base), "nights")
	assert.True(t, TotalPrice(2, dec("51"), dec("0.1"), dec("5")).GreaterThanOrEqual(base), "rate")
	assert.True(t, TotalPrice(2, dec("50"), dec("0.2"), dec("5")).GreaterThanOrEqual(base), "tax rate")
	assert.True(t, TotalPrice(2, dec("50"), dec("0.1"), dec("6")).GreaterThanOrEqual(base), "fixed fee")

	prev := decimal.Zero
	for n := 0; n <= 30; n++ {
		cur := TotalPrice(n, dec("19.99"), dec("0.08"), dec("2.50"))
		assert.True(t, cur.GreaterThanOrEqual(prev), "nights=%d", n)
		prev = cur
	}
}

func TestPolicyTotal(t *testing.T) {
	p := Policy{TaxRate: dec("0.08"), FixedFee: dec("50")}
	assert.Equal(t, "374.00", p.Total(3, dec("100")).StringFixed(2))

	assert.Equal(t, "100.00", Policy{}.Total(1, dec("100")).StringFixed(2))
}
