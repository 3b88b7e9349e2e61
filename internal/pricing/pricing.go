// Package pricing turns a stay's check-in/check-out dates and a nightly rate
// into a total price.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the textual format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// MinimumNights is substituted whenever a stay yields no billable nights.
const MinimumNights = 1

const secondsPerDay = 24 * 60 * 60

// Policy holds the surcharges applied on top of the nightly base price.
type Policy struct {
	TaxRate  decimal.Decimal // fraction of the base price, e.g. 0.08
	FixedFee decimal.Decimal // flat amount added once per booking
}

// Nights returns the number of nights between checkIn and checkOut.
// It returns 0 when either date fails to parse or when checkOut is not after checkIn.
// Zero is never a legitimate free stay; callers must apply a fallback.
func Nights(checkIn, checkOut string) int {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0
	}

	// Both dates are UTC midnights, so the difference is a whole number of days.
	// Unix seconds avoid the ~292 year cap of time.Duration.
	days := int((out.Unix() - in.Unix()) / secondsPerDay)
	if days < 0 {
		return 0
	}
	return days
}

// StayNights is Nights with the minimum-stay fallback applied.
// fellBack reports whether the fallback was used so callers can log it.
func StayNights(checkIn, checkOut string) (nights int, fellBack bool) {
	n := Nights(checkIn, checkOut)
	if n <= 0 {
		return MinimumNights, true
	}
	return n, false
}

// TotalPrice computes nights*rate plus tax on that base plus the fixed fee,
// rounded half-up to the currency's minor unit.
func TotalPrice(nights int, nightlyRate, taxRate, fixedFee decimal.Decimal) decimal.Decimal {
	base := nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	tax := base.Mul(taxRate)
	return base.Add(tax).Add(fixedFee).Round(2)
}

// Total applies the policy's surcharges to a stay.
func (p Policy) Total(nights int, nightlyRate decimal.Decimal) decimal.Decimal {
	return TotalPrice(nights, nightlyRate, p.TaxRate, p.FixedFee)
}
