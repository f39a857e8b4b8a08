package commission

import (
	"errors"
	"fmt"
	"math"
)

// Breakdown splits one line total between the vendor and the platform.
// The decomposition is exact to the cent: the fee is rounded, the payout
// is derived by subtraction, so VendorPayout + PlatformFee always equals
// the line total with no rounding drift across items.
type Breakdown struct {
	VendorPayout float64 `json:"vendor_payout"`
	PlatformFee  float64 `json:"platform_fee"`
}

var ErrInvalidRate = errors.New("commission rate must be between 0 and 100")

// ValidateRate rejects out-of-range commission rates. Rates are stored
// as-is after validation, never clamped.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 100 {
		return ErrInvalidRate
	}
	return nil
}

// Split computes the vendor payout and platform fee for a single order
// line. lineTotal is price * quantity in currency units.
func Split(lineTotal, rate float64) (Breakdown, error) {
	if err := ValidateRate(rate); err != nil {
		return Breakdown{}, err
	}

	if lineTotal < 0 {
		return Breakdown{}, errors.New("line total cannot be negative")
	}

	totalCents := int64(math.Round(lineTotal * 100))
	feeCents := int64(math.Round(float64(totalCents) * rate / 100))
	payoutCents := totalCents - feeCents

	return Breakdown{
		VendorPayout: float64(payoutCents) / 100,
		PlatformFee:  float64(feeCents) / 100,
	}, nil
}

// Line is the minimal order-item shape the calculator needs.
type Line struct {
	VendorID uint
	Price    float64
	Quantity int
}

// PerVendor folds an order's lines into per-vendor payout totals, applying
// each vendor's own commission rate per line. Summation happens in cents so
// multi-item orders accumulate no float drift.
func PerVendor(lines []Line, rates map[uint]float64) (map[uint]float64, error) {
	payoutCents := make(map[uint]int64)

	for _, line := range lines {
		rate, ok := rates[line.VendorID]
		if !ok {
			return nil, fmt.Errorf("missing commission rate for vendor %d", line.VendorID)
		}

		breakdown, err := Split(line.Price*float64(line.Quantity), rate)
		if err != nil {
			return nil, err
		}

		payoutCents[line.VendorID] += int64(math.Round(breakdown.VendorPayout * 100))
	}

	payouts := make(map[uint]float64, len(payoutCents))
	for vendorID, cents := range payoutCents {
		payouts[vendorID] = float64(cents) / 100
	}

	return payouts, nil
}
