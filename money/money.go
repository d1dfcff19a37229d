package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary amount denominated in some Unit. The unit is carried
// separately because the payment interface lets callers pick the unit of
// every request and response.
type Amount uint64

// Unit is a currency unit supported by the payment processor.
type Unit string

const (
	Sat  Unit = "sat"
	Msat Unit = "msat"
)

const msatPerSat = 1000

var (
	// ErrUnknownUnit is returned when converting from or to a unit this
	// processor does not handle.
	ErrUnknownUnit = errors.New("unknown currency unit")
	// ErrAmountOverflow is returned when a conversion does not fit in uint64.
	ErrAmountOverflow = errors.New("amount overflows")
	// ErrNegativeAmount is returned when trying to create an Amount from a negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// ParseUnit parses a unit string from a request.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case Sat:
		return Sat, nil
	case Msat:
		return Msat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Convert converts an amount between units. Conversions that lose precision
// truncate toward zero so repeated conversions are deterministic.
func Convert(amount Amount, from, to Unit) (Amount, error) {
	if from == to {
		return amount, nil
	}

	switch {
	case from == Sat && to == Msat:
		if uint64(amount) > math.MaxUint64/msatPerSat {
			return 0, fmt.Errorf("%w: %d sat in msat", ErrAmountOverflow, amount)
		}

		return amount * msatPerSat, nil
	case from == Msat && to == Sat:
		return amount / msatPerSat, nil
	default:
		return 0, fmt.Errorf("%w: %q -> %q", ErrUnknownUnit, from, to)
	}
}

// NewFromBtc creates an Amount in satoshis from a BTC denominated decimal.
func NewFromBtc(amount decimal.Decimal) (Amount, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}

	return Amount(amount.Mul(decimal.NewFromInt(1e8)).IntPart()), nil // nolint:gosec
}

// ToBtc returns the BTC value of an Amount in satoshis.
func (a Amount) ToBtc() decimal.Decimal {
	return decimal.NewFromUint64(uint64(a)).Div(decimal.NewFromInt(1e8))
}
