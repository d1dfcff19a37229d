package lightning

import (
	"github.com/shopspring/decimal"

	"github.com/cashubtc/mintpayd/money"
)

// FeeReserve is the fee margin reserved when quoting an outgoing payment,
// covering routing fees. It is fixed for the lifetime of the bridge.
type FeeReserve struct {
	// MinFeeReserve is the absolute floor, in the smallest unit.
	MinFeeReserve money.Amount
	// PercentFeeReserve is the relative reserve as a fraction of the amount.
	PercentFeeReserve float64
}

// Fee returns the reserve for a payment of the given amount:
// max(MinFeeReserve, trunc(PercentFeeReserve * amount)). The relative part
// truncates toward zero so repeated quotes are deterministic.
func (f FeeReserve) Fee(amount money.Amount) money.Amount {
	relative := decimal.NewFromFloat(f.PercentFeeReserve).
		Mul(decimal.NewFromUint64(uint64(amount))).
		IntPart()

	if relative > int64(f.MinFeeReserve) { // nolint:gosec
		return money.Amount(relative) // nolint:gosec
	}

	return f.MinFeeReserve
}
