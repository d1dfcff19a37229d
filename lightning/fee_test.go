package lightning

import (
	"testing"

	"github.com/cashubtc/mintpayd/money"
)

func TestFeeReserve_Fee(t *testing.T) {
	tests := []struct {
		name    string
		reserve FeeReserve
		amount  money.Amount
		want    money.Amount
	}{
		{
			name:    "relative above floor",
			reserve: FeeReserve{MinFeeReserve: 2, PercentFeeReserve: 0.02},
			amount:  1000,
			want:    20,
		},
		{
			name:    "floor wins",
			reserve: FeeReserve{MinFeeReserve: 2, PercentFeeReserve: 0.02},
			amount:  50,
			want:    2,
		},
		{
			name:    "relative truncates toward zero",
			reserve: FeeReserve{MinFeeReserve: 1, PercentFeeReserve: 0.02},
			amount:  99,
			want:    1,
		},
		{
			name:    "exactly at floor",
			reserve: FeeReserve{MinFeeReserve: 2, PercentFeeReserve: 0.02},
			amount:  100,
			want:    2,
		},
		{
			name:    "zero amount",
			reserve: FeeReserve{MinFeeReserve: 5, PercentFeeReserve: 0.01},
			amount:  0,
			want:    5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reserve.Fee(tt.amount); got != tt.want {
				t.Errorf("Fee(%d) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFeeReserve_FeeDeterministic(t *testing.T) {
	reserve := FeeReserve{MinFeeReserve: 2, PercentFeeReserve: 0.013}
	first := reserve.Fee(12345)
	for i := 0; i < 100; i++ {
		if got := reserve.Fee(12345); got != first {
			t.Fatalf("Fee not deterministic: %d != %d", got, first)
		}
	}
}
