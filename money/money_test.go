package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvert(t *testing.T) {
	type args struct {
		amount Amount
		from   Unit
		to     Unit
	}
	tests := []struct {
		name    string
		args    args
		want    Amount
		wantErr bool
	}{
		{
			name: "Sat to Msat - Pass",
			args: args{amount: 21, from: Sat, to: Msat},
			want: 21000,
		},
		{
			name: "Msat to Sat - Truncates",
			args: args{amount: 21999, from: Msat, to: Sat},
			want: 21,
		},
		{
			name: "Same unit - Pass",
			args: args{amount: 42, from: Sat, to: Sat},
			want: 42,
		},
		{
			name:    "Sat to Msat - Overflow",
			args:    args{amount: math.MaxUint64/1000 + 1, from: Sat, to: Msat},
			wantErr: true,
		},
		{
			name:    "Unknown unit - Fail",
			args:    args{amount: 1, from: Unit("usd"), to: Sat},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.args.amount, tt.args.from, tt.args.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert() error = %v, wantErr %v", err, tt.wantErr)

				return
			}
			if got != tt.want {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	if _, err := ParseUnit("sat"); err != nil {
		t.Errorf("ParseUnit(sat) error = %v", err)
	}
	if _, err := ParseUnit("msat"); err != nil {
		t.Errorf("ParseUnit(msat) error = %v", err)
	}
	if _, err := ParseUnit("eur"); err == nil {
		t.Error("ParseUnit(eur) expected error")
	}
}

func TestNewFromBtc(t *testing.T) {
	type args struct {
		amount decimal.Decimal
	}
	tests := []struct {
		name    string
		args    args
		want    Amount
		wantErr bool
	}{
		{
			name: "NewFromBtc - Pass",
			args: args{
				amount: decimal.NewFromInt(1),
			},
			want:    100000000,
			wantErr: false,
		},
		{
			name: "NewFromBtc - Fail Negative Amount",
			args: args{
				amount: decimal.NewFromInt(-1),
			},
			want:    0,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFromBtc(tt.args.amount)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFromBtc() error = %v, wantErr %v", err, tt.wantErr)

				return
			}
			if got != tt.want {
				t.Errorf("NewFromBtc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmount_ToBtc(t *testing.T) {
	tests := []struct {
		name string
		a    Amount
		want decimal.Decimal
	}{
		{
			name: "To BTC - Pass",
			a:    100000000,
			want: decimal.NewFromInt(1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ToBtc(); got.Cmp(tt.want) != 0 {
				t.Errorf("Amount.ToBtc() = %v, want %v", got, tt.want)
			}
		})
	}
}
