package pricing

import (
	"errors"
	"math"
	"testing"

	"wealthlab/types"
)

func TestPriceIntrinsic(t *testing.T) {
	tests := []struct {
		name  string
		S, K  float64
		T     float64
		sigma float64
		kind  types.OptionKind
		want  float64
	}{
		{"expired at the money call", 100, 100, 0, 0.2, types.Call, 0},
		{"expired in the money call", 120, 100, 0, 0.2, types.Call, 20},
		{"expired in the money put", 80, 100, 0, 0.2, types.Put, 20},
		{"expired out of the money put", 120, 100, 0, 0.2, types.Put, 0},
		{"zero vol call", 110, 100, 1, 0, types.Call, 10},
		{"negative time put", 90, 100, -1, 0.3, types.Put, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.S, tt.K, tt.T, 0.015, tt.sigma, tt.kind)
			if err != nil {
				t.Fatalf("Price() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Price() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceClosedForm(t *testing.T) {
	// textbook values: S=100 K=100 T=1 r=0.05 sigma=0.2
	call, err := Price(100, 100, 1, 0.05, 0.2, types.Call)
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	if math.Abs(call-10.4506) > 1e-3 {
		t.Errorf("call = %v, want ~10.4506", call)
	}
	put, _ := Price(100, 100, 1, 0.05, 0.2, types.Put)
	if math.Abs(put-5.5735) > 1e-3 {
		t.Errorf("put = %v, want ~5.5735", put)
	}

	// put-call parity
	parity := call - put - (100 - 100*math.Exp(-0.05))
	if math.Abs(parity) > 1e-9 {
		t.Errorf("put-call parity off by %v", parity)
	}
}

func TestPriceMonotonicInVolatility(t *testing.T) {
	low, err := Price(100, 90, 1.0, 0.0, 0.3, types.Put)
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	high, err := Price(100, 90, 1.0, 0.0, 0.5, types.Put)
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	if !(low < high) {
		t.Errorf("put at vol 0.3 = %v should be below put at vol 0.5 = %v", low, high)
	}
}

func TestPriceNeverNegative(t *testing.T) {
	for _, K := range []float64{1, 50, 100, 1000, 100000} {
		for _, kind := range []types.OptionKind{types.Call, types.Put} {
			got, err := Price(100, K, 0.02, 0.015, 0.1, kind)
			if err != nil {
				t.Fatalf("Price() error = %v", err)
			}
			if got < 0 {
				t.Errorf("Price(K=%v, %s) = %v, want >= 0", K, kind, got)
			}
		}
	}
}

func TestPriceInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		S, K float64
		kind types.OptionKind
	}{
		{"zero spot", 0, 100, types.Call},
		{"negative strike", 100, -5, types.Put},
		{"unknown kind", 100, 100, types.OptionKind("binary")},
		{"nan spot", math.NaN(), 100, types.Call},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Price(tt.S, tt.K, 1, 0.015, 0.2, tt.kind)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Price() error = %v, want %v", err, ErrInvalidParameter)
			}
		})
	}
}
