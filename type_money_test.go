package btctax

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := USD(100.50)
	b := USD(49.50)

	if got := a.Add(b); !got.Equal(USD(150)) {
		t.Errorf("Add() = %s, want $150.00", got)
	}
	if got := a.Sub(b); !got.Equal(USD(51)) {
		t.Errorf("Sub() = %s, want $51.00", got)
	}
	if got := a.Mul(Q(2)); !got.Equal(USD(201)) {
		t.Errorf("Mul(2) = %s, want $201.00", got)
	}
	if got := USD(100).Div(Q(8)); !got.Equal(USD(12.5)) {
		t.Errorf("Div(8) = %s, want $12.50", got)
	}
}

func TestMoneySignedString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{USD(1234.5), "+$1,234.50"},
		{USD(-42), "-$42.00"},
		{USD(0), "-"},
	}
	for _, tt := range tests {
		if got := tt.m.SignedString(); got != tt.want {
			t.Errorf("SignedString() = %q, want %q", got, tt.want)
		}
	}
}

func TestQuantityNegligible(t *testing.T) {
	if Q(0.001).Negligible() {
		t.Error("0.001 BTC is well above the dust tolerance")
	}
	if !Q(0.000000001).Negligible() {
		t.Error("1e-9 BTC is below the dust tolerance")
	}
	if !Q(-0.000000001).Negligible() {
		t.Error("Negligible must compare on the absolute value")
	}
}

func TestQuantityMin(t *testing.T) {
	if got := Q(0.5).Min(Q(0.2)); !got.Equal(Q(0.2)) {
		t.Errorf("Min = %s, want 0.2", got)
	}
	if got := Q(0.1).Min(Q(0.2)); !got.Equal(Q(0.1)) {
		t.Errorf("Min = %s, want 0.1", got)
	}
}
