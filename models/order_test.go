package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"pending", OrderStatusPending, true},
		{"confirmed", OrderStatusConfirmed, true},
		{"delivered", OrderStatusDelivered, true},
		{"cancelled", OrderStatusCancelled, true},
		{"unknown", "shipped", false},
		{"empty", "", false},
		{"case sensitive", "Pending", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidOrderStatus(tt.value); got != tt.want {
				t.Fatalf("ValidOrderStatus(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidPaymentStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"unpaid", PaymentStatusUnpaid, true},
		{"paid", PaymentStatusPaid, true},
		{"unknown", "partial", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidPaymentStatus(tt.value); got != tt.want {
				t.Fatalf("ValidPaymentStatus(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}
