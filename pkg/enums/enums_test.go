package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusDelivered, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.ok, got)
		}
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled should be terminal")
	}
	if OrderStatusPending.IsTerminal() {
		t.Fatal("pending should not be terminal")
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseOrderStatus("shipped"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if key, err := ParseSortKey(""); err != nil || key != SortRelevance {
		t.Fatalf("empty sort key should mean relevance, got %q %v", key, err)
	}
	if _, err := ParseSortKey("cheapest"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
	if c, err := ParseCurrency(" aed "); err != nil || c != CurrencyAED {
		t.Fatalf("aed should parse, got %q %v", c, err)
	}
	if c, err := ParseCurrency(""); err != nil || c != DefaultCurrency {
		t.Fatalf("blank currency should default, got %q %v", c, err)
	}
	if _, err := ParseCurrency("EUR"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
	if !UserTypeBuyer.IsValid() || UserType("guest").IsValid() {
		t.Fatal("unexpected user type validity")
	}
	if p, err := ParsePaymentStatus("paid"); err != nil || !p.IsSettled() {
		t.Fatalf("paid should parse as settled, got %q %v", p, err)
	}
	if PaymentStatusPending.IsSettled() {
		t.Fatal("pending is not settled")
	}
	if _, err := ParseAvailabilityStatus("sold"); err == nil {
		t.Fatal("expected error for unknown availability")
	}
}
