package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
)

func sampleItems() []cart.Item {
	return []cart.Item{
		{Product: catalog.Product{ID: "A", Name: "Keripik", Price: 10000, Weight: 500}, Quantity: 2},
		{Product: catalog.Product{ID: "B", Name: "Sambal", Price: 5000, Weight: 200}, Quantity: 1},
	}
}

func TestFormatOrderDataTotals(t *testing.T) {
	data := FormatOrderData(sampleItems(), 25000, 15000, "Jakarta")

	if data.Subtotal != 25000 || data.ShippingCost != 15000 {
		t.Fatalf("inputs not preserved: %+v", data)
	}
	if data.GrandTotal != 40000 {
		t.Fatalf("expected grand total 40000, got %d", data.GrandTotal)
	}
	if data.Destination != "Jakarta" {
		t.Fatalf("unexpected destination %q", data.Destination)
	}
	if len(data.Items) != 2 {
		t.Fatalf("expected items copied, got %v", data.Items)
	}
}

func TestFormatOrderDataCopiesItems(t *testing.T) {
	items := sampleItems()
	data := FormatOrderData(items, 25000, 15000, "Jakarta")

	items[0].Quantity = 99
	if data.Items[0].Quantity != 2 {
		t.Fatalf("snapshot must not observe later mutations, got %d", data.Items[0].Quantity)
	}
}

func TestFormatOrderDataNotIdempotentInIDOnly(t *testing.T) {
	first := FormatOrderData(sampleItems(), 25000, 15000, "Jakarta")
	second := FormatOrderData(sampleItems(), 25000, 15000, "Jakarta")

	if first.Subtotal != second.Subtotal ||
		first.ShippingCost != second.ShippingCost ||
		first.Destination != second.Destination ||
		first.GrandTotal != second.GrandTotal {
		t.Fatalf("totals must match for identical inputs: %+v vs %+v", first, second)
	}
	if first.OrderID == second.OrderID {
		t.Fatalf("order ids must differ per call, both %q", first.OrderID)
	}
}

func TestGenerateOrderIDFormatAndUniqueness(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d+-\d{3}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateOrderID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected id format %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2024, time.August, 9, 7, 5, 0, 0, time.Local)
	if got := FormatTimestamp(at); got != "9 Agu 2024, 07.05" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{15000, "Rp15.000"},
		{25000, "Rp25.000"},
		{1250000, "Rp1.250.000"},
		{-5000, "-Rp5.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
