package order

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prasetyoadi/umkm-storefront/internal/cart"
)

// Data is an immutable snapshot of one checkout attempt. Items are copied
// out of the cart, so later cart mutations never alter a produced snapshot.
type Data struct {
	OrderID      string      `json:"orderId"`
	Items        []cart.Item `json:"items"`
	Subtotal     int         `json:"subtotal"`
	ShippingCost int         `json:"shippingCost"`
	Destination  string      `json:"destination"`
	GrandTotal   int         `json:"grandTotal"`
	Timestamp    string      `json:"timestamp"`
}

var idSequence atomic.Uint32

func init() {
	idSequence.Store(rand.Uint32())
}

// GenerateOrderID mints a unique id from the current millisecond plus a
// three-digit disambiguator, so two calls inside the same millisecond still
// differ.
func GenerateOrderID() string {
	millis := time.Now().UnixMilli()
	seq := idSequence.Add(1) % 1000
	return fmt.Sprintf("ORD-%d-%03d", millis, seq)
}

// FormatOrderData assembles the checkout snapshot. Totals are pure in the
// inputs; OrderID and Timestamp are intentionally fresh on every call.
func FormatOrderData(items []cart.Item, subtotal, shippingCost int, destination string) Data {
	copied := make([]cart.Item, len(items))
	copy(copied, items)

	return Data{
		OrderID:      GenerateOrderID(),
		Items:        copied,
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Destination:  destination,
		GrandTotal:   subtotal + shippingCost,
		Timestamp:    FormatTimestamp(time.Now()),
	}
}

var indonesianMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// FormatTimestamp renders a local datetime the way Indonesian storefronts
// display it, e.g. "2 Jan 2006, 15.04".
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %02d.%02d",
		t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatRupiah renders an integer rupiah amount with dot separators,
// e.g. "Rp25.000".
func FormatRupiah(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("Rp")

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
