package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/prasetyoadi/umkm-storefront/internal/order"
)

const deepLinkBase = "https://api.whatsapp.com/send"

// BuildOrderMessage renders the full order as a WhatsApp-ready text message:
// one line per item, then subtotal, shipping, grand total and an address
// placeholder the customer fills in after sending.
func BuildOrderMessage(data order.Data) string {
	var b strings.Builder

	b.WriteString("Halo Admin, saya ingin memesan:\n\n")
	for _, item := range data.Items {
		fmt.Fprintf(&b, "- %s x %d (%s)\n",
			item.Name, item.Quantity, order.FormatRupiah(item.Price*item.Quantity))
	}

	b.WriteString("\n--------------------------------\n")
	fmt.Fprintf(&b, "Total Harga: %s\n", order.FormatRupiah(data.Subtotal))
	fmt.Fprintf(&b, "Ongkir ke %s: %s\n", data.Destination, order.FormatRupiah(data.ShippingCost))
	fmt.Fprintf(&b, "Grand Total: %s\n\n", order.FormatRupiah(data.GrandTotal))
	b.WriteString("Alamat Pengiriman: ...\n")
	b.WriteString("(Mohon lengkapi alamat detail setelah pesan ini terkirim)")

	return b.String()
}

// BuildInvoiceFollowupMessage renders the short confirmation sent alongside
// a generated invoice image. The wording tracks whether the invoice was
// shared directly or copied to the clipboard.
func BuildInvoiceFollowupMessage(data order.Data, storeName string, shared bool) string {
	verb := "copy"
	if shared {
		verb = "share"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *PESANAN BARU - %s*\n\n", strings.ToUpper(storeName))
	fmt.Fprintf(&b, "Order ID: %s\n", data.OrderID)
	fmt.Fprintf(&b, "Total: %s\n\n", order.FormatRupiah(data.GrandTotal))
	fmt.Fprintf(&b, "Saya sudah %s invoice pesanan.\n", verb)
	b.WriteString("Berikut saya kirimkan invoice dan alamat lengkap saya.")

	return b.String()
}

// DeepLink percent-encodes a message into the fixed-recipient WhatsApp URL.
func DeepLink(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("%s?phone=%s&text=%s", deepLinkBase, phone, encoded)
}
