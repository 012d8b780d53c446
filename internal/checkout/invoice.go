package checkout

import (
	"fmt"

	"github.com/prasetyoadi/umkm-storefront/internal/order"
)

// Align positions a text command relative to its X coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// CommandKind discriminates draw commands.
type CommandKind int

const (
	KindRect CommandKind = iota
	KindLine
	KindText
)

// Command is one primitive of an invoice image. The translation from order
// data to commands is pure so layout can be asserted without rasterizing.
type Command struct {
	Kind  CommandKind
	X, Y  float64
	W, H  float64
	X2    float64
	Y2    float64
	Text  string
	Size  float64
	Bold  bool
	Color string
	Align Align
}

const (
	invoiceWidth  = 400.0
	invoiceMargin = 20.0
	rowHeight     = 22.0
	headerHeight  = 78.0

	colorBackground = "#ffffff"
	colorBrand      = "#15803d"
	colorInk        = "#1f2937"
	colorMuted      = "#6b7280"
	colorRule       = "#d1d5db"
	colorOnBrand    = "#ffffff"
)

// InvoiceHeight reports the canvas height needed for an order with the given
// number of item lines.
func InvoiceHeight(itemCount int) float64 {
	return headerHeight + 40 + float64(itemCount)*rowHeight + 130
}

// BuildInvoiceCommands translates order data into the draw-command list for
// the invoice image: brand header, order metadata, one row per item, the
// totals block, and a footer.
func BuildInvoiceCommands(data order.Data, storeName string) []Command {
	height := InvoiceHeight(len(data.Items))
	right := invoiceWidth - invoiceMargin

	cmds := []Command{
		{Kind: KindRect, X: 0, Y: 0, W: invoiceWidth, H: height, Color: colorBackground},
		{Kind: KindRect, X: 0, Y: 0, W: invoiceWidth, H: headerHeight, Color: colorBrand},
		{Kind: KindText, X: invoiceWidth / 2, Y: 32, Text: storeName, Size: 18, Bold: true, Color: colorOnBrand, Align: AlignCenter},
		{Kind: KindText, X: invoiceWidth / 2, Y: 54, Text: "Invoice Pesanan", Size: 12, Color: colorOnBrand, Align: AlignCenter},
	}

	y := headerHeight + 24
	cmds = append(cmds,
		Command{Kind: KindText, X: invoiceMargin, Y: y, Text: data.OrderID, Size: 12, Bold: true, Color: colorInk, Align: AlignLeft},
		Command{Kind: KindText, X: right, Y: y, Text: data.Timestamp, Size: 10, Color: colorMuted, Align: AlignRight},
	)

	y += 16
	cmds = append(cmds, Command{Kind: KindLine, X: invoiceMargin, Y: y, X2: right, Y2: y, Color: colorRule})

	for _, item := range data.Items {
		y += rowHeight
		label := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		cmds = append(cmds,
			Command{Kind: KindText, X: invoiceMargin, Y: y, Text: label, Size: 11, Color: colorInk, Align: AlignLeft},
			Command{Kind: KindText, X: right, Y: y, Text: order.FormatRupiah(item.Price * item.Quantity), Size: 11, Color: colorInk, Align: AlignRight},
		)
	}

	y += 16
	cmds = append(cmds, Command{Kind: KindLine, X: invoiceMargin, Y: y, X2: right, Y2: y, Color: colorRule})

	y += rowHeight
	cmds = append(cmds,
		Command{Kind: KindText, X: invoiceMargin, Y: y, Text: "Total Harga", Size: 11, Color: colorMuted, Align: AlignLeft},
		Command{Kind: KindText, X: right, Y: y, Text: order.FormatRupiah(data.Subtotal), Size: 11, Color: colorInk, Align: AlignRight},
	)
	y += rowHeight
	cmds = append(cmds,
		Command{Kind: KindText, X: invoiceMargin, Y: y, Text: "Ongkir ke " + data.Destination, Size: 11, Color: colorMuted, Align: AlignLeft},
		Command{Kind: KindText, X: right, Y: y, Text: order.FormatRupiah(data.ShippingCost), Size: 11, Color: colorInk, Align: AlignRight},
	)
	y += rowHeight
	cmds = append(cmds,
		Command{Kind: KindText, X: invoiceMargin, Y: y, Text: "Grand Total", Size: 13, Bold: true, Color: colorBrand, Align: AlignLeft},
		Command{Kind: KindText, X: right, Y: y, Text: order.FormatRupiah(data.GrandTotal), Size: 13, Bold: true, Color: colorBrand, Align: AlignRight},
	)

	y += 34
	cmds = append(cmds, Command{Kind: KindText, X: invoiceWidth / 2, Y: y, Text: "Terima kasih telah berbelanja!", Size: 10, Color: colorMuted, Align: AlignCenter})

	return cmds
}
