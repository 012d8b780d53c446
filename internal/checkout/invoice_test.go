package checkout

import (
	"strings"
	"testing"

	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	"github.com/prasetyoadi/umkm-storefront/internal/order"
)

func sampleOrder() order.Data {
	return order.Data{
		OrderID: "ORD-1722988800000-042",
		Items: []cart.Item{
			{Product: catalog.Product{ID: "prd-001", Name: "Keripik Singkong", Price: 10000}, Quantity: 2},
			{Product: catalog.Product{ID: "prd-002", Name: "Sambal Bawang", Price: 5000}, Quantity: 1},
		},
		Subtotal:     25000,
		ShippingCost: 15000,
		Destination:  "Jakarta",
		GrandTotal:   40000,
		Timestamp:    "7 Agu 2024, 07.00",
	}
}

func textCommands(cmds []Command) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Kind == KindText {
			out = append(out, c)
		}
	}
	return out
}

func TestDeepLinkEncoding(t *testing.T) {
	link := DeepLink("62895613114028", "Halo Admin,\nsaya ingin memesan: 2 + 1")
	if !strings.HasPrefix(link, "https://api.whatsapp.com/send?phone=62895613114028&text=") {
		t.Fatalf("unexpected prefix: %s", link)
	}
	encoded := link[strings.Index(link, "&text=")+len("&text="):]
	if strings.ContainsAny(encoded, " \n+") {
		t.Fatalf("payload not fully percent-encoded: %s", encoded)
	}
	if !strings.Contains(encoded, "%20") {
		t.Fatalf("spaces should encode as %%20: %s", encoded)
	}
}

func TestBuildInvoiceCommandsLayout(t *testing.T) {
	data := sampleOrder()
	cmds := BuildInvoiceCommands(data, "Warung Bu Sari")

	if len(cmds) == 0 {
		t.Fatal("no commands produced")
	}
	bg := cmds[0]
	if bg.Kind != KindRect || bg.X != 0 || bg.Y != 0 || bg.W != invoiceWidth {
		t.Fatalf("first command should be the full-canvas background, got %+v", bg)
	}
	if bg.H != InvoiceHeight(len(data.Items)) {
		t.Fatalf("background height %v != canvas height %v", bg.H, InvoiceHeight(len(data.Items)))
	}

	var texts []string
	for _, c := range textCommands(cmds) {
		texts = append(texts, c.Text)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{
		"Warung Bu Sari",
		"ORD-1722988800000-042",
		"7 Agu 2024, 07.00",
		"Keripik Singkong x2",
		"Rp20.000",
		"Sambal Bawang x1",
		"Total Harga",
		"Ongkir ke Jakarta",
		"Rp15.000",
		"Grand Total",
		"Rp40.000",
		"Terima kasih telah berbelanja!",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("commands missing text %q:\n%s", want, joined)
		}
	}
}

func TestInvoiceHeightGrowsWithItems(t *testing.T) {
	if InvoiceHeight(5) <= InvoiceHeight(1) {
		t.Fatal("height should grow with item count")
	}
	if diff := InvoiceHeight(2) - InvoiceHeight(1); diff != rowHeight {
		t.Fatalf("per-item growth = %v, want %v", diff, rowHeight)
	}
}

func TestBuildInvoiceFollowupMessage(t *testing.T) {
	data := sampleOrder()

	shared := BuildInvoiceFollowupMessage(data, "Warung Bu Sari", true)
	if !strings.Contains(shared, "PESANAN BARU - WARUNG BU SARI") {
		t.Fatalf("missing uppercased header: %s", shared)
	}
	if !strings.Contains(shared, "Order ID: ORD-1722988800000-042") {
		t.Fatalf("missing order id: %s", shared)
	}
	if !strings.Contains(shared, "Total: Rp40.000") {
		t.Fatalf("missing total: %s", shared)
	}
	if !strings.Contains(shared, "share invoice") {
		t.Fatalf("share wording: %s", shared)
	}

	copied := BuildInvoiceFollowupMessage(data, "Warung Bu Sari", false)
	if !strings.Contains(copied, "copy invoice") {
		t.Fatalf("copy wording: %s", copied)
	}
}

func TestImageRendererProducesPNG(t *testing.T) {
	renderer, err := NewImageRenderer()
	if err != nil {
		t.Fatalf("NewImageRenderer: %v", err)
	}
	data := sampleOrder()
	cmds := BuildInvoiceCommands(data, "Warung Bu Sari")

	png, err := renderer.Render(invoiceWidth, InvoiceHeight(len(data.Items)), cmds)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatal("output is not a png")
	}

	if _, err := renderer.Render(0, 0, nil); err == nil {
		t.Fatal("expected error for empty canvas")
	}
}

func TestImageRendererHonorsSizeAndWeight(t *testing.T) {
	renderer, err := NewImageRenderer()
	if err != nil {
		t.Fatalf("NewImageRenderer: %v", err)
	}

	header, err := renderer.face(18, true)
	if err != nil {
		t.Fatalf("header face: %v", err)
	}
	body, err := renderer.face(11, false)
	if err != nil {
		t.Fatalf("body face: %v", err)
	}
	if header == body {
		t.Fatal("18pt bold and 11pt regular must not share a face")
	}
	if header.Metrics().Height <= body.Metrics().Height {
		t.Fatal("header face should be taller than body face")
	}

	// Same size and weight reuse the cached face.
	again, err := renderer.face(18, true)
	if err != nil {
		t.Fatalf("cached face: %v", err)
	}
	if again != header {
		t.Fatal("expected cached face to be reused")
	}

	fallback, err := renderer.face(0, false)
	if err != nil {
		t.Fatalf("fallback face: %v", err)
	}
	if fallback == nil {
		t.Fatal("zero size should fall back to the default body size")
	}
}
