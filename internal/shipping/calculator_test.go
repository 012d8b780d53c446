package shipping

import (
	"context"
	"testing"

	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
)

func TestQuoteBillsPerStartedKg(t *testing.T) {
	calc := NewCalculator(5000)
	ctx := context.Background()

	// 1200g rounds up to 2 chargeable kg.
	quote, err := calc.Quote(ctx, "Jakarta", 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Cost != 15000 {
		t.Fatalf("expected 15000 for 1200g to Jakarta, got %d", quote.Cost)
	}
	if quote.Label != "Jakarta" {
		t.Fatalf("unexpected label %q", quote.Label)
	}
}

func TestQuoteMinimumOneKg(t *testing.T) {
	calc := NewCalculator(5000)

	quote, err := calc.Quote(context.Background(), "Jakarta", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Cost != 10000 {
		t.Fatalf("expected one-kg minimum, got %d", quote.Cost)
	}
}

func TestQuoteIsAlwaysPositive(t *testing.T) {
	calc := NewCalculator(0)

	for _, dest := range calc.Destinations() {
		quote, err := calc.Quote(context.Background(), dest.City, 1)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", dest.City, err)
		}
		if quote.Cost <= 0 {
			t.Fatalf("quote for %s must be positive, got %d", dest.City, quote.Cost)
		}
	}
}

func TestQuoteCaseInsensitiveDestination(t *testing.T) {
	calc := NewCalculator(5000)

	quote, err := calc.Quote(context.Background(), "  jakarta ", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Label != "Jakarta" {
		t.Fatalf("expected canonical label, got %q", quote.Label)
	}
}

func TestQuoteUnknownDestination(t *testing.T) {
	calc := NewCalculator(5000)

	_, err := calc.Quote(context.Background(), "Atlantis", 500)
	if err == nil {
		t.Fatal("expected error for unknown destination")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestQuoteRejectsNegativeWeight(t *testing.T) {
	calc := NewCalculator(5000)

	_, err := calc.Quote(context.Background(), "Jakarta", -1)
	if err == nil {
		t.Fatal("expected error for negative weight")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestDestinationsSorted(t *testing.T) {
	calc := NewCalculator(5000)

	dests := calc.Destinations()
	if len(dests) == 0 {
		t.Fatal("expected destinations")
	}
	for i := 1; i < len(dests); i++ {
		if dests[i-1].City > dests[i].City {
			t.Fatalf("destinations not sorted: %v", dests)
		}
	}
}
