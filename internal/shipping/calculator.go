package shipping

import (
	"context"
	"sort"
	"strings"

	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Quote is the advisory cost/label pair handed to the checkout flow. A cost
// of zero never leaves the calculator; zero is reserved by the checkout as
// the "not yet calculated" sentinel.
type Quote struct {
	Cost  int    `json:"cost"`
	Label string `json:"label"`
}

// Destination is one deliverable city with its per-kg rate.
type Destination struct {
	City     string `json:"city"`
	PerKg    int    `json:"per_kg"`
	Estimate string `json:"estimate"`
}

// Calculator simulates a courier rate lookup over a fixed destination table.
type Calculator struct {
	baseCost     decimal.Decimal
	destinations []Destination
	byCity       map[string]Destination
}

var defaultDestinations = []Destination{
	{City: "Jakarta", PerKg: 5000, Estimate: "1-2 hari"},
	{City: "Bandung", PerKg: 6000, Estimate: "1-2 hari"},
	{City: "Semarang", PerKg: 8000, Estimate: "2-3 hari"},
	{City: "Yogyakarta", PerKg: 9000, Estimate: "2-3 hari"},
	{City: "Surabaya", PerKg: 10000, Estimate: "2-4 hari"},
	{City: "Medan", PerKg: 14000, Estimate: "3-5 hari"},
	{City: "Makassar", PerKg: 16000, Estimate: "3-6 hari"},
}

// NewCalculator builds a calculator with the given base cost and the
// built-in destination table.
func NewCalculator(baseCost int) *Calculator {
	return newCalculator(baseCost, defaultDestinations)
}

func newCalculator(baseCost int, destinations []Destination) *Calculator {
	byCity := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		byCity[strings.ToLower(d.City)] = d
	}
	return &Calculator{
		baseCost:     decimal.NewFromInt(int64(baseCost)),
		destinations: destinations,
		byCity:       byCity,
	}
}

// Destinations lists the deliverable cities in alphabetical order.
func (c *Calculator) Destinations() []Destination {
	out := make([]Destination, len(c.destinations))
	copy(out, c.destinations)
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// Quote returns the simulated shipping cost for a destination and a total
// cart weight in grams. Weight is billed per started kg, one kg minimum.
func (c *Calculator) Quote(ctx context.Context, destination string, totalWeightGrams int) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "shipping lookup aborted")
	}

	dest, ok := c.byCity[strings.ToLower(strings.TrimSpace(destination))]
	if !ok {
		return Quote{}, pkgerrors.New(pkgerrors.CodeNotFound, "destination not deliverable").
			WithDetails(map[string]any{"destination": destination})
	}
	if totalWeightGrams < 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "weight cannot be negative")
	}

	chargeableKg := decimal.NewFromInt(int64(totalWeightGrams)).
		Div(decimal.NewFromInt(1000)).
		Ceil()
	if chargeableKg.IsZero() {
		chargeableKg = decimal.NewFromInt(1)
	}

	cost := c.baseCost.Add(chargeableKg.Mul(decimal.NewFromInt(int64(dest.PerKg))))

	return Quote{
		Cost:  int(cost.IntPart()),
		Label: dest.City,
	}, nil
}
