package pricing

import (
	"context"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// PriceLookup resolves a unit price for a material name.
type PriceLookup interface {
	UnitPrice(ctx context.Context, species string) (float64, bool, error)
}

// Estimator fills in cost figures the model left out. It never overwrites a
// number the plan already carries.
type Estimator struct {
	prices PriceLookup
}

func NewEstimator(prices PriceLookup) *Estimator {
	return &Estimator{prices: prices}
}

// FillCosts completes BOM unit costs from the price table, derives missing
// total costs, and sets the plan's estimated cost when absent. Lookup misses
// leave the item untouched.
func (e *Estimator) FillCosts(ctx context.Context, plan *schema.BuildPlan) error {
	for i := range plan.BillOfMaterials {
		item := &plan.BillOfMaterials[i]

		if item.UnitCost == nil && item.ItemType == "Material" {
			price, ok, err := e.prices.UnitPrice(ctx, item.ItemName)
			if err != nil {
				return err
			}
			if ok {
				item.UnitCost = &price
			}
		}

		if item.TotalCost == nil && item.UnitCost != nil {
			total := item.Quantity * *item.UnitCost
			item.TotalCost = &total
		}
	}

	if plan.EstimatedCost == nil {
		var sum float64
		var any bool
		for _, item := range plan.BillOfMaterials {
			if item.TotalCost != nil {
				sum += *item.TotalCost
				any = true
			}
		}
		if any {
			plan.EstimatedCost = &sum
		}
	}
	return nil
}
