package pricing

import (
	"math"

	"haulcentral/internal/models"
)

// IntroDiscount is taken off the list price for the first IntroMonths months.
const (
	IntroDiscount = 0.15
	IntroMonths   = 6
	TrialDays     = 14
)

type Plan struct {
	Tier        string  `json:"tier"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ListPrice   float64 `json:"listPrice"`
	Promotion   string  `json:"promotion"`
	TrialDays   int     `json:"trialDays"`
}

type CategoryPlans struct {
	Category string `json:"category"`
	Plans    []Plan `json:"plans"`
}

type tierPrice struct {
	tier, name, description string
	price                   float64
}

var catalog = []struct {
	category string
	tiers    []tierPrice
}{
	{models.CategoryOwnerOperator, []tierPrice{
		{"standard", "Standard", "Perfect for individual owner-operators", 25},
		{"pro", "Pro", "Advanced features for serious operators", 75},
		{"premium", "Premium", "Everything an owner-operator needs to grow", 125},
	}},
	{models.CategoryCarrier, []tierPrice{
		{"standard", "Standard", "Fleet tools for small carriers", 130},
		{"pro", "Pro", "Dispatch and fleet visibility for growing carriers", 180},
		{"premium", "Premium", "Full fleet management for large carriers", 230},
	}},
	{models.CategoryBrokerShipper, []tierPrice{
		{"standard", "Standard", "Post loads and reach carriers", 29.99},
		{"pro", "Pro", "Carrier network tools for active brokers", 79.99},
		{"premium", "Premium", "High-volume posting and analytics access", 129.99},
	}},
}

// ListPrice returns the undiscounted price that the intro discount is taken
// from, rounded to cents.
func ListPrice(price float64) float64 {
	return math.Round(price/(1-IntroDiscount)*100) / 100
}

// Catalog returns the plans of every category.
func Catalog() []CategoryPlans {
	out := make([]CategoryPlans, 0, len(catalog))
	for _, c := range catalog {
		plans, _ := ForCategory(c.category)
		out = append(out, CategoryPlans{Category: c.category, Plans: plans})
	}
	return out
}

// ForCategory returns the plans of one category.
func ForCategory(category string) ([]Plan, bool) {
	for _, c := range catalog {
		if c.category != category {
			continue
		}
		plans := make([]Plan, 0, len(c.tiers))
		for _, t := range c.tiers {
			plans = append(plans, Plan{
				Tier:        t.tier,
				Name:        t.name,
				Description: t.description,
				Price:       t.price,
				ListPrice:   ListPrice(t.price),
				Promotion:   "15% off first 6 months",
				TrialDays:   TrialDays,
			})
		}
		return plans, true
	}
	return nil, false
}
