package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// BudgetSummary is the spend position of a list against its budget.
type BudgetSummary struct {
	Spent      decimal.Decimal `json:"spent"`
	Budget     decimal.Decimal `json:"budget"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"over_budget"`
}

// TotalSpend sums quantity × unit price over every product, checked or not.
func TotalSpend(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Subtotal())
	}
	return total
}

// SummarizeBudget computes the spend position for a list. A zero budget
// yields percentage 0 rather than a division fault; "unset" and
// "deliberately zero" budgets are not distinguished.
func SummarizeBudget(budget decimal.Decimal, products []Product) BudgetSummary {
	spent := TotalSpend(products)
	remaining := budget.Sub(spent)

	percentage := decimal.Zero
	if budget.IsPositive() {
		percentage = spent.Div(budget).Mul(hundred).Round(2)
	}

	return BudgetSummary{
		Spent:      spent,
		Budget:     budget,
		Remaining:  remaining,
		Percentage: percentage,
		OverBudget: remaining.IsNegative(),
	}
}
