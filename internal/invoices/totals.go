package invoices

import (
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/money"
)

// Totals is the financial rollup of one invoice.
type Totals struct {
	Subtotal           decimal.Decimal
	TotalCost          decimal.Decimal
	TotalPackagingCost decimal.Decimal
	Total              decimal.Decimal
	Profit             decimal.Decimal
	ProfitMargin       decimal.Decimal
	MarkupPercentage   decimal.Decimal
}

// ComputeTotals derives the rollup from the supplied packages (or legacy flat
// items when no packages are given). The delivery fee is revenue-neutral: it
// raises the total but is subtracted back out of profit.
func ComputeTotals(packages []PackageInput, items []ItemInput, discount, deliveryFee decimal.Decimal) Totals {
	subtotal := money.Zero()
	itemCost := money.Zero()
	packagingCost := money.Zero()

	if len(packages) > 0 {
		for _, pkg := range packages {
			subtotal = subtotal.Add(money.FromFloat(pkg.PackagePrice))
			packagingCost = packagingCost.Add(money.FromFloat(pkg.PackagingCost))
			for _, item := range pkg.Items {
				itemCost = itemCost.Add(money.MulInt(money.FromFloat(item.CostPrice), item.Quantity))
			}
		}
	} else {
		for _, item := range items {
			subtotal = subtotal.Add(money.MulInt(money.FromFloat(item.UnitPrice), item.Quantity))
			itemCost = itemCost.Add(money.MulInt(money.FromFloat(item.CostPrice), item.Quantity))
		}
	}

	totalCost := itemCost.Add(packagingCost)
	total := subtotal.Sub(discount).Add(deliveryFee)
	profit := total.Sub(totalCost).Sub(deliveryFee)

	return Totals{
		Subtotal:           money.Round(subtotal),
		TotalCost:          money.Round(totalCost),
		TotalPackagingCost: money.Round(packagingCost),
		Total:              money.Round(total),
		Profit:             money.Round(profit),
		ProfitMargin:       money.Ratio(profit, total),
		MarkupPercentage:   money.Ratio(profit, totalCost),
	}
}
