// Package analytics aggregates catalog and ledger snapshots into reports.
// Everything here is a pure function over the slices it is handed.
package analytics

import (
	"fmt"
	"math"
	"sort"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

const (
	// LowStockThreshold flags products worth restocking soon.
	LowStockThreshold = 100
	// CriticalStockThreshold feeds the issue list.
	CriticalStockThreshold = 50

	pendingBacklogLimit = 5
)

// Report builds the full analytics snapshot. Revenue sums total_amount over
// every order regardless of status; pending and cancelled orders count too.
func Report(products []contractx.Product, orders []contractx.Order, users []contractx.User) contractx.Analytics {
	statusCounts := make(map[string]int, len(contractx.OrderStatuses))
	for _, s := range contractx.OrderStatuses {
		statusCounts[string(s)] = 0
	}

	var revenue float64
	for _, o := range orders {
		status := string(o.Status)
		if status == "" {
			status = string(contractx.StatusPending)
		}
		statusCounts[status]++
		revenue += o.TotalAmount
	}

	customers := 0
	for _, u := range users {
		if u.Role == contractx.RoleCustomer {
			customers++
		}
	}

	var inventoryValue float64
	for _, p := range products {
		inventoryValue += p.Price * float64(p.StockQuantity)
	}

	return contractx.Analytics{
		TotalOrders:        len(orders),
		StatusCounts:       statusCounts,
		TotalRevenue:       round2(revenue),
		TotalCustomers:     customers,
		LowStockProducts:   LowStock(products, LowStockThreshold),
		TopSellingProducts: TopSellers(products, orders, 5),
		InventoryValue:     round2(inventoryValue),
	}
}

// LowStock returns products with quantity strictly below threshold, in
// catalog order.
func LowStock(products []contractx.Product, threshold int) []contractx.Product {
	var out []contractx.Product
	for _, p := range products {
		if p.StockQuantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// TopSellers ranks products by total quantity sold across all order lines,
// descending. Ties keep catalog order. Line items whose product no longer
// exists in the catalog are dropped.
func TopSellers(products []contractx.Product, orders []contractx.Order, limit int) []contractx.TopProduct {
	sold := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			sold[item.ProductID] += item.Quantity
		}
	}

	ranked := make([]contractx.TopProduct, 0, len(sold))
	for _, p := range products {
		qty, ok := sold[p.ProductID]
		if !ok || qty == 0 {
			continue
		}
		ranked = append(ranked, contractx.TopProduct{
			ProductID:    p.ProductID,
			Name:         p.Name,
			QuantitySold: qty,
			Revenue:      round2(float64(qty) * p.Price),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QuantitySold > ranked[j].QuantitySold
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Trends summarizes order volume over the given period.
func Trends(orders []contractx.Order, days int) contractx.TrendReport {
	if days <= 0 {
		days = 7
	}

	var avg float64
	if len(orders) > 0 {
		var total float64
		for _, o := range orders {
			total += o.TotalAmount
		}
		avg = round2(total / float64(len(orders)))
	}

	return contractx.TrendReport{
		PeriodDays:        days,
		TotalOrders:       len(orders),
		AverageOrderValue: avg,
		Trend:             "stable",
	}
}

// Issues scans for operational problems: low or exhausted stock and a
// pending-order backlog. An empty scan yields a single informational entry
// so callers always have something to show.
func Issues(products []contractx.Product, orders []contractx.Order) []contractx.Issue {
	var issues []contractx.Issue

	lowStock := LowStock(products, CriticalStockThreshold)
	if len(lowStock) > 0 {
		severity := "medium"
		for _, p := range lowStock {
			if p.StockQuantity < 10 {
				severity = "high"
				break
			}
		}
		issues = append(issues, contractx.Issue{
			Type:           "inventory",
			Severity:       severity,
			Message:        fmt.Sprintf("%d products have low stock", len(lowStock)),
			Products:       productNames(lowStock),
			Recommendation: "Consider reordering these products",
		})
	}

	pending := 0
	for _, o := range orders {
		if o.Status == contractx.StatusPending {
			pending++
		}
	}
	if pending > pendingBacklogLimit {
		issues = append(issues, contractx.Issue{
			Type:           "orders",
			Severity:       "medium",
			Message:        fmt.Sprintf("%d orders are pending processing", pending),
			Recommendation: "Review and process pending orders",
		})
	}

	var outOfStock []contractx.Product
	for _, p := range products {
		if p.StockQuantity == 0 {
			outOfStock = append(outOfStock, p)
		}
	}
	if len(outOfStock) > 0 {
		issues = append(issues, contractx.Issue{
			Type:           "inventory",
			Severity:       "high",
			Message:        fmt.Sprintf("%d products are out of stock", len(outOfStock)),
			Products:       productNames(outOfStock),
			Recommendation: "Restock these items or mark as unavailable",
		})
	}

	if len(issues) == 0 {
		return []contractx.Issue{{Type: "info", Message: "No issues detected"}}
	}
	return issues
}

func productNames(products []contractx.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
