// Package inventory implements deterministic stock operations: availability
// checks, low-stock scans, alternative suggestions, and the single
// validated stock-mutation entry point.
package inventory

import (
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

// DefaultLowStockThreshold matches the restocking report threshold.
const DefaultLowStockThreshold = 100

const maxAlternatives = 3

type Agent struct {
	catalog *storex.Catalog
}

func New(catalog *storex.Catalog) (*Agent, error) {
	if catalog == nil {
		return nil, errors.New("catalog store is required")
	}
	return &Agent{catalog: catalog}, nil
}

// CheckStock reports whether the requested quantity can be fulfilled.
func (a *Agent) CheckStock(productID string, requestedQuantity int) contractx.Availability {
	product, ok := a.catalog.ByID(productID)
	if !ok {
		return contractx.Availability{
			Available: false,
			Reason:    "Product not found",
		}
	}

	if product.StockQuantity < requestedQuantity {
		return contractx.Availability{
			Available:         false,
			Reason:            fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", product.StockQuantity, requestedQuantity),
			Product:           &product,
			AvailableQuantity: product.StockQuantity,
		}
	}

	return contractx.Availability{
		Available:         true,
		Product:           &product,
		AvailableQuantity: product.StockQuantity,
	}
}

// LowStock returns products with stock strictly below threshold, in catalog
// order. A non-positive threshold falls back to the default.
func (a *Agent) LowStock(threshold int) []contractx.Product {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	var out []contractx.Product
	for _, p := range a.catalog.List() {
		if p.StockQuantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// SuggestAlternatives returns up to three in-stock products sharing the
// given product's category, in catalog order.
func (a *Agent) SuggestAlternatives(productID string) []contractx.Product {
	original, ok := a.catalog.ByID(productID)
	if !ok {
		return nil
	}

	var out []contractx.Product
	for _, p := range a.catalog.List() {
		if p.ProductID == productID {
			continue
		}
		if p.Category != original.Category || p.StockQuantity <= 0 {
			continue
		}
		out = append(out, p)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}

// UpdateStock applies an additive delta: positive restocks, negative sells.
// A delta that would drive the quantity negative fails without mutation.
func (a *Agent) UpdateStock(productID string, delta int) contractx.StockUpdateResult {
	product, err := a.catalog.AdjustStock(productID, delta)
	if err != nil {
		switch {
		case errors.Is(err, contractx.ErrNotFound):
			return contractx.StockUpdateResult{
				Success: false,
				Message: "Product not found",
			}
		case errors.Is(err, contractx.ErrInsufficientStock):
			return contractx.StockUpdateResult{
				Success: false,
				Message: "Cannot reduce stock below zero",
			}
		default:
			return contractx.StockUpdateResult{
				Success: false,
				Message: err.Error(),
			}
		}
	}

	return contractx.StockUpdateResult{
		Success: true,
		Message: fmt.Sprintf("Stock updated for %s", product.Name),
		Product: &product,
	}
}
