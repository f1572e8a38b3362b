// Package store owns the in-memory catalog, order ledger, and user
// collections. Agents receive these by injection and mutate them only
// through the methods here; lookups hand out copies so internal slices
// never escape.
package store

import (
	"fmt"
	"sync"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

// Catalog holds products in their load order. Iteration order is part of
// the contract: alternative suggestions and low-stock lists preserve it.
type Catalog struct {
	mu       sync.RWMutex
	products []contractx.Product
}

func NewCatalog(products []contractx.Product) *Catalog {
	return &Catalog{
		products: append([]contractx.Product(nil), products...),
	}
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// List returns a snapshot copy in catalog order.
func (c *Catalog) List() []contractx.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]contractx.Product(nil), c.products...)
}

func (c *Catalog) ByID(productID string) (contractx.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(productID)
	if idx < 0 {
		return contractx.Product{}, false
	}
	return c.products[idx], true
}

// AdjustStock applies an additive delta to a product's stock. It is the
// boundary that keeps stock quantities non-negative: a delta that would
// drive the quantity below zero fails without mutating anything.
func (c *Catalog) AdjustStock(productID string, delta int) (contractx.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(productID)
	if idx < 0 {
		return contractx.Product{}, fmt.Errorf("%w: product %s", contractx.ErrNotFound, productID)
	}

	next := c.products[idx].StockQuantity + delta
	if next < 0 {
		return contractx.Product{}, fmt.Errorf(
			"%w: product %s has %d, delta %d",
			contractx.ErrInsufficientStock, productID, c.products[idx].StockQuantity, delta,
		)
	}

	c.products[idx].StockQuantity = next
	return c.products[idx], nil
}

// StockDecrement is one staged line of an order transaction.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// DecrementBatch commits a set of staged decrements atomically: every line
// is validated against current stock before any line is applied, so an
// order abort never leaves partial decrements behind.
func (c *Catalog) DecrementBatch(items []StockDecrement) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Duplicate lines for one product are legal input; validation compares
	// the aggregate request against stock so they cannot slip past a
	// per-line check and drive the quantity negative.
	requested := make(map[string]int, len(items))
	for _, item := range items {
		idx := c.indexOf(item.ProductID)
		if idx < 0 {
			return fmt.Errorf("%w: product %s", contractx.ErrNotFound, item.ProductID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %s", contractx.ErrValidation, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
		if c.products[idx].StockQuantity < requested[item.ProductID] {
			return fmt.Errorf(
				"%w: product %s has %d, requested %d",
				contractx.ErrInsufficientStock, item.ProductID, c.products[idx].StockQuantity, requested[item.ProductID],
			)
		}
	}

	for _, item := range items {
		idx := c.indexOf(item.ProductID)
		c.products[idx].StockQuantity -= item.Quantity
	}
	return nil
}

// indexOf must be called with the lock held.
func (c *Catalog) indexOf(productID string) int {
	for i := range c.products {
		if c.products[i].ProductID == productID {
			return i
		}
	}
	return -1
}
