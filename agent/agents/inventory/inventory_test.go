package inventory

import (
	"strings"
	"testing"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

func newTestAgent(t *testing.T) (*Agent, *storex.Catalog) {
	t.Helper()

	catalog := storex.NewCatalog([]contractx.Product{
		{ProductID: "prod_1", Name: "Wireless Keyboard", Category: "electronics", Price: 49.99, StockQuantity: 150, Unit: "units"},
		{ProductID: "prod_2", Name: "USB-C Hub", Category: "electronics", Price: 29.50, StockQuantity: 40, Unit: "units"},
		{ProductID: "prod_3", Name: "Wireless Mouse", Category: "electronics", Price: 24.99, StockQuantity: 0, Unit: "units"},
		{ProductID: "prod_4", Name: "Webcam", Category: "electronics", Price: 79.99, StockQuantity: 12, Unit: "units"},
		{ProductID: "prod_5", Name: "Monitor Light", Category: "electronics", Price: 39.99, StockQuantity: 7, Unit: "units"},
		{ProductID: "prod_6", Name: "Desk Lamp", Category: "office", Price: 19.99, StockQuantity: 100, Unit: "units"},
	})

	agent, err := New(catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return agent, catalog
}

func TestCheckStockAvailable(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	result := agent.CheckStock("prod_1", 150)

	if !result.Available {
		t.Fatalf("expected available, got %+v", result)
	}
	if result.AvailableQuantity != 150 {
		t.Fatalf("available quantity = %d", result.AvailableQuantity)
	}
	if result.Product == nil || result.Product.Name != "Wireless Keyboard" {
		t.Fatalf("product = %+v", result.Product)
	}
}

func TestCheckStockInsufficient(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	result := agent.CheckStock("prod_2", 41)

	if result.Available {
		t.Fatalf("expected unavailable, got %+v", result)
	}
	if !strings.Contains(result.Reason, "Available: 40") || !strings.Contains(result.Reason, "Requested: 41") {
		t.Fatalf("reason = %q", result.Reason)
	}
	if result.AvailableQuantity != 40 {
		t.Fatalf("available quantity = %d", result.AvailableQuantity)
	}
}

func TestCheckStockUnknownProduct(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	result := agent.CheckStock("prod_missing", 1)

	if result.Available || result.Reason != "Product not found" {
		t.Fatalf("result = %+v", result)
	}
}

func TestLowStockStrictBoundary(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	low := agent.LowStock(100)

	// prod_6 has exactly 100 and must not appear.
	ids := make([]string, 0, len(low))
	for _, p := range low {
		ids = append(ids, p.ProductID)
	}
	want := []string{"prod_2", "prod_3", "prod_4", "prod_5"}
	if len(ids) != len(want) {
		t.Fatalf("low stock ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("low stock ids = %v, want %v", ids, want)
		}
	}
}

func TestLowStockDefaultThreshold(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	if got, want := len(agent.LowStock(0)), len(agent.LowStock(DefaultLowStockThreshold)); got != want {
		t.Fatalf("default threshold mismatch: %d vs %d", got, want)
	}
}

func TestSuggestAlternatives(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	alts := agent.SuggestAlternatives("prod_3")

	// Same category, in stock, excluding the product itself, capped at 3.
	want := []string{"prod_1", "prod_2", "prod_4"}
	if len(alts) != len(want) {
		t.Fatalf("alternatives = %+v", alts)
	}
	for i, p := range alts {
		if p.ProductID != want[i] {
			t.Fatalf("alternatives[%d] = %q, want %q", i, p.ProductID, want[i])
		}
	}
}

func TestSuggestAlternativesDifferentCategory(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	alts := agent.SuggestAlternatives("prod_6")

	if len(alts) != 0 {
		t.Fatalf("expected no office alternatives, got %+v", alts)
	}
}

func TestSuggestAlternativesUnknownProduct(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	if alts := agent.SuggestAlternatives("prod_missing"); alts != nil {
		t.Fatalf("alternatives = %+v", alts)
	}
}

func TestUpdateStockRestock(t *testing.T) {
	t.Parallel()

	agent, catalog := newTestAgent(t)

	result := agent.UpdateStock("prod_3", 25)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Product == nil || result.Product.StockQuantity != 25 {
		t.Fatalf("product = %+v", result.Product)
	}

	p, _ := catalog.ByID("prod_3")
	if p.StockQuantity != 25 {
		t.Fatalf("catalog stock = %d", p.StockQuantity)
	}
}

func TestUpdateStockSellToZero(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	result := agent.UpdateStock("prod_5", -7)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Product.StockQuantity != 0 {
		t.Fatalf("stock = %d, want 0", result.Product.StockQuantity)
	}
}

func TestUpdateStockBelowZeroRejected(t *testing.T) {
	t.Parallel()

	agent, catalog := newTestAgent(t)

	result := agent.UpdateStock("prod_5", -8)

	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Message != "Cannot reduce stock below zero" {
		t.Fatalf("message = %q", result.Message)
	}

	p, _ := catalog.ByID("prod_5")
	if p.StockQuantity != 7 {
		t.Fatalf("stock mutated on rejected update: %d", p.StockQuantity)
	}
}

func TestUpdateStockUnknownProduct(t *testing.T) {
	t.Parallel()

	agent, _ := newTestAgent(t)

	result := agent.UpdateStock("prod_missing", 5)

	if result.Success || result.Message != "Product not found" {
		t.Fatalf("result = %+v", result)
	}
}
