package inquiry

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, _ contractx.AgentType, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestAgent(t *testing.T, gen contractx.Generator) *Agent {
	t.Helper()

	catalog := storex.NewCatalog([]contractx.Product{
		{ProductID: "prod_1", Name: "Wireless Keyboard", Description: "Compact mechanical keyboard", Category: "electronics", Price: 49.99, StockQuantity: 150, Unit: "units"},
		{ProductID: "prod_2", Name: "USB-C Hub", Description: "7-port hub with HDMI", Category: "electronics", Price: 29.50, StockQuantity: 40, Unit: "units"},
		{ProductID: "prod_3", Name: "Desk Lamp", Description: "Adjustable LED lamp", Category: "office", Price: 19.99, StockQuantity: 80, Unit: "units"},
	})

	agent, err := New(catalog, gen)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return agent
}

func TestHandleInquirySuccess(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{
		"success": true,
		"message": "Yes! The Wireless Keyboard is $49.99 and we have 150 in stock.",
		"products_mentioned": [{"product_id": "prod_1", "product_name": "Wireless Keyboard", "price": 49.99, "available_quantity": 150}]
	}`}
	agent := newTestAgent(t, gen)

	result := agent.HandleInquiry(context.Background(), "do you have keyboards?", nil)

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(result.ProductsMentioned) != 1 || result.ProductsMentioned[0].ProductID != "prod_1" {
		t.Fatalf("mentions = %+v", result.ProductsMentioned)
	}
}

func TestHandleInquiryGenerationFailure(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	agent := newTestAgent(t, gen)

	result := agent.HandleInquiry(context.Background(), "prices?", nil)

	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Error == "" {
		t.Fatal("expected error detail")
	}
}

func TestHandleInquiryUnparseableResponseFallsBack(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "we sell lots of nice things"}
	agent := newTestAgent(t, gen)

	result := agent.HandleInquiry(context.Background(), "what do you sell?", nil)

	if !result.Success {
		t.Fatalf("fallback should still succeed, got %+v", result)
	}
	if !strings.Contains(result.Message, "more specific") {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	agent := newTestAgent(t, &fakeGenerator{})

	byName := agent.SearchProducts("keyboard")
	if len(byName) != 1 || byName[0].ProductID != "prod_1" {
		t.Fatalf("byName = %+v", byName)
	}

	byDescription := agent.SearchProducts("HDMI")
	if len(byDescription) != 1 || byDescription[0].ProductID != "prod_2" {
		t.Fatalf("byDescription = %+v", byDescription)
	}

	byCategory := agent.SearchProducts("ELECTRONICS")
	if len(byCategory) != 2 {
		t.Fatalf("byCategory = %+v", byCategory)
	}

	if got := agent.SearchProducts("   "); got != nil {
		t.Fatalf("blank keyword = %+v", got)
	}
	if got := agent.SearchProducts("telescope"); len(got) != 0 {
		t.Fatalf("no-match = %+v", got)
	}
}

func TestProductsByCategory(t *testing.T) {
	t.Parallel()

	agent := newTestAgent(t, &fakeGenerator{})

	office := agent.ProductsByCategory("Office")
	if len(office) != 1 || office[0].ProductID != "prod_3" {
		t.Fatalf("office = %+v", office)
	}
}

func TestBuildPromptIncludesHistoryAndCatalog(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{"success": true, "message": "ok", "products_mentioned": []}`}
	agent := newTestAgent(t, gen)

	history := []contractx.ChatMessage{
		{Role: "user", Content: "do you have lamps?"},
		{Role: "assistant", Content: "We do! The Desk Lamp is $19.99."},
	}
	agent.HandleInquiry(context.Background(), "how many are in stock?", history)

	if len(gen.prompts) != 1 {
		t.Fatalf("prompts = %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	for _, want := range []string{
		"USER: do you have lamps?",
		"Desk Lamp (ID: prod_3)",
		"Adjustable LED lamp",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
