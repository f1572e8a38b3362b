// Package order turns a free-text purchase request into a validated order
// transaction: intent extraction via the generation gateway, then staged
// stock decrements committed atomically with the ledger append.
package order

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	"github.com/tanpawarit/agentic-oms/agent/extract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

const historyWindow = 6 // last 3 exchanges

type Agent struct {
	catalog *storex.Catalog
	ledger  *storex.Ledger
	gen     contractx.Generator

	now   func() time.Time
	newID func() string
}

// orderIntent is the structured shape the model is asked to emit.
type orderIntent struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
	Products []struct {
		ProductID   string `json:"product_id"`
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
	} `json:"products"`
}

func New(catalog *storex.Catalog, ledger *storex.Ledger, gen contractx.Generator) (*Agent, error) {
	if catalog == nil {
		return nil, errors.New("catalog store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	return &Agent{
		catalog: catalog,
		ledger:  ledger,
		gen:     gen,
		now:     time.Now,
		newID:   newOrderID,
	}, nil
}

// ProcessOrder runs the full pipeline for one customer message. Every
// outcome is a tagged result; no error escapes to the caller.
func (a *Agent) ProcessOrder(ctx context.Context, message, userID string, history []contractx.ChatMessage) contractx.OrderResult {
	prompt := a.buildPrompt(message, userID, history)
	log.Debug().Str("user_id", userID).Msg("processing order request")

	raw, err := a.gen.Generate(ctx, contractx.AgentTypeOrder, prompt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("order model invoke failed")
		return contractx.OrderResult{
			Success: false,
			Message: "An error occurred while processing your order.",
			Error:   err.Error(),
		}
	}

	intent, err := extract.Structured[orderIntent](raw)
	if err != nil {
		log.Warn().Str("user_id", userID).Msg("order response not parseable, rejecting")
		return contractx.OrderResult{
			Success: false,
			Message: "Unable to process order. Please try again.",
			Error:   "invalid agent response format",
		}
	}

	// Classification happens in the model: an inquiry or ambiguous message
	// comes back with success=false or no product lines, and the ledger is
	// never touched.
	if !intent.Success || len(intent.Products) == 0 {
		msg := strings.TrimSpace(intent.Message)
		if msg == "" {
			msg = "I couldn't identify an order in your message. Could you specify the product and quantity?"
		}
		return contractx.OrderResult{
			Success: false,
			Message: msg,
			Error:   intent.Error,
		}
	}

	return a.commit(intent, userID)
}

// commit validates the extracted lines against the catalog, stages stock
// decrements, and applies them atomically with the ledger append. An abort
// at any point leaves both stores untouched.
func (a *Agent) commit(intent orderIntent, userID string) contractx.OrderResult {
	var (
		items       []contractx.OrderItem
		staged      []storex.StockDecrement
		totalAmount float64
	)

	for _, line := range intent.Products {
		product, ok := a.catalog.ByID(line.ProductID)
		if !ok {
			// Unrecognized lines are dropped rather than failing the order.
			log.Warn().Str("product_id", line.ProductID).Msg("order line references unknown product, skipping")
			continue
		}
		if line.Quantity <= 0 {
			log.Warn().Str("product_id", line.ProductID).Int("quantity", line.Quantity).Msg("order line has non-positive quantity, skipping")
			continue
		}

		if product.StockQuantity < line.Quantity {
			return contractx.OrderResult{
				Success: false,
				Message: fmt.Sprintf(
					"Sorry, we only have %d %s of %s in stock right now (you asked for %d).",
					product.StockQuantity, product.Unit, product.Name, line.Quantity,
				),
			}
		}

		itemTotal := round2(float64(line.Quantity) * product.Price)
		items = append(items, contractx.OrderItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  itemTotal,
		})
		staged = append(staged, storex.StockDecrement{
			ProductID: product.ProductID,
			Quantity:  line.Quantity,
		})
		totalAmount += itemTotal
	}

	if len(items) == 0 || totalAmount == 0 {
		return contractx.OrderResult{
			Success: false,
			Message: "I couldn't match any of the requested products to our catalog. Could you check the product names?",
		}
	}

	if err := a.catalog.DecrementBatch(staged); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("stock commit failed")
		return contractx.OrderResult{
			Success: false,
			Message: "One of the requested products is no longer available in the requested quantity.",
			Error:   err.Error(),
		}
	}

	now := a.now().UTC()
	order := contractx.Order{
		OrderID:     a.newID(),
		UserID:      userID,
		Items:       items,
		TotalAmount: round2(totalAmount),
		Status:      contractx.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.ledger.Append(order)

	msg := strings.TrimSpace(intent.Message)
	if msg == "" {
		msg = "Order processed successfully!"
	}

	log.Info().Str("order_id", order.OrderID).Str("user_id", userID).Float64("total", order.TotalAmount).Msg("order created")
	return contractx.OrderResult{
		Success:      true,
		Message:      msg,
		OrderID:      order.OrderID,
		OrderDetails: &order,
	}
}

func (a *Agent) buildPrompt(message, userID string, history []contractx.ChatMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer Message: %q\n", message)
	fmt.Fprintf(&b, "Customer ID: %s\n", userID)

	if len(history) > 0 {
		start := len(history) - historyWindow
		if start < 0 {
			start = 0
		}
		b.WriteString("\nPrevious Conversation:\n")
		for _, msg := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(msg.Role), msg.Content)
		}
	}

	b.WriteString("\nAvailable Products:\n")
	for _, p := range a.catalog.List() {
		fmt.Fprintf(&b, "- %s (ID: %s): $%.2f each, %d in stock\n", p.Name, p.ProductID, p.Price, p.StockQuantity)
	}

	return b.String()
}

func newOrderID() string {
	id := uuid.New()
	return "order_" + hex.EncodeToString(id[:])[:8]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
