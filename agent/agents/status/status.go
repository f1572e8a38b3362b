// Package status resolves free-text order-status questions against a
// user's order history and performs status transitions.
package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	"github.com/tanpawarit/agentic-oms/agent/extract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

const maxRecentSummaries = 3

// deliveryETA is keyed by order status for the deterministic fallback.
var deliveryETA = map[contractx.OrderStatus]string{
	contractx.StatusPending:    "Your order will be processed within 1-2 business days.",
	contractx.StatusProcessing: "Your order is being prepared and will ship soon.",
	contractx.StatusShipped:    "Your order is on the way! Expected delivery in 3-5 business days.",
	contractx.StatusDelivered:  "Your order has been delivered.",
	contractx.StatusCancelled:  "This order has been cancelled.",
}

type Agent struct {
	ledger *storex.Ledger
	gen    contractx.Generator

	now func() time.Time
}

type statusIntent struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	OrderIDs []string `json:"order_ids"`
	Details  string   `json:"details,omitempty"`
}

func New(ledger *storex.Ledger, gen contractx.Generator) (*Agent, error) {
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	return &Agent{
		ledger: ledger,
		gen:    gen,
		now:    time.Now,
	}, nil
}

// HandleStatusQuery answers a free-text status question. When extraction
// fails or names no real order, the answer degrades to the user's full
// order list rather than "nothing found".
func (a *Agent) HandleStatusQuery(ctx context.Context, query, userID string) contractx.StatusResult {
	userOrders := a.ledger.ByUser(userID)

	raw, err := a.gen.Generate(ctx, contractx.AgentTypeStatus, a.buildPrompt(query, userID, userOrders))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("status model invoke failed")
		return a.fallbackResult(userOrders)
	}

	intent, err := extract.Structured[statusIntent](raw)
	if err != nil {
		log.Warn().Str("user_id", userID).Msg("status response not parseable, using fallback")
		return a.fallbackResult(userOrders)
	}

	var relevant []contractx.Order
	for _, id := range intent.OrderIDs {
		for _, o := range userOrders {
			if o.OrderID == strings.TrimSpace(id) {
				relevant = append(relevant, o)
				break
			}
		}
	}
	// The extraction may under- or over-specify ids; an empty intersection
	// falls back to everything the user owns.
	if len(relevant) == 0 {
		relevant = userOrders
	}

	message := strings.TrimSpace(intent.Message)
	if message == "" {
		message = "Here are your orders:"
	}

	return contractx.StatusResult{
		Success: true,
		Message: message,
		Orders:  relevant,
	}
}

// UpdateOrderStatus applies a transition. Any valid status may replace any
// other; values outside the enumeration are rejected without mutation.
// Reapplying the current status succeeds and still refreshes updated_at.
func (a *Agent) UpdateOrderStatus(orderID, newStatus string) contractx.StatusUpdateResult {
	parsed, ok := contractx.ParseOrderStatus(newStatus)
	if !ok {
		return contractx.StatusUpdateResult{
			Success: false,
			Message: fmt.Sprintf("Invalid status. Must be one of: %s", validStatusList()),
		}
	}

	order, err := a.ledger.UpdateStatus(orderID, parsed, a.now())
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return contractx.StatusUpdateResult{
				Success: false,
				Message: "Order not found",
			}
		}
		return contractx.StatusUpdateResult{
			Success: false,
			Message: err.Error(),
		}
	}

	log.Info().Str("order_id", orderID).Str("status", string(parsed)).Msg("order status updated")
	return contractx.StatusUpdateResult{
		Success: true,
		Message: fmt.Sprintf("Order %s status updated to %s", orderID, parsed),
		Order:   &order,
	}
}

func (a *Agent) buildPrompt(query, userID string, orders []contractx.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer Query: %q\n", query)
	fmt.Fprintf(&b, "Customer ID: %s\n\n", userID)

	b.WriteString("Customer's Orders:\n")
	if len(orders) == 0 {
		b.WriteString("No orders found for this user.\n")
	}
	for _, o := range orders {
		fmt.Fprintf(&b, "Order %s: Status=%s, Total=$%.2f, Created=%s\n",
			o.OrderID, o.Status, o.TotalAmount, o.CreatedAt.UTC().Format(time.RFC3339))
	}

	return b.String()
}

// fallbackResult synthesizes an answer from the ledger alone.
func (a *Agent) fallbackResult(orders []contractx.Order) contractx.StatusResult {
	return contractx.StatusResult{
		Success: true,
		Message: fallbackMessage(orders),
		Orders:  orders,
	}
}

func fallbackMessage(orders []contractx.Order) string {
	if len(orders) == 0 {
		return "You don't have any orders yet."
	}

	if len(orders) == 1 {
		o := orders[0]
		eta := deliveryETA[o.Status]
		return fmt.Sprintf("Your order %s is currently %s (%s). %s",
			o.OrderID, o.Status, itemSummary(o), eta)
	}

	counts := make(map[contractx.OrderStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	var parts []string
	for _, s := range contractx.OrderStatuses {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d orders: %s.", len(orders), strings.Join(parts, ", "))

	// Most recent first; the ledger appends in creation order.
	shown := 0
	for i := len(orders) - 1; i >= 0 && shown < maxRecentSummaries; i-- {
		o := orders[i]
		fmt.Fprintf(&b, "\n- %s: %s, $%.2f", o.OrderID, o.Status, o.TotalAmount)
		shown++
	}
	return b.String()
}

func itemSummary(o contractx.Order) string {
	if len(o.Items) == 0 {
		return "no items"
	}
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, fmt.Sprintf("%d x %s", item.Quantity, item.ProductName))
	}
	return strings.Join(parts, ", ")
}

func validStatusList() string {
	parts := make([]string, 0, len(contractx.OrderStatuses))
	for _, s := range contractx.OrderStatuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
