// Package admin routes free-text administrative commands: status-update
// mutations, inventory views, and general analytics questions. Generated
// text only ever supplies the conversational message; every number and
// record in a result comes from the stores.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/agentic-oms/agent/analytics"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	"github.com/tanpawarit/agentic-oms/agent/extract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

const (
	promptOrderWindow = 10
	recentOrderLimit  = 5
)

type Agent struct {
	catalog *storex.Catalog
	ledger  *storex.Ledger
	users   *storex.Users
	gen     contractx.Generator

	now func() time.Time
}

type adminIntent struct {
	Action    string `json:"action"`
	Message   string `json:"message"`
	OrderID   string `json:"order_id,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}

func New(catalog *storex.Catalog, ledger *storex.Ledger, users *storex.Users, gen contractx.Generator) (*Agent, error) {
	if catalog == nil {
		return nil, errors.New("catalog store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if users == nil {
		return nil, errors.New("users store is required")
	}
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	return &Agent{
		catalog: catalog,
		ledger:  ledger,
		users:   users,
		gen:     gen,
		now:     time.Now,
	}, nil
}

// HandleAdminQuery classifies and executes one administrative request.
func (a *Agent) HandleAdminQuery(ctx context.Context, query string) contractx.AdminResult {
	report := a.Analytics()

	raw, err := a.gen.Generate(ctx, contractx.AgentTypeAdmin, a.buildPrompt(query, report))
	if err != nil {
		log.Error().Err(err).Msg("admin model invoke failed")
		return a.fallbackResult(report)
	}

	intent, err := extract.Structured[adminIntent](raw)
	if err != nil {
		log.Warn().Msg("admin response not parseable, using analytics fallback")
		return a.fallbackResult(report)
	}

	switch strings.TrimSpace(intent.Action) {
	case contractx.AdminActionUpdateStatus:
		return a.applyStatusUpdate(intent)
	case contractx.AdminActionShowInventory:
		return a.inventoryResult(intent, report)
	default:
		return a.generalResult(intent, report)
	}
}

// Analytics builds the current snapshot from live store state.
func (a *Agent) Analytics() contractx.Analytics {
	return analytics.Report(a.catalog.List(), a.ledger.List(), a.users.List())
}

// Trends summarizes order volume over the given period.
func (a *Agent) Trends(days int) contractx.TrendReport {
	return analytics.Trends(a.ledger.List(), days)
}

// Issues scans for operational problems.
func (a *Agent) Issues() []contractx.Issue {
	return analytics.Issues(a.catalog.List(), a.ledger.List())
}

func (a *Agent) applyStatusUpdate(intent adminIntent) contractx.AdminResult {
	orderID := strings.TrimSpace(intent.OrderID)
	if orderID == "" {
		return contractx.AdminResult{
			Success: false,
			Action:  contractx.AdminActionUpdateStatus,
			Message: "No order id was identified in the request.",
		}
	}

	parsed, ok := contractx.ParseOrderStatus(intent.NewStatus)
	if !ok {
		return contractx.AdminResult{
			Success: false,
			Action:  contractx.AdminActionUpdateStatus,
			Message: fmt.Sprintf("Invalid status %q.", intent.NewStatus),
		}
	}

	order, err := a.ledger.UpdateStatus(orderID, parsed, a.now())
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return contractx.AdminResult{
				Success: false,
				Action:  contractx.AdminActionUpdateStatus,
				Message: fmt.Sprintf("Order %s not found.", orderID),
			}
		}
		return contractx.AdminResult{
			Success: false,
			Action:  contractx.AdminActionUpdateStatus,
			Message: err.Error(),
		}
	}

	message := strings.TrimSpace(intent.Message)
	if message == "" {
		message = fmt.Sprintf("Order %s status updated to %s.", orderID, parsed)
	}

	log.Info().Str("order_id", orderID).Str("status", string(parsed)).Msg("admin updated order status")
	return contractx.AdminResult{
		Success: true,
		Action:  contractx.AdminActionUpdateStatus,
		Message: message,
		Order:   &order,
	}
}

// inventoryResult ignores whatever product data the model emitted and
// answers with the authoritative catalog.
func (a *Agent) inventoryResult(intent adminIntent, report contractx.Analytics) contractx.AdminResult {
	products := a.catalog.List()

	message := strings.TrimSpace(intent.Message)
	if message == "" {
		message = "Here is the current inventory."
	}

	return contractx.AdminResult{
		Success:   true,
		Action:    contractx.AdminActionShowInventory,
		Message:   message,
		Products:  products,
		LowStock:  analytics.LowStock(products, analytics.LowStockThreshold),
		Analytics: &report,
	}
}

func (a *Agent) generalResult(intent adminIntent, report contractx.Analytics) contractx.AdminResult {
	message := strings.TrimSpace(intent.Message)
	if message == "" {
		message = fallbackSummary(report)
	}

	return contractx.AdminResult{
		Success:   true,
		Action:    contractx.AdminActionGeneral,
		Message:   message,
		Orders:    a.recentOrders(recentOrderLimit),
		Analytics: &report,
	}
}

// fallbackResult answers purely from the analytics snapshot when the model
// output is unusable.
func (a *Agent) fallbackResult(report contractx.Analytics) contractx.AdminResult {
	return contractx.AdminResult{
		Success:   true,
		Action:    contractx.AdminActionGeneral,
		Message:   fallbackSummary(report),
		Orders:    a.recentOrders(recentOrderLimit),
		Analytics: &report,
	}
}

func fallbackSummary(report contractx.Analytics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d orders in total", report.TotalOrders)

	var parts []string
	for _, s := range contractx.OrderStatuses {
		if n := report.StatusCounts[string(s)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, ". Total revenue: $%.2f.", report.TotalRevenue)
	return b.String()
}

func (a *Agent) recentOrders(limit int) []contractx.Order {
	orders := a.ledger.List()
	if len(orders) > limit {
		orders = orders[len(orders)-limit:]
	}
	return orders
}

func (a *Agent) buildPrompt(query string, report contractx.Analytics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Admin Request: %q\n\n", query)

	b.WriteString("Current Analytics:\n")
	if snapshot, err := json.MarshalIndent(report, "", "  "); err == nil {
		b.Write(snapshot)
		b.WriteString("\n")
	}

	b.WriteString("\nRecent Orders:\n")
	for _, o := range a.recentOrders(promptOrderWindow) {
		fmt.Fprintf(&b, "Order %s: User=%s, Status=%s, Total=$%.2f, Created=%s\n",
			o.OrderID, o.UserID, o.Status, o.TotalAmount, o.CreatedAt.UTC().Format(time.RFC3339))
	}

	b.WriteString("\nProducts:\n")
	for _, p := range a.catalog.List() {
		fmt.Fprintf(&b, "- %s (ID: %s): $%.2f, %d %s in stock, category=%s\n",
			p.Name, p.ProductID, p.Price, p.StockQuantity, p.Unit, p.Category)
	}

	return b.String()
}
