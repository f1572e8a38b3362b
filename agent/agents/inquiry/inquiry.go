// Package inquiry answers product questions: availability, prices, and
// discovery. It never mutates state.
package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	"github.com/tanpawarit/agentic-oms/agent/extract"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
)

const historyWindow = 6 // last 3 exchanges

type Agent struct {
	catalog *storex.Catalog
	gen     contractx.Generator
}

type inquiryReply struct {
	Success           bool                       `json:"success"`
	Message           string                     `json:"message"`
	ProductsMentioned []contractx.ProductMention `json:"products_mentioned"`
}

func New(catalog *storex.Catalog, gen contractx.Generator) (*Agent, error) {
	if catalog == nil {
		return nil, errors.New("catalog store is required")
	}
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	return &Agent{catalog: catalog, gen: gen}, nil
}

// HandleInquiry answers one customer question about products.
func (a *Agent) HandleInquiry(ctx context.Context, message string, history []contractx.ChatMessage) contractx.InquiryResult {
	raw, err := a.gen.Generate(ctx, contractx.AgentTypeInquiry, a.buildPrompt(message, history))
	if err != nil {
		log.Error().Err(err).Msg("inquiry model invoke failed")
		return contractx.InquiryResult{
			Success: false,
			Message: "I'm having trouble processing your inquiry. Please try asking again.",
			Error:   err.Error(),
		}
	}

	reply, err := extract.Structured[inquiryReply](raw)
	if err != nil {
		log.Warn().Msg("inquiry response not parseable, using fallback")
		return contractx.InquiryResult{
			Success: true,
			Message: "I'd be happy to help! Could you please be more specific about which products you're interested in?",
		}
	}

	msg := strings.TrimSpace(reply.Message)
	if msg == "" {
		msg = "Happy to help! Let me know which products you're curious about."
	}

	return contractx.InquiryResult{
		Success:           true,
		Message:           msg,
		ProductsMentioned: reply.ProductsMentioned,
	}
}

// SearchProducts matches keyword against name, description, and category.
func (a *Agent) SearchProducts(keyword string) []contractx.Product {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}

	var out []contractx.Product
	for _, p := range a.catalog.List() {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (a *Agent) AllProducts() []contractx.Product {
	return a.catalog.List()
}

func (a *Agent) ProductsByCategory(category string) []contractx.Product {
	var out []contractx.Product
	for _, p := range a.catalog.List() {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (a *Agent) buildPrompt(message string, history []contractx.ChatMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer Question: %q\n", message)

	if len(history) > 0 {
		start := len(history) - historyWindow
		if start < 0 {
			start = 0
		}
		b.WriteString("\nPrevious Conversation:\n")
		for _, msg := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(msg.Role), msg.Content)
		}
		b.WriteString("\nUse the conversation history to provide contextual responses.\n")
	}

	b.WriteString("\nAvailable Products in Our Inventory:\n")
	for _, p := range a.catalog.List() {
		fmt.Fprintf(&b, "- %s (ID: %s): $%.2f each, %d %s in stock - %s\n",
			p.Name, p.ProductID, p.Price, p.StockQuantity, p.Unit, p.Description)
	}

	return b.String()
}
