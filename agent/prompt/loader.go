package prompt

import (
	_ "embed"
	"strings"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

var (
	//go:embed template/order.txt
	orderRaw string

	//go:embed template/status.txt
	statusRaw string

	//go:embed template/admin.txt
	adminRaw string

	//go:embed template/inquiry.txt
	inquiryRaw string
)

// PromptSet holds the persona and instruction prompt per agent.
type PromptSet struct {
	Order   string
	Status  string
	Admin   string
	Inquiry string
}

// LoadPromptSet returns trimmed prompt strings. Safe to call concurrently;
// the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Order:   strings.TrimSpace(orderRaw),
		Status:  strings.TrimSpace(statusRaw),
		Admin:   strings.TrimSpace(adminRaw),
		Inquiry: strings.TrimSpace(inquiryRaw),
	}
}

// For returns the prompt for the given agent, or empty when the agent has
// no generation path (the inventory agent is fully deterministic).
func (p PromptSet) For(agentType contractx.AgentType) string {
	switch agentType {
	case contractx.AgentTypeOrder:
		return p.Order
	case contractx.AgentTypeStatus:
		return p.Status
	case contractx.AgentTypeAdmin:
		return p.Admin
	case contractx.AgentTypeInquiry:
		return p.Inquiry
	default:
		return ""
	}
}
