package contract

import "context"

// Generator is the opaque text-generation capability consumed by the agents.
// The returned string carries no structural guarantee; callers run it
// through the shared extraction chain.
type Generator interface {
	Generate(ctx context.Context, agent AgentType, prompt string) (string, error)
}
