// Package gateway wraps the chat model behind the fixed persona
// configuration each agent imposes. It is stateless per call: one prompt
// in, one raw string out. Nothing here interprets the output; that is the
// extraction chain's job.
package gateway

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	llmx "github.com/tanpawarit/agentic-oms/agent/llm"
	promptx "github.com/tanpawarit/agentic-oms/agent/prompt"
)

var generativeAgents = []contractx.AgentType{
	contractx.AgentTypeOrder,
	contractx.AgentTypeStatus,
	contractx.AgentTypeAdmin,
	contractx.AgentTypeInquiry,
}

type agentRunner struct {
	systemPrompt string
	runner       compose.Runnable[map[string]any, *schema.Message]
}

// Registry implements contract.Generator with one compiled graph per agent.
type Registry struct {
	runners map[contractx.AgentType]agentRunner
}

var _ contractx.Generator = (*Registry)(nil)

func NewRegistry(ctx context.Context, cfg llmx.Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	runners := make(map[contractx.AgentType]agentRunner, len(generativeAgents))

	for _, agentType := range generativeAgents {
		systemPrompt := prompts.For(agentType)
		if systemPrompt == "" {
			return nil, fmt.Errorf("%w: missing prompt for agent=%s", contractx.ErrValidation, agentType)
		}

		modelCfg := cfg.OpenRouterFor(agentType)
		chatModel, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
		}

		runner, err := compileGenerateGraph(ctx, chatModel, fmt.Sprintf("%s.generate_graph", agentType))
		if err != nil {
			return nil, err
		}

		runners[agentType] = agentRunner{
			systemPrompt: systemPrompt,
			runner:       runner,
		}
	}

	return &Registry{runners: runners}, nil
}

// Generate runs the agent's persona graph over prompt and returns the raw
// model text.
func (r *Registry) Generate(ctx context.Context, agentType contractx.AgentType, prompt string) (string, error) {
	ar, ok := r.runners[agentType]
	if !ok {
		return "", fmt.Errorf("%w: no model for agent=%s", contractx.ErrModelInvoke, agentType)
	}

	msg, err := ar.runner.Invoke(ctx, map[string]any{
		"system": ar.systemPrompt,
		"input":  prompt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: empty model output for agent=%s", contractx.ErrSchemaViolation, agentType)
	}
	return msg.Content, nil
}

// Prompt contents are injected as template variables rather than baked into
// the template, so brace-heavy JSON examples never trip the formatter.
func compileGenerateGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	graphName string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add generate prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add generate model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add generate edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add generate edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add generate edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile generate graph %s: %w", graphName, err)
	}
	return runner, nil
}
