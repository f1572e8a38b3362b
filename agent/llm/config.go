package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	openrouterx "github.com/tanpawarit/agentic-oms/pkg/openrouter"
)

// Config selects the model and sampling parameters per agent. Every agent
// shares the default model unless an override is set; a negative override
// temperature means "use the default".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"4000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	OrderModel   string `envconfig:"ORDER_MODEL" split_words:"true"`
	StatusModel  string `envconfig:"STATUS_MODEL" split_words:"true"`
	AdminModel   string `envconfig:"ADMIN_MODEL" split_words:"true"`
	InquiryModel string `envconfig:"INQUIRY_MODEL" split_words:"true"`

	OrderTemperature   float32 `envconfig:"ORDER_TEMPERATURE" split_words:"true" default:"-1"`
	StatusTemperature  float32 `envconfig:"STATUS_TEMPERATURE" split_words:"true" default:"-1"`
	AdminTemperature   float32 `envconfig:"ADMIN_TEMPERATURE" split_words:"true" default:"-1"`
	InquiryTemperature float32 `envconfig:"INQUIRY_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, temperature float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if temperature >= 0 {
			temp = temperature
		}
	}

	switch agentType {
	case contractx.AgentTypeOrder:
		override(c.OrderModel, c.OrderTemperature)
	case contractx.AgentTypeStatus:
		override(c.StatusModel, c.StatusTemperature)
	case contractx.AgentTypeAdmin:
		override(c.AdminModel, c.AdminTemperature)
	case contractx.AgentTypeInquiry:
		override(c.InquiryModel, c.InquiryTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
