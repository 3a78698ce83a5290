// Package llm provides the remote model handle using langchaingo.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cosmusapp/cosmus-go/internal/config"
	"github.com/cosmusapp/cosmus-go/internal/metrics"
)

// Model wraps a langchaingo LLM for conversational generation.
type Model struct {
	llm         llms.Model
	modelName   string
	temperature float64
	topP        float64
	collector   *metrics.Collector
}

// NewModel creates an LLM model based on configuration.
func NewModel(ctx context.Context, cfg config.Config, collector *metrics.Collector) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderGoogleAI:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key required")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}

	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx)
		if awsErr != nil {
			return nil, fmt.Errorf("load aws config: %w", awsErr)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		model, err = bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:         model,
		modelName:   cfg.LLMModel,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		collector:   collector,
	}, nil
}

// Chat generates the next reply for a conversational message sequence.
// Rate-limit failures are tagged with ErrRateLimited.
func (m *Model) Chat(ctx context.Context, messages []llms.MessageContent) (string, error) {
	start := time.Now()
	response, err := m.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(m.temperature),
		llms.WithTopP(m.topP),
	)
	duration := time.Since(start)

	if m.collector != nil {
		m.collector.Record(metrics.OpLLMSend, duration, err)
	}

	if err != nil {
		slog.Warn("chat generation failed", "model", m.modelName, "duration_ms", duration.Milliseconds(), "error", err)
		return "", wrapRateLimit(fmt.Errorf("generate content: %w", err))
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	slog.Debug("chat generation complete", "model", m.modelName, "duration_ms", duration.Milliseconds())
	return response.Choices[0].Content, nil
}

// Prompt generates a reply to a single standalone prompt, used for the
// welcome greeting. A higher temperature keeps the greetings varied.
func (m *Model) Prompt(ctx context.Context, prompt string, temperature float64) (string, error) {
	start := time.Now()
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := m.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
	)
	duration := time.Since(start)

	if m.collector != nil {
		m.collector.Record(metrics.OpLLMGreet, duration, err)
	}

	if err != nil {
		return "", wrapRateLimit(fmt.Errorf("generate prompt: %w", err))
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}
