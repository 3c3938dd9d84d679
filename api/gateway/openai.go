package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

var tracer = otel.GetTracerProvider().Tracer("api/gateway")

// Config holds the configuration for the OpenAI-compatible gateway.
type Config struct {
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// Option configures a Config.
type Option func(*Config)

// WithMaxTokens sets the max tokens per completion.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.MaxTokens = maxTokens
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Ignored if WithHTTPClient is
// also used. A stalled backend call otherwise stalls the whole batch, so
// the default is deliberately finite.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// OpenAIGateway generates text through any OpenAI-compatible endpoint.
type OpenAIGateway struct {
	client      *openai.Client
	maxTokens   int
	temperature float32
}

// NewOpenAIGateway creates a gateway against the given API base URL
// (e.g. "http://localhost:11434/v1" for a local backend).
func NewOpenAIGateway(baseURL, apiKey string, opts ...Option) *OpenAIGateway {
	cfg := &Config{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		APIKey:      apiKey,
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     120 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	openaiCfg.BaseURL = cfg.BaseURL
	if cfg.HTTPClient != nil {
		openaiCfg.HTTPClient = cfg.HTTPClient
	} else {
		openaiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenAIGateway{
		client:      openai.NewClientWithConfig(openaiCfg),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Generate runs one chat completion and measures wall-clock time.
func (g *OpenAIGateway) Generate(ctx context.Context, modelName, prompt, systemPrompt string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "gateway.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("llm.model", modelName),
		attribute.Int("llm.request.prompt_length", len(prompt)),
		attribute.Bool("llm.request.has_system_prompt", systemPrompt != ""),
	)

	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &domain.GenerationError{ModelName: modelName, Err: err}
	}
	if len(resp.Choices) == 0 {
		span.SetAttributes(attribute.Int("llm.response.choices", 0))
		return nil, &domain.GenerationError{ModelName: modelName, Err: errNoChoices}
	}

	span.SetAttributes(
		attribute.Int("llm.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.String("llm.response.finish_reason", string(resp.Choices[0].FinishReason)),
	)

	return &Result{
		Text:           resp.Choices[0].Message.Content,
		ProcessingTime: elapsed.Seconds(),
	}, nil
}

// ListAvailableModels queries the backend's model listing.
func (g *OpenAIGateway) ListAvailableModels(ctx context.Context) ([]ModelInfo, error) {
	ctx, span := tracer.Start(ctx, "gateway.list_models", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	list, err := g.client.ListModels(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	infos := make([]ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		infos = append(infos, ModelInfo{Name: m.ID})
	}
	span.SetAttributes(attribute.Int("llm.response.models", len(infos)))
	return infos, nil
}
