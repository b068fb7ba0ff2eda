package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions
// in JSON mode). The SDK client is built once and shared by every request.
type OpenAILLM struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIClient builds the SDK client shared by OpenAILLM and OpenAISearcher.
// Timeouts and retries are delegated to the SDK.
func NewOpenAIClient(cfg *LLMSettings) (openai.Client, error) {
	if cfg == nil {
		return openai.Client{}, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return openai.Client{}, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(opts...), nil
}

func NewOpenAILLM(client openai.Client, cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil || cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	return &OpenAILLM{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(o.maxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", newGenerationError(KindMalformedOutput, errors.New("openai: empty choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

// OpenAISearcher implements Searcher with a search-enabled chat model.
type OpenAISearcher struct {
	client openai.Client
	model  string
}

func NewOpenAISearcher(client openai.Client, cfg *LLMSettings) (*OpenAISearcher, error) {
	if cfg == nil || cfg.ResearchModel == "" {
		return nil, errors.New("research model is required")
	}
	return &OpenAISearcher{client: client, model: cfg.ResearchModel}, nil
}

func (o *OpenAISearcher) Search(ctx context.Context, query string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(query),
		},
		WebSearchOptions: openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai search: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai search: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError maps SDK failures onto GenerationError kinds.
func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newGenerationError(KindConfig, err)
		case http.StatusTooManyRequests:
			return newGenerationError(KindRateLimited, err)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return newGenerationError(KindUnavailable, err)
		}
		return newGenerationError(KindUnknown, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newGenerationError(KindUnavailable, err)
	}
	return newGenerationError(KindUnknown, err)
}
