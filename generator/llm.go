package generator

import (
	"context"
	"time"
)

// LLMClient sends a prompt to a text-generation model that is constrained to
// answer with a single JSON object.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Searcher runs a web-search grounded query and returns free text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// LLMSettings configures the OpenAI-backed clients.
type LLMSettings struct {
	APIKey         string
	BaseURL        string
	Model          string
	ResearchModel  string
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration
	MaxRetries     int
}
