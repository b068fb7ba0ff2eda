package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Generator runs the text-generation call and parses its posts.
type Generator struct {
	llm LLMClient
}

func NewGenerator(llm LLMClient) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Generator{llm: llm}, nil
}

// Generate returns the valid posts in the model's answer to prompt. Errors are
// always *GenerationError.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]GeneratedPost, error) {
	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		var gerr *GenerationError
		if errors.As(err, &gerr) {
			return nil, gerr
		}
		return nil, newGenerationError(KindUnknown, err)
	}
	return ParsePosts(raw)
}

// Agent sequences validation, optional research, prompt building and
// generation for a single request. It holds no per-request state.
type Agent struct {
	generator  *Generator
	researcher *Researcher
	now        func() time.Time
}

// NewAgent wires an Agent. researcher may be nil, which disables web research.
func NewAgent(gen *Generator, researcher *Researcher) (*Agent, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	return &Agent{generator: gen, researcher: researcher, now: time.Now}, nil
}

// Handle processes one generation request. On failure the error is a *Failure
// and no posts are returned.
func (a *Agent) Handle(ctx context.Context, req Request) (Envelope, error) {
	v, err := Validate(req.Product, req.Tone, req.Platforms)
	if err != nil {
		return Envelope{}, toFailure(err)
	}

	var digest *Digest
	if req.EnableWebResearch {
		d := a.researcher.Research(ctx, v.Product.Name, v.Product.Category)
		if d.HasSignal() {
			digest = &d
		}
	} else {
		slog.Debug("web research skipped", "product", v.Product.Name)
	}

	prompt := BuildPrompt(v.Product, v.Tone, v.Platforms, digest)

	posts, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		f := toFailure(err)
		slog.Error("post generation failed", "kind", f.Kind, "error", errors.Unwrap(err), "product", v.Product.Name)
		return Envelope{}, f
	}

	posts, missing := filterRequested(posts, v.Platforms)
	if len(missing) > 0 {
		slog.Warn("model did not produce a post for every platform",
			"product", v.Product.Name,
			"missing", missing,
			"generated", len(posts),
		)
	}

	return Envelope{
		Posts:           posts,
		GeneratedAt:     a.now(),
		Count:           len(posts),
		Tone:            v.Tone,
		Platforms:       v.Platforms,
		WebResearchUsed: digest != nil,
		WebResearch:     digest,
	}, nil
}
