package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockLLM is an offline stand-in for local development. It answers with one
// canned post for every platform block in the prompt.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	name := "this product"
	for _, line := range strings.Split(prompt, "\n") {
		if v, ok := strings.CutPrefix(line, "- Name: "); ok {
			name = v
			break
		}
	}

	posts := []GeneratedPost{}
	for _, p := range AllPlatforms {
		if !strings.Contains(prompt, fmt.Sprintf("\n- %s: max ", p)) {
			continue
		}
		posts = append(posts, GeneratedPost{
			Platform: p,
			Content:  fmt.Sprintf("✨ Meet %s! Sample %s post generated offline. Shop now 👉", name, p),
		})
	}

	out, err := json.Marshal(map[string]any{"posts": posts})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
