package llm

import (
	"context"
	"strings"
	"sync"
)

const staticMarkdown = `🚀 **Financial diagnosis**

The cost structure leaves room for paid acquisition as long as bids stay under the target CPA.

🎯 **Tactical actions (prioritised)**

- 📉 Cap campaign bids at the target CPA and pause ad sets above it.
- 🛒 Raise the average order value with bundles and free-shipping thresholds.
- 🔁 Move budget towards audiences that convert above the current rate.

💡 **Scaling strategy**

Scale budgets in 20% steps while the blended ROAS stays above the target ROAS.`

const staticJSON = `{
  "diagnosis": "The cost structure leaves room for paid acquisition as long as bids stay under the target CPA.",
  "actions": [
    "Cap campaign bids at the target CPA and pause ad sets above it.",
    "Raise the average order value with bundles and free-shipping thresholds.",
    "Move budget towards audiences that convert above the current rate."
  ],
  "scaling": "Scale budgets in 20% steps while the blended ROAS stays above the target ROAS."
}`

// StaticProvider returns canned text without any network call. It backs the
// "static" provider for offline runs and keeps tests deterministic.
type StaticProvider struct {
	// Text overrides the canned reply when set.
	Text string
	// Err, when set, is returned instead of a reply.
	Err error

	mu         sync.Mutex
	lastPrompt string
	lastSystem string
}

var _ Provider = (*StaticProvider)(nil)

func (p *StaticProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.lastPrompt, p.lastSystem = prompt, systemPrompt
	p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	if p.Text != "" {
		return p.Text, nil
	}
	if wantsJSON(options) {
		return staticJSON, nil
	}
	return staticMarkdown, nil
}

func (p *StaticProvider) AdaptInstructions(raw string) string {
	return strings.TrimSpace(raw)
}

// LastCall returns the prompts of the most recent GenerateResponse call.
func (p *StaticProvider) LastCall() (prompt, systemPrompt string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPrompt, p.lastSystem
}
