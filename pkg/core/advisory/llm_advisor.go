package advisory

import (
	"context"
	"fmt"
	"strings"

	"poasmaster/pkg/core/agent"
	"poasmaster/pkg/core/prompt"
	"poasmaster/pkg/core/utils"

	"github.com/sirupsen/logrus"
)

// LLMAdvisor asks the advisory agent for a markdown strategy summary.
type LLMAdvisor struct {
	exec    Executor
	prompts PromptSource
	log     logrus.FieldLogger
}

var _ Advisor = (*LLMAdvisor)(nil)

// NewLLMAdvisor builds an advisor on top of exec. prompts may be nil, in which
// case the built-in templates are used.
func NewLLMAdvisor(exec Executor, prompts PromptSource, log logrus.FieldLogger) *LLMAdvisor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LLMAdvisor{exec: exec, prompts: prompts, log: log.WithField("component", "advisory")}
}

// Advise returns the model's advice. An empty reply is not an error: the
// localized "analysis unavailable" text is returned instead.
func (a *LLMAdvisor) Advise(ctx context.Context, snap Snapshot) (string, error) {
	snap, err := snap.resolve()
	if err != nil {
		return "", err
	}

	text, err := a.run(ctx, prompt.PromptIDs.AdvisoryStrategy, snap, nil)
	if err != nil {
		return "", err
	}

	text = utils.CleanMarkdown(text)
	if text == "" {
		a.log.WithField("language", snap.Language).Warn("empty advisory reply")
		return UnavailableMessage(snap.Language), nil
	}
	return text, nil
}

// run renders promptID for snap and executes it once.
func (a *LLMAdvisor) run(ctx context.Context, promptID string, snap Snapshot, options map[string]interface{}) (string, error) {
	pt, err := lookupPrompt(a.prompts, promptID)
	if err != nil {
		return "", fmt.Errorf("advisory prompt %s: %w", promptID, err)
	}

	userPrompt, err := prompt.RenderUserPrompt(pt, snap.promptContext())
	if err != nil {
		return "", fmt.Errorf("render advisory prompt: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"prompt":   promptID,
		"language": snap.Language,
		"viable":   snap.Result.IsViable,
	}).Debug("requesting advice")

	reply, err := a.exec.ExecutePrompt(ctx, agent.AgentAdvisory, userPrompt, pt.SystemPrompt, options)
	if err != nil {
		a.log.WithError(err).Error("advisory call failed")
		return "", fmt.Errorf("%w: %w", ErrAdvisoryUnavailable, err)
	}
	return strings.TrimSpace(reply), nil
}
