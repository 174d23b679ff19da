// Package advisory turns a profitability snapshot into short strategy advice
// written by a language model acting as an e-commerce CMO.
package advisory

import (
	"context"
	"errors"
	"fmt"

	"poasmaster/pkg/core/calc"
	"poasmaster/pkg/core/prompt"
	"poasmaster/pkg/core/settings"
	"poasmaster/resources"
)

// ErrAdvisoryUnavailable wraps every failure of the underlying model call.
var ErrAdvisoryUnavailable = errors.New("ADVISORY_UNAVAILABLE")

// Snapshot is everything the advisor is told about a calculation.
type Snapshot struct {
	Inputs         calc.CostInputs
	Result         *calc.ProfitabilityResult
	CurrencySymbol string
	Language       settings.LanguageCode
}

// Advisor produces advice text for a snapshot.
type Advisor interface {
	Advise(ctx context.Context, snap Snapshot) (string, error)
}

// Executor sends a prompt to whichever provider serves agentType.
// *agent.Manager implements it.
type Executor interface {
	ExecutePrompt(ctx context.Context, agentType string, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// PromptSource looks up prompt templates by ID. *prompt.Registry implements it.
type PromptSource interface {
	GetPrompt(id string) (*prompt.PromptTemplate, error)
}

var embedded = func() *prompt.Registry {
	r := prompt.NewRegistry()
	if err := r.LoadFS(resources.FS, "prompts"); err != nil {
		panic(fmt.Sprintf("advisory: embedded prompts: %v", err))
	}
	return r
}()

// lookupPrompt prefers src and falls back to the prompts compiled into the binary.
func lookupPrompt(src PromptSource, id string) (*prompt.PromptTemplate, error) {
	if src != nil {
		if pt, err := src.GetPrompt(id); err == nil {
			return pt, nil
		}
	}
	return embedded.GetPrompt(id)
}

// resolve fills in a missing result and the default currency symbol.
func (s Snapshot) resolve() (Snapshot, error) {
	if s.Result == nil {
		res, err := calc.Compute(s.Inputs)
		if err != nil {
			return s, err
		}
		s.Result = res
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = settings.Defaults().CurrencyInfo().Symbol
	}
	if s.Language == "" {
		s.Language = settings.Defaults().Language
	}
	return s, nil
}

// promptContext exposes the snapshot to the prompt template. Figures are
// quoted with two decimals.
func (s Snapshot) promptContext() *prompt.PromptExecutionContext {
	in, res := s.Inputs, s.Result
	return prompt.NewContext().
		Set("Language", settings.LanguageName(s.Language)).
		Set("Currency", s.CurrencySymbol).
		Set("AvgOrderValue", settings.Fixed2(in.AvgOrderValue)).
		Set("COGS", settings.Fixed2(in.COGS)).
		Set("OpEx", settings.Fixed2(in.OpEx)).
		Set("ContributionMargin", settings.Fixed2(res.ContributionMargin)).
		Set("ConversionRate", settings.Fixed2(in.ConversionRate)).
		Set("BreakEvenROAS", settings.Fixed2(res.BreakEvenROAS)).
		Set("TargetProfitPercent", settings.Fixed2(in.TargetProfitPercent)).
		Set("TargetROAS", settings.Fixed2(res.TargetROAS)).
		Set("TargetCPA", settings.Fixed2(res.TargetCPA))
}
