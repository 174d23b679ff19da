package advisory

import (
	"context"
	"fmt"
	"strings"

	"poasmaster/pkg/core/prompt"
	"poasmaster/pkg/core/settings"
	"poasmaster/pkg/core/utils"

	"github.com/sirupsen/logrus"
)

// StructuredAdvice is the JSON shape requested in structured mode.
type StructuredAdvice struct {
	Diagnosis string   `json:"diagnosis"`
	Actions   []string `json:"actions"`
	Scaling   string   `json:"scaling"`
}

// StructuredAdvisor requests JSON advice and repairs sloppy model output
// before decoding it.
type StructuredAdvisor struct {
	base *LLMAdvisor
}

var _ Advisor = (*StructuredAdvisor)(nil)

func NewStructuredAdvisor(exec Executor, prompts PromptSource, log logrus.FieldLogger) *StructuredAdvisor {
	return &StructuredAdvisor{base: NewLLMAdvisor(exec, prompts, log)}
}

// AdviseStructured returns the decoded advice. Every field must be present.
func (a *StructuredAdvisor) AdviseStructured(ctx context.Context, snap Snapshot) (*StructuredAdvice, error) {
	snap, err := snap.resolve()
	if err != nil {
		return nil, err
	}

	reply, err := a.base.run(ctx, prompt.PromptIDs.AdvisoryStructured, snap, map[string]interface{}{
		"response_format": "json",
	})
	if err != nil {
		return nil, err
	}

	var advice StructuredAdvice
	if _, err := utils.SmartParse(reply, &advice, utils.RequireFields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdvisoryUnavailable, err)
	}
	return &advice, nil
}

// Advise renders the structured reply as the same three-section markdown the
// free-text advisor produces.
func (a *StructuredAdvisor) Advise(ctx context.Context, snap Snapshot) (string, error) {
	advice, err := a.AdviseStructured(ctx, snap)
	if err != nil {
		return "", err
	}
	return advice.Markdown(snap.Language), nil
}

type sectionTitles struct {
	diagnosis, actions, scaling string
}

var titles = map[settings.LanguageCode]sectionTitles{
	settings.Spanish:    {"Diagnóstico financiero", "Acciones tácticas (priorizadas)", "Estrategia de escalado"},
	settings.English:    {"Financial diagnosis", "Tactical actions (prioritised)", "Scaling strategy"},
	settings.French:     {"Diagnostic financier", "Actions tactiques (par priorité)", "Stratégie de croissance"},
	settings.German:     {"Finanzdiagnose", "Taktische Maßnahmen (priorisiert)", "Skalierungsstrategie"},
	settings.Portuguese: {"Diagnóstico financeiro", "Ações táticas (priorizadas)", "Estratégia de escala"},
}

// Markdown formats the advice with the section markers ParseAdvice recognises.
func (s *StructuredAdvice) Markdown(lang settings.LanguageCode) string {
	t, ok := titles[lang]
	if !ok {
		t = titles[settings.English]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s**\n\n%s\n\n", markerDiagnosis, t.diagnosis, strings.TrimSpace(s.Diagnosis))
	fmt.Fprintf(&b, "%s **%s**\n\n", markerActions, t.actions)
	for _, action := range s.Actions {
		fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(action))
	}
	fmt.Fprintf(&b, "\n%s **%s**\n\n%s", markerScaling, t.scaling, strings.TrimSpace(s.Scaling))
	return b.String()
}
