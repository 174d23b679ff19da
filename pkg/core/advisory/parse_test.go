package advisory

import (
	"context"
	"errors"
	"testing"

	"poasmaster/pkg/core/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvice_StaticReply(t *testing.T) {
	reply, err := (&llm.StaticProvider{}).GenerateResponse(context.Background(), "p", "s", nil)
	require.NoError(t, err)

	advice, err := ParseAdvice(reply)
	require.NoError(t, err)
	assert.Contains(t, advice.HTML, "<strong>Financial diagnosis</strong>")
	require.Len(t, advice.Sections, 3)

	diag := advice.Sections[0]
	assert.Equal(t, markerDiagnosis, diag.Icon)
	assert.Equal(t, "Financial diagnosis", diag.Title)
	assert.Len(t, diag.Paragraphs, 1)

	actions := advice.Sections[1]
	assert.Equal(t, "Tactical actions (prioritised)", actions.Title)
	assert.Len(t, actions.Items, 3)
	assert.Empty(t, actions.Paragraphs)

	assert.Equal(t, markerScaling, advice.Sections[2].Icon)
	assert.Equal(t, "Scaling strategy", advice.Sections[2].Title)
}

func TestParseAdvice_Headings(t *testing.T) {
	advice, err := ParseAdvice("Intro line.\n\n## Diagnosis\n\nAll good.\n\n## Actions\n\n1. First\n2. Second\n")
	require.NoError(t, err)
	require.Len(t, advice.Sections, 3)
	assert.Equal(t, "", advice.Sections[0].Title)
	assert.Equal(t, []string{"Intro line."}, advice.Sections[0].Paragraphs)
	assert.Equal(t, "Diagnosis", advice.Sections[1].Title)
	assert.Equal(t, []string{"First", "Second"}, advice.Sections[2].Items)
}

func TestParseAdvice_InlineTitle(t *testing.T) {
	advice, err := ParseAdvice("🚀 **Diagnóstico:** El modelo es sano.\n\n💡 Escalar con cuidado")
	require.NoError(t, err)
	require.Len(t, advice.Sections, 2)
	assert.Equal(t, "Diagnóstico", advice.Sections[0].Title)
	assert.Equal(t, []string{"El modelo es sano."}, advice.Sections[0].Paragraphs)
	assert.Equal(t, "Escalar con cuidado", advice.Sections[1].Title)
}

func TestParseAdvice_BoldLeadInIsNotATitle(t *testing.T) {
	advice, err := ParseAdvice("**Note:** margins are thin.")
	require.NoError(t, err)
	require.Len(t, advice.Sections, 1)
	assert.Equal(t, "", advice.Sections[0].Title)
	assert.Equal(t, []string{"Note: margins are thin."}, advice.Sections[0].Paragraphs)
}

func TestParseAdvice_Fenced(t *testing.T) {
	advice, err := ParseAdvice("```md\n🎯 **Actions**\n\n- One\n```")
	require.NoError(t, err)
	assert.Equal(t, "🎯 **Actions**\n\n- One", advice.Raw)
	require.Len(t, advice.Sections, 1)
	assert.Equal(t, []string{"One"}, advice.Sections[0].Items)
}

func TestParseAdvice_Empty(t *testing.T) {
	_, err := ParseAdvice("  \n")
	assert.True(t, errors.Is(err, ErrEmptyAdvice))
}

func TestParseAdvice_PromptReplyShape(t *testing.T) {
	reply := "🚀 Financial diagnosis\nThe model is healthy. Margin covers the ad cost.\n\n" +
		"🎯 Tactical actions (prioritised)\n• 💰 Raise AOV with bundles\n• 📈 Scale winning ads\n• 🎯 Cut CPC\n\n" +
		"💡 Scaling strategy\nKeep daily spend growth under 20%."

	advice, err := ParseAdvice(reply)
	require.NoError(t, err)
	require.Len(t, advice.Sections, 3)

	diag := advice.Sections[0]
	assert.Equal(t, markerDiagnosis, diag.Icon)
	assert.Equal(t, "Financial diagnosis", diag.Title)
	assert.Equal(t, []string{"The model is healthy. Margin covers the ad cost."}, diag.Paragraphs)
	assert.Empty(t, diag.Items)

	actions := advice.Sections[1]
	assert.Equal(t, markerActions, actions.Icon)
	assert.Equal(t, "Tactical actions (prioritised)", actions.Title)
	assert.Equal(t, []string{"💰 Raise AOV with bundles", "📈 Scale winning ads", "🎯 Cut CPC"}, actions.Items)
	assert.Empty(t, actions.Paragraphs)

	scaling := advice.Sections[2]
	assert.Equal(t, "Scaling strategy", scaling.Title)
	assert.Equal(t, []string{"Keep daily spend growth under 20%."}, scaling.Paragraphs)
}
