package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"poasmaster/pkg/core/llm"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	options map[string]interface{}
	system  string
}

func (p *recordingProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	p.options = options
	p.system = systemPrompt
	return "ok:" + prompt, nil
}

func (p *recordingProvider) AdaptInstructions(raw string) string {
	return "[adapted] " + raw
}

func newTestManager(cfg Config) *Manager {
	logger, _ := test.NewNullLogger()
	return NewManager(cfg, logger)
}

func TestManager_ProviderResolution(t *testing.T) {
	m := newTestManager(Config{
		ActiveProvider: "deepseek",
		Agents: map[string]AgentConfig{
			AgentAdvisory: {Provider: "static"},
			"broken":      {Provider: "does-not-exist"},
		},
	})

	assert.IsType(t, &llm.StaticProvider{}, m.GetProvider(AgentAdvisory))
	assert.IsType(t, &llm.DeepSeekProvider{}, m.GetProvider("other"))
	// Unknown override falls back to the global provider.
	assert.IsType(t, &llm.DeepSeekProvider{}, m.GetProvider("broken"))
}

func TestManager_ExecutePromptMergesAgentOptions(t *testing.T) {
	temp := 0.2
	m := newTestManager(Config{
		ActiveProvider: "recorder",
		Agents: map[string]AgentConfig{
			AgentAdvisory: {Model: "gemini-test", Temperature: &temp},
		},
	})
	rec := &recordingProvider{}
	m.RegisterProvider("recorder", rec)

	out, err := m.ExecutePrompt(context.Background(), AgentAdvisory, "hello", "be brief", map[string]interface{}{
		"response_format": "json",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok:hello", out)
	assert.Equal(t, "[adapted] be brief", rec.system)
	assert.Equal(t, "gemini-test", rec.options["model"])
	assert.Equal(t, 0.2, rec.options["temperature"])
	assert.Equal(t, "json", rec.options["response_format"])

	// Call options win over agent defaults.
	_, err = m.ExecutePrompt(context.Background(), AgentAdvisory, "hi", "", map[string]interface{}{"model": "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", rec.options["model"])
}

func TestManager_SetGlobalProvider(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := NewManager(Config{}, logger)

	assert.Equal(t, "gemini", m.GetActiveProvider())
	require.NoError(t, m.SetGlobalProvider("static"))
	assert.Equal(t, "static", m.GetActiveProvider())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	assert.Error(t, m.SetGlobalProvider("openai"))
	assert.Equal(t, "static", m.GetActiveProvider())

	assert.Equal(t, []string{"deepseek", "gemini", "gemini-legacy", "static"}, m.Available())
}

func TestManager_NoProvider(t *testing.T) {
	m := newTestManager(Config{ActiveProvider: "nope"})
	_, err := m.ExecutePrompt(context.Background(), AgentAdvisory, "p", "", nil)
	assert.Error(t, err)
	assert.Nil(t, m.GetProvider(AgentAdvisory))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.ActiveProvider)

	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
active_provider: deepseek
agents:
  advisory:
    provider: gemini
    model: gemini-2.5-flash
    temperature: 0.4
`), 0o644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.ActiveProvider)
	adv := cfg.Agents[AgentAdvisory]
	assert.Equal(t, "gemini", adv.Provider)
	assert.Equal(t, "gemini-2.5-flash", adv.Model)
	require.NotNil(t, adv.Temperature)
	assert.Equal(t, 0.4, *adv.Temperature)

	require.NoError(t, os.WriteFile(path, []byte("active_provider: [unclosed"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
