// Package agent routes prompts to the LLM provider configured for each task.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"poasmaster/pkg/core/llm"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// AgentAdvisory is the agent type used for strategy advice.
const AgentAdvisory = "advisory"

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string   `yaml:"provider"` // Optional override
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
	Description string   `yaml:"description"`
}

// DefaultConfig is used when no models file exists.
func DefaultConfig() Config {
	return Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			AgentAdvisory: {Description: "CMO-style strategy summary for a profitability snapshot"},
		},
	}
}

// LoadConfig reads a YAML models file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read models config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse models config %s: %w", path, err)
	}
	return cfg, nil
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
	log       logrus.FieldLogger
}

// NewManager registers the built-in providers. An empty active provider in
// config falls back to gemini.
func NewManager(config Config, log logrus.FieldLogger) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		config: config,
		log:    log.WithField("component", "agent"),
		providers: map[string]llm.Provider{
			"gemini":        &llm.GeminiProvider{},
			"gemini-legacy": &llm.GeminiLegacyProvider{},
			"deepseek":      &llm.DeepSeekProvider{},
			"static":        &llm.StaticProvider{},
		},
	}
}

// RegisterProvider adds or replaces a provider under name.
func (m *Manager) RegisterProvider(name string, p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = p
}

// GetProvider resolves the provider for an agent type: the agent's own
// override first, then the global active provider. Returns nil if neither exists.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, p := m.resolve(agentType)
	return p
}

func (m *Manager) resolve(agentType string) (string, llm.Provider) {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return agentConfig.Provider, p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return m.config.ActiveProvider, p
	}
	return "", nil
}

// GetProviderByName retrieves a provider instance by its registered name.
func (m *Manager) GetProviderByName(name string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[name]
}

// ExecutePrompt adapts the system prompt for the resolved provider and sends
// the request. Per-agent model and temperature are applied unless options
// already set them.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	m.mu.RLock()
	name, provider := m.resolve(agentType)
	agentConfig := m.config.Agents[agentType]
	m.mu.RUnlock()

	if provider == nil {
		return "", fmt.Errorf("no provider configured for agent %q", agentType)
	}

	merged := make(map[string]interface{}, len(options)+2)
	if agentConfig.Model != "" {
		merged["model"] = agentConfig.Model
	}
	if agentConfig.Temperature != nil {
		merged["temperature"] = *agentConfig.Temperature
	}
	for k, v := range options {
		merged[k] = v
	}

	m.log.WithFields(logrus.Fields{
		"agent":    agentType,
		"provider": name,
	}).Debug("executing prompt")

	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)
	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, merged)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	m.log.WithField("provider", newProvider).Info("global provider switched")
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists registered provider names in sorted order.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
