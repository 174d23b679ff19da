package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"
)

var ErrUnknownSetting = errors.New("UNKNOWN_SETTING")

// Settings are the operator's display preferences.
type Settings struct {
	Currency CurrencyCode `yaml:"currency" json:"currency"`
	Language LanguageCode `yaml:"language" json:"language"`
}

// Defaults returns EUR / Spanish.
func Defaults() Settings {
	return Settings{Currency: EUR, Language: Spanish}
}

// Validate reports the first unknown code.
func (s Settings) Validate() error {
	if _, ok := LookupCurrency(s.Currency); !ok {
		return fmt.Errorf("%w: currency %q", ErrUnknownSetting, s.Currency)
	}
	if _, ok := LookupLanguage(s.Language); !ok {
		return fmt.Errorf("%w: language %q", ErrUnknownSetting, s.Language)
	}
	return nil
}

// CurrencyInfo resolves the selected currency, EUR when unknown.
func (s Settings) CurrencyInfo() Currency {
	if c, ok := LookupCurrency(s.Currency); ok {
		return c
	}
	c, _ := LookupCurrency(EUR)
	return c
}

// sanitize replaces unknown codes field by field.
func (s Settings) sanitize() Settings {
	d := Defaults()
	if _, ok := LookupCurrency(s.Currency); !ok {
		s.Currency = d.Currency
	}
	if _, ok := LookupLanguage(s.Language); !ok {
		s.Language = d.Language
	}
	return s
}

// FileStore persists Settings as YAML.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

// Load reads the stored settings. A missing file yields the defaults and
// unknown codes fall back to their default individually.
func (f *FileStore) Load() (Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return s.sanitize(), nil
}

// Save validates and writes s.
func (f *FileStore) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
