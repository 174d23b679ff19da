// Package settings holds the display preferences around the calculator:
// currency and language catalogs, locale formatting and a small file store
// that remembers the operator's choice between runs.
package settings

import "golang.org/x/text/language"

type CurrencyCode string

const (
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
	GBP CurrencyCode = "GBP"
	MXN CurrencyCode = "MXN"
	CLP CurrencyCode = "CLP"
)

type LanguageCode string

const (
	Spanish    LanguageCode = "es"
	English    LanguageCode = "en"
	French     LanguageCode = "fr"
	German     LanguageCode = "de"
	Portuguese LanguageCode = "pt"
)

type Currency struct {
	Code   CurrencyCode `json:"code"`
	Symbol string       `json:"symbol"`
	Label  string       `json:"label"`
}

type Language struct {
	Code  LanguageCode `json:"code"`
	Label string       `json:"label"`
	Flag  string       `json:"flag"`
	// PromptName is how the advisory prompt names the language.
	PromptName string `json:"promptName"`
}

// Currencies is the selectable currency list, in display order.
var Currencies = []Currency{
	{Code: EUR, Symbol: "€", Label: "Euro"},
	{Code: USD, Symbol: "$", Label: "Dólar (USD)"},
	{Code: GBP, Symbol: "£", Label: "Libra (GBP)"},
	{Code: MXN, Symbol: "$", Label: "Peso (MXN)"},
	{Code: CLP, Symbol: "$", Label: "Peso (CLP)"},
}

// Languages is the selectable language list, in display order.
var Languages = []Language{
	{Code: Spanish, Label: "Español", Flag: "🇪🇸", PromptName: "español de España"},
	{Code: English, Label: "English", Flag: "🇺🇸", PromptName: "English (US)"},
	{Code: French, Label: "Français", Flag: "🇫🇷", PromptName: "Français"},
	{Code: German, Label: "Deutsch", Flag: "🇩🇪", PromptName: "Deutsch"},
	{Code: Portuguese, Label: "Português", Flag: "🇧🇷", PromptName: "Português"},
}

// LookupCurrency finds a currency by code.
func LookupCurrency(code CurrencyCode) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// LookupLanguage finds a language by code.
func LookupLanguage(code LanguageCode) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageName returns the name the advisory prompt uses for code,
// falling back to English (US) for unknown codes.
func LanguageName(code LanguageCode) string {
	if l, ok := LookupLanguage(code); ok {
		return l.PromptName
	}
	return "English (US)"
}

// localeTag picks the number-formatting locale. Only Spanish gets its own
// separators; every other language formats like en-US.
func localeTag(code LanguageCode) language.Tag {
	if code == Spanish {
		return language.MustParse("es-ES")
	}
	return language.AmericanEnglish
}
