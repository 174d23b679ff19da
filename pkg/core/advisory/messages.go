package advisory

import "poasmaster/pkg/core/settings"

var unavailable = map[settings.LanguageCode]string{
	settings.Spanish:    "Análisis no disponible.",
	settings.English:    "Analysis unavailable.",
	settings.French:     "Analyse indisponible.",
	settings.German:     "Analyse nicht verfügbar.",
	settings.Portuguese: "Análise indisponível.",
}

var connectionError = map[settings.LanguageCode]string{
	settings.Spanish: "Error de comunicación con la IA.",
	settings.English: "⚠️ AI Connection Error.",
}

// UnavailableMessage is shown when the model answers with nothing.
func UnavailableMessage(lang settings.LanguageCode) string {
	if s, ok := unavailable[lang]; ok {
		return s
	}
	return unavailable[settings.English]
}

// ConnectionErrorMessage is shown when the model call fails.
func ConnectionErrorMessage(lang settings.LanguageCode) string {
	if s, ok := connectionError[lang]; ok {
		return s
	}
	return connectionError[settings.English]
}
