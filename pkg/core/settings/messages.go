package settings

var invalidAOV = map[LanguageCode]string{
	Spanish: "Por favor, introduce un ticket medio válido.",
	English: "Please enter a valid Average Order Value.",
}

var invalidField = map[LanguageCode]string{
	Spanish: "Revisa los datos: todos los campos deben ser numéricos.",
	English: "Please check your inputs: every field must be numeric.",
}

// InvalidAOVMessage is shown when the calculator rejects the order value.
func InvalidAOVMessage(lang LanguageCode) string {
	return localized(invalidAOV, lang)
}

// InvalidFieldMessage is shown when a form field is not a number.
func InvalidFieldMessage(lang LanguageCode) string {
	return localized(invalidField, lang)
}

func localized(m map[LanguageCode]string, lang LanguageCode) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[English]
}
