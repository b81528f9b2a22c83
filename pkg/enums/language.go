package enums

// Language is the presentation language requested by the client.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// NormalizeLanguage returns Arabic only for an exact "ar"; everything else is English.
func NormalizeLanguage(value string) Language {
	if value == string(LanguageArabic) {
		return LanguageArabic
	}
	return LanguageEnglish
}
