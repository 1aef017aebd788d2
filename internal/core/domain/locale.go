package domain

// Locale is a persisted UI language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
	LocaleMarathi Locale = "mr"

	DefaultLocale = LocaleEnglish
)

// ParseLocale reports whether s is a supported locale code.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleEnglish, LocaleHindi, LocaleMarathi:
		return Locale(s), true
	}
	return "", false
}
