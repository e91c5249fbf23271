package catalog

import "golang.org/x/text/language"

const DefaultLocale = "en"

var supportedLocales = []string{"en", "ru", "kk"}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.MustParse("kk"),
})

// ResolveLocale negotiates a supported catalog locale from whatever the
// caller sent (an Accept-Language value, "ru-RU", "kz", ...). Unsupported or
// empty input falls back to the default locale rather than erroring.
func ResolveLocale(requested string) string {
	if requested == "" {
		return DefaultLocale
	}
	_, idx := language.MatchStrings(localeMatcher, requested)
	if idx < 0 || idx >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[idx]
}
