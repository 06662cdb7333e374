package config

import "golang.org/x/text/language"

// Supported message languages. English is the fallback.
var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// MatchLanguage picks the supported language closest to s, which may be a
// BCP 47 tag ("ja", "en-GB") or an Accept-Language style list.
func MatchLanguage(s string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

func languageKey(lang language.Tag) string {
	_, idx, _ := matcher.Match(lang)
	if supported[idx] == language.Japanese {
		return "ja"
	}
	return "en"
}
