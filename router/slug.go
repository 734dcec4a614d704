package router

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a topic string into a URL-safe identifier: lowercase,
// diacritics stripped, runs of non-alphanumerics collapsed to one hyphen,
// no leading or trailing hyphen. Deterministic and idempotent; an already
// slugified string maps to itself.
func Slugify(text string) string {
	text = strings.ToLower(text)
	if stripped, _, err := transform.String(deaccent, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	lastHyphen := true // suppresses a leading hyphen
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "topic"
	}
	return slug
}
