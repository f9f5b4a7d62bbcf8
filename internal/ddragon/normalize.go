package ddragon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases maps display names whose normalized form differs from the Data
// Dragon id
var aliases = map[string]string{
	"wukong":         "monkeyking",
	"nunuwillump":    "nunu",
	"nunuandwillump": "nunu",
	"renataglasc":    "renata",
}

// NormalizeName folds a champion name or id to a lookup key: accents
// stripped, lower case, letters and digits only, known aliases resolved.
// "Kai'Sa", "KaiSa" and "kaisa" all map to "kaisa"; "Wukong" maps to
// "monkeyking".
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	key := b.String()
	if alias, ok := aliases[key]; ok {
		return alias
	}
	return key
}
