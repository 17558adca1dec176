package sensor

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// abbrev keeps the first n characters of s. Labels loaded from files may be
// decomposed, so s is composed first and accents stay with their letter.
func abbrev(s string, n int) string {
	r := []rune(norm.NFC.String(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}

// LCDText folds s to the 7-bit glyph set of the panel fonts: accents are
// dropped from their base letter and anything else outside ASCII is removed.
func LCDText(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
