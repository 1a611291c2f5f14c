package features

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BooleanFeatures are resolved by literal affirmative matching before the
// encoder registry ever sees them. The mapping is fixed per feature, not
// learned.
var BooleanFeatures = map[string]bool{
	"trabaja":              true,
	"padecimiento_cronico": true,
	"atencion_psicologica": true,
}

// accentFolder strips combining marks so "sí" compares equal to "si".
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// Affirmative reports whether v is a recognized affirmative answer.
// Matching is case-, space-, and accent-tolerant ("Sí", "si", " SI "
// all match); everything else, including nil, reads as negative.
func Affirmative(v interface{}) bool {
	if v == nil {
		return false
	}
	s := foldAccents(strings.ToLower(strings.TrimSpace(fmt.Sprint(v))))
	return s == "si" || s == "yes"
}

// BooleanValue maps an affirmative answer to 1 and anything else to 0.
func BooleanValue(v interface{}) float64 {
	if Affirmative(v) {
		return 1
	}
	return 0
}
