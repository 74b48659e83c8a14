package scoring

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns a [0,1] similarity ratio between two strings using
// character-level sequence matching (2*matches/total, difflib semantics).
// Comparison is case-insensitive. The ratio is not guaranteed to be
// symmetric; callers pass the prompt first and the transcript second.
func Ratio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}

	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
