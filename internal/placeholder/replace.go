package placeholder

import "strings"

// Replacement maps one token to its value.
type Replacement struct {
	Token string
	Value string
}

// Set is an ordered list of replacements. Tokens are applied in list order.
type Set []Replacement

// Apply substitutes every token of the set into plain text, in order.
func (s Set) Apply(text string) string {
	for _, r := range s {
		text = strings.ReplaceAll(text, r.Token, r.Value)
	}
	return text
}

// ReplaceInRuns replaces every occurrence of token across runs and returns how many were patched.
//
// Occurrences are found on the text as it stands, then patched rightmost first,
// re-indexing the runs before each patch since earlier patches change run lengths.
func ReplaceInRuns[R TextRun](runs []R, token, value string) int {
	if token == "" || len(runs) == 0 {
		return 0
	}
	text := JoinRuns(runs)
	if !strings.Contains(text, token) {
		return 0
	}

	occs := nonOverlapping(FindOccurrences(text, token), len([]rune(token)))
	for i := len(occs) - 1; i >= 0; i-- {
		Patch(runs, IndexRuns(runs), occs[i], value)
	}
	return len(occs)
}
