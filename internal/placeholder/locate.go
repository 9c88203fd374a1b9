package placeholder

// Occurrence is the half-open character range [Start, End) of one token match.
type Occurrence struct {
	Start int
	End   int
}

// Len returns the number of characters covered.
func (o Occurrence) Len() int {
	return o.End - o.Start
}

// FindOccurrences returns every character offset where token begins in text,
// testing each start position in turn. Overlapping candidates are all reported.
func FindOccurrences(text, token string) []int {
	t := []rune(text)
	tok := []rune(token)
	if len(tok) == 0 || len(tok) > len(t) {
		return nil
	}

	var starts []int
	for s := 0; s+len(tok) <= len(t); s++ {
		if equalRunes(t[s:s+len(tok)], tok) {
			starts = append(starts, s)
		}
	}
	return starts
}

// nonOverlapping keeps the starts a left-to-right scan would replace:
// a start falling inside the previously kept occurrence is dropped.
func nonOverlapping(starts []int, length int) []Occurrence {
	var out []Occurrence
	end := -1
	for _, s := range starts {
		if s < end {
			continue
		}
		out = append(out, Occurrence{Start: s, End: s + length})
		end = s + length
	}
	return out
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
