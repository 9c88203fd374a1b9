package placeholder

// Patch rewrites one occurrence in place. coords must be the current index of runs.
//
// The occurrence's coordinates are visited last character first: every character
// but the first is deleted from its run, then the first is replaced by value.
// Working back to front keeps the offsets still to be visited valid.
// Out-of-range occurrences are ignored.
func Patch[R TextRun](runs []R, coords []Coordinate, occ Occurrence, value string) {
	if occ.Start < 0 || occ.End > len(coords) || occ.Start >= occ.End {
		return
	}

	span := coords[occ.Start:occ.End]
	for i := len(span) - 1; i >= 0; i-- {
		c := span[i]
		if c.Run < 0 || c.Run >= len(runs) {
			continue
		}
		text := []rune(runs[c.Run].Text())
		if c.Offset < 0 || c.Offset >= len(text) {
			continue
		}

		var patched []rune
		patched = append(patched, text[:c.Offset]...)
		if i == 0 {
			patched = append(patched, []rune(value)...)
		}
		patched = append(patched, text[c.Offset+1:]...)
		runs[c.Run].SetText(string(patched))
	}
}
