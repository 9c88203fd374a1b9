// Package placeholder substitutes ${TOKEN} placeholders inside run-fragmented
// paragraphs without disturbing character formatting.
//
// A paragraph's text is spread over runs, so a token may start in one run and end
// in another. Substitution locates each occurrence by character coordinates and
// rewrites only the characters it covers: the first character becomes the
// replacement value, the others are deleted. Runs themselves are never removed.
package placeholder

// TextRun is a span of text whose content can be rewritten in place.
type TextRun interface {
	Text() string
	SetText(text string)
}

// Coordinate locates one character of a paragraph: the run holding it and its
// offset (in characters) within that run's text.
type Coordinate struct {
	Run    int
	Offset int
}

// IndexRuns maps every character of the concatenated run text to its origin.
// Element i of the result is the coordinate of character i. Coordinates are only
// valid until the next mutation of any of the runs.
func IndexRuns[R TextRun](runs []R) []Coordinate {
	var coords []Coordinate
	for i, r := range runs {
		n := len([]rune(r.Text()))
		for off := 0; off < n; off++ {
			coords = append(coords, Coordinate{Run: i, Offset: off})
		}
	}
	return coords
}

// JoinRuns returns the concatenated text of the runs.
func JoinRuns[R TextRun](runs []R) string {
	var text []rune
	for _, r := range runs {
		text = append(text, []rune(r.Text())...)
	}
	return string(text)
}
