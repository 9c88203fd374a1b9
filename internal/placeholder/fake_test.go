package placeholder

// fakeRun is an in-memory run that records every rewrite.
type fakeRun struct {
	text    string
	style   string
	history []string
}

func (r *fakeRun) Text() string { return r.text }

func (r *fakeRun) SetText(text string) {
	r.text = text
	r.history = append(r.history, text)
}

func newRuns(texts ...string) []*fakeRun {
	runs := make([]*fakeRun, len(texts))
	for i, t := range texts {
		runs[i] = &fakeRun{text: t, style: string(rune('a' + i))}
	}
	return runs
}

func texts(runs []*fakeRun) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.text
	}
	return out
}
