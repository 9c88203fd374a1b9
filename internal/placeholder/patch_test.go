package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatch_WithinOneRun(t *testing.T) {
	runs := newRuns("a ${X} b")

	Patch(runs, IndexRuns(runs), Occurrence{Start: 2, End: 6}, "value")

	assert.Equal(t, []string{"a value b"}, texts(runs))
}

func TestPatch_AcrossRuns(t *testing.T) {
	runs := newRuns("Hello ${ST", "ART_DATE} world")

	Patch(runs, IndexRuns(runs), Occurrence{Start: 6, End: 19}, "2024-01-01")

	assert.Equal(t, []string{"Hello 2024-01-01", " world"}, texts(runs))
}

func TestPatch_AcrossThreeRunsLeavesEmptyRuns(t *testing.T) {
	runs := newRuns("x${", "NAM", "E}y")

	Patch(runs, IndexRuns(runs), Occurrence{Start: 1, End: 8}, "N")

	assert.Equal(t, []string{"xN", "", "y"}, texts(runs))
}

func TestPatch_EmptyValue(t *testing.T) {
	runs := newRuns("[${X}]")

	Patch(runs, IndexRuns(runs), Occurrence{Start: 1, End: 5}, "")

	assert.Equal(t, []string{"[]"}, texts(runs))
}

func TestPatch_VisitsLastCharacterFirst(t *testing.T) {
	runs := newRuns("${X}")

	Patch(runs, IndexRuns(runs), Occurrence{Start: 0, End: 4}, "Y")

	assert.Equal(t, []string{"${X", "${", "$", "Y"}, runs[0].history)
}

func TestPatch_OutOfRangeIgnored(t *testing.T) {
	runs := newRuns("abc")
	coords := IndexRuns(runs)

	Patch(runs, coords, Occurrence{Start: 2, End: 10}, "Z")
	Patch(runs, coords, Occurrence{Start: -1, End: 1}, "Z")
	Patch(runs, coords, Occurrence{Start: 1, End: 1}, "Z")

	assert.Equal(t, []string{"abc"}, texts(runs))
	assert.Empty(t, runs[0].history)
}
