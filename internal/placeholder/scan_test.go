package placeholder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/leave2docx/internal/docx/docxtest"
)

func TestScanRuns(t *testing.T) {
	runs := newRuns("Από ${START", "_DATE} έως ${END_DATE}")

	findings := ScanRuns(runs)

	require.Len(t, findings, 2)
	assert.Equal(t, "${START_DATE}", findings[0].Token)
	assert.Equal(t, 2, findings[0].Runs)
	assert.True(t, findings[0].Split())
	assert.Equal(t, "${END_DATE}", findings[1].Token)
	assert.False(t, findings[1].Split())
}

func TestScanRuns_None(t *testing.T) {
	assert.Empty(t, ScanRuns(newRuns("$ {X}", "{Y}")))
}

func TestScan(t *testing.T) {
	doc := openFixture(t, docxtest.Package{
		Body:    docxtest.Para("x") + docxtest.Para("${FIRST", "NAME}"),
		Footers: []string{docxtest.Para("${TODAY}")},
	})

	findings := Scan(doc)

	require.Len(t, findings, 2)
	assert.Equal(t, Finding{Scope: ScopeBody, Paragraph: 1, Token: "${FIRSTNAME}", Runs: 2}, findings[0])
	assert.Equal(t, Finding{Scope: ScopeFooter, Paragraph: 0, Token: "${TODAY}", Runs: 1}, findings[1])

	data, err := json.Marshal(findings[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"scope":"footer","paragraph":0,"token":"${TODAY}","runs":1}`, string(data))
}
