package leave

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/leave2docx/internal/docx"
	"github.com/roboco-io/leave2docx/internal/docx/docxtest"
	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/placeholder"
)

type fakeSource struct {
	days       int
	department string
	err        error
	calls      int
}

func (s *fakeSource) Leave(ctx context.Context, id int) (*hrapi.LeaveDetail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	d := &hrapi.LeaveDetail{ID: id}
	for i := 0; i < s.days; i++ {
		d.LeaveDays = append(d.LeaveDays, json.RawMessage(`{}`))
	}
	return d, nil
}

func (s *fakeSource) Department(ctx context.Context, id int) (*hrapi.Department, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &hrapi.Department{ID: id, Title: s.department}, nil
}

type fixture struct {
	templates string
	output    string
	source    *fakeSource
	exporter  *Exporter
}

func newFixture(t *testing.T, pattern string) *fixture {
	t.Helper()
	f := &fixture{
		templates: t.TempDir(),
		output:    t.TempDir(),
		source:    &fakeSource{days: 5, department: "Λογιστήριο"},
	}
	exp, err := NewExporter(Options{
		TemplateDir:     f.templates,
		OutputDir:       f.output,
		DateFormat:      "%d/%m/%Y",
		FilenamePattern: pattern,
		Now:             func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) },
	}, f.source)
	require.NoError(t, err)
	f.exporter = exp
	return f
}

func letter() docxtest.Package {
	return docxtest.Package{
		Headers: []string{docxtest.Para("Ημερομηνία: ", "${TO", "DAY}")},
		Body: docxtest.Para("Ο/Η ", "${LASTNAME}", " ${FIRSTNAME}", " (${DEPARTMENT})") +
			docxtest.Table(
				[]string{docxtest.Para("Από"), docxtest.Para("${START_", "DATE}")},
				[]string{docxtest.Para("Έως"), docxtest.Para("${END_DATE}")},
				[]string{docxtest.Para("Ημέρες"), docxtest.Para("${DAYS_COUNT}")},
			),
		Footers: []string{docxtest.Table([]string{docxtest.Para("${LEAVE_TYPE}")})},
	}
}

func TestExporter_Export(t *testing.T) {
	f := newFixture(t, "${LASTNAME} ${FIRSTNAME} ${START_DATE}")
	docxtest.Write(t, f.templates, "regular.docx", letter())
	req := sampleRequest(t)

	res, err := f.exporter.Export(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.output, "παπαδόπουλος γιάννης 01072024.docx"), res.Path)
	assert.Equal(t, filepath.Join(f.templates, "regular.docx"), res.Template)
	assert.Equal(t, 8, res.Stats.Total())
	assert.Equal(t, 1, res.Stats[placeholder.ScopeHeader])
	assert.Equal(t, 3, res.Stats[placeholder.ScopeBody])
	assert.Equal(t, 3, res.Stats[placeholder.ScopeBodyTables])
	assert.Equal(t, 1, res.Stats[placeholder.ScopeFooterTables])

	doc, err := docx.Open(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Ο/Η Παπαδόπουλος Γιάννης (Λογιστήριο)", doc.Body().Paragraphs()[0].Text())
	rows := doc.Body().Tables()[0].Rows()
	assert.Equal(t, "01/07/2024", rows[0].Cells()[1].Paragraphs()[0].Text())
	assert.Equal(t, "05/07/2024", rows[1].Cells()[1].Paragraphs()[0].Text())
	assert.Equal(t, "5", rows[2].Cells()[1].Paragraphs()[0].Text())
	assert.Equal(t, "Ημερομηνία: 16/10/2026", doc.Sections()[0].Header().Paragraphs()[0].Text())
	footer := doc.Sections()[0].Footer().Tables()[0].Rows()[0].Cells()[0]
	assert.Equal(t, "Κανονική άδεια", footer.Paragraphs()[0].Text())

	assert.Empty(t, placeholder.Scan(doc))
}

func TestExporter_ResolveTemplate(t *testing.T) {
	f := newFixture(t, "x")
	req := sampleRequest(t)

	docxtest.Write(t, f.templates, "regular.docx", letter())
	path, err := f.exporter.ResolveTemplate(req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.templates, "regular.docx"), path)

	docxtest.Write(t, f.templates, filepath.Join("123456789", "regular.docx"), letter())
	path, err = f.exporter.ResolveTemplate(req)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.templates, "123456789", "regular.docx"), path)
}

func TestExporter_TemplateNotConfigured(t *testing.T) {
	f := newFixture(t, "x")
	req := sampleRequest(t)
	req.LeaveType.Remark = "  "

	_, err := f.exporter.Export(context.Background(), req)

	assert.ErrorIs(t, err, ErrTemplateNotConfigured)
	assert.Contains(t, err.Error(), "Κανονική άδεια")
	assert.Zero(t, f.source.calls)
}

func TestExporter_TemplateNotFound(t *testing.T) {
	f := newFixture(t, "x")
	docxtest.Write(t, f.templates, "regular_v2.docx", letter())
	docxtest.Write(t, f.templates, "sick.docx", letter())
	req := sampleRequest(t)

	_, err := f.exporter.Export(context.Background(), req)

	require.ErrorIs(t, err, ErrTemplateNotFound)
	var terr *TemplateError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, []string{"regular_v2.docx"}, terr.Suggestions)
	assert.Contains(t, err.Error(), "did you mean regular_v2.docx?")
	assert.Zero(t, f.source.calls)
}

func TestExporter_UnreadableTemplate(t *testing.T) {
	f := newFixture(t, "x")
	require.NoError(t, os.WriteFile(filepath.Join(f.templates, "regular.docx"), []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0644))

	_, err := f.exporter.Export(context.Background(), sampleRequest(t))

	assert.ErrorIs(t, err, docx.ErrUnknownFormat)
	entries, _ := os.ReadDir(f.output)
	assert.Empty(t, entries)
}

func TestExporter_FilenameErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"empty", "${REASON_AUTH2}", ErrFilenameEmpty},
		{"too long", "${LASTNAME}" + strings.Repeat("x", 250), ErrFilenameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.pattern)
			docxtest.Write(t, f.templates, "regular.docx", letter())

			_, err := f.exporter.Export(context.Background(), sampleRequest(t))

			assert.ErrorIs(t, err, tt.wantErr)
			entries, readErr := os.ReadDir(f.output)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestExporter_SourceError(t *testing.T) {
	f := newFixture(t, "x")
	docxtest.Write(t, f.templates, "regular.docx", letter())
	apiErr := &hrapi.APIError{URL: "http://api/mod-leaves/leave/7", Status: 500}
	f.source.err = apiErr

	_, err := f.exporter.Export(context.Background(), sampleRequest(t))

	var got *hrapi.APIError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 500, got.Status)
}

func TestNewExporter_InvalidDateFormat(t *testing.T) {
	_, err := NewExporter(Options{DateFormat: "%Q"}, &fakeSource{})
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	dir := t.TempDir()
	docxtest.Write(t, dir, "b.docx", letter())
	docxtest.Write(t, dir, filepath.Join("123", "a.docx"), letter())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	got, err := Templates(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"123/a.docx", "b.docx"}, got)
}

func TestExporter_TemplateOutsideDir(t *testing.T) {
	f := newFixture(t, "x")
	parent := filepath.Dir(f.templates)
	docxtest.Write(t, parent, "escape.docx", letter())

	for _, remark := range []string{"../escape.docx", "/etc/passwd", "a/../../escape.docx"} {
		t.Run(remark, func(t *testing.T) {
			req := sampleRequest(t)
			req.LeaveType.Remark = remark

			_, err := f.exporter.Export(context.Background(), req)

			assert.ErrorIs(t, err, ErrTemplateOutsideDir)
			assert.Zero(t, f.source.calls)
		})
	}
}

func TestExporter_ResolveTemplate_SkipsUnsafeVatNo(t *testing.T) {
	f := newFixture(t, "x")
	docxtest.Write(t, f.templates, "regular.docx", letter())
	req := sampleRequest(t)
	req.Employee.VatNo = ".."

	path, err := f.exporter.ResolveTemplate(req)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.templates, "regular.docx"), path)
}

func TestTemplateLocations(t *testing.T) {
	dir := t.TempDir()
	docxtest.Write(t, dir, filepath.Join("999", "regular.docx"), letter())
	docxtest.Write(t, dir, filepath.Join("123", "regular.docx"), letter())
	docxtest.Write(t, dir, filepath.Join("123", "deep", "regular.docx"), letter())
	docxtest.Write(t, dir, "sick.docx", letter())

	got, err := TemplateLocations(dir, "regular.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{"123/regular.docx", "999/regular.docx"}, got)

	docxtest.Write(t, dir, "regular.docx", letter())
	got, err = TemplateLocations(dir, "regular.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{"regular.docx", "123/regular.docx", "999/regular.docx"}, got)

	got, err = TemplateLocations(dir, "missing.docx")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = TemplateLocations(dir, "../regular.docx")
	assert.ErrorIs(t, err, ErrTemplateOutsideDir)
}
