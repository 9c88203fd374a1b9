package leave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/roboco-io/leave2docx/internal/docx"
	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/placeholder"
)

// Template errors.
var (
	ErrTemplateNotConfigured = errors.New("no template configured for leave type")
	ErrTemplateNotFound      = errors.New("template file not found")
	ErrTemplateOutsideDir    = errors.New("template name points outside the template directory")
)

// TemplateError reports a template that could not be resolved.
type TemplateError struct {
	LeaveType   string
	Path        string
	Suggestions []string
	Err         error
}

func (e *TemplateError) Error() string {
	msg := fmt.Sprintf("%v: %q", e.Err, e.LeaveType)
	if e.Path != "" {
		msg = fmt.Sprintf("%v: %s", e.Err, e.Path)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Source fetches the per-request records an export needs.
type Source interface {
	Leave(ctx context.Context, id int) (*hrapi.LeaveDetail, error)
	Department(ctx context.Context, id int) (*hrapi.Department, error)
}

// Options configures an Exporter.
type Options struct {
	TemplateDir     string
	OutputDir       string
	DateFormat      string
	FilenamePattern string
	Logger          *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Exporter fills leave templates.
type Exporter struct {
	opts   Options
	source Source
	format *strftime.Strftime
	logger *slog.Logger
}

// Result describes a written document.
type Result struct {
	Path     string
	Template string
	Stats    placeholder.Stats
}

// NewExporter creates an exporter reading records from source.
func NewExporter(opts Options, source Source) (*Exporter, error) {
	format, err := ParseDateFormat(opts.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q: %w", opts.DateFormat, err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{opts: opts, source: source, format: format, logger: logger}, nil
}

// ResolveTemplate returns the template path for the request. A file under the
// employee's VAT number subdirectory takes precedence over one at the root.
func (e *Exporter) ResolveTemplate(req *hrapi.LeaveRequest) (string, error) {
	if req.LeaveType == nil || strings.TrimSpace(req.LeaveType.Remark) == "" {
		title := ""
		if req.LeaveType != nil {
			title = req.LeaveType.Title
		}
		return "", &TemplateError{LeaveType: title, Err: ErrTemplateNotConfigured}
	}
	name := strings.TrimSpace(req.LeaveType.Remark)
	if !filepath.IsLocal(name) {
		return "", &TemplateError{LeaveType: req.LeaveType.Title, Path: name, Err: ErrTemplateOutsideDir}
	}

	var candidates []string
	if req.Employee != nil && req.Employee.VatNo != "" && filepath.IsLocal(req.Employee.VatNo) {
		candidates = append(candidates, filepath.Join(e.opts.TemplateDir, req.Employee.VatNo, name))
	}
	candidates = append(candidates, filepath.Join(e.opts.TemplateDir, name))

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}

	return "", &TemplateError{
		LeaveType:   req.LeaveType.Title,
		Path:        candidates[len(candidates)-1],
		Suggestions: SuggestTemplates(e.opts.TemplateDir, name),
		Err:         ErrTemplateNotFound,
	}
}

// Export fills the request's template and writes it to the output directory.
func (e *Exporter) Export(ctx context.Context, req *hrapi.LeaveRequest) (*Result, error) {
	template, err := e.ResolveTemplate(req)
	if err != nil {
		return nil, err
	}

	detail, err := e.source.Leave(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	var departmentID int
	if req.Employee != nil {
		departmentID = req.Employee.DepartmentID
	}
	department, err := e.source.Department(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	set := BuildTokens(Facts{
		Request:    req,
		Department: department,
		Detail:     detail,
		Now:        e.opts.Now(),
	}, e.format)

	out, err := OutputPath(e.opts.OutputDir, e.opts.FilenamePattern, set)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Open(template)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	stats := placeholder.Walk(doc, set)
	e.logger.Debug("placeholders replaced",
		"template", template,
		"total", stats.Total(),
		"header", stats[placeholder.ScopeHeader]+stats[placeholder.ScopeHeaderTables],
		"body", stats[placeholder.ScopeBody]+stats[placeholder.ScopeBodyTables],
		"footer", stats[placeholder.ScopeFooter]+stats[placeholder.ScopeFooterTables],
	)

	if err := doc.Save(out); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	e.logger.Info("document exported", "leave", req.ID, "path", out)

	return &Result{Path: out, Template: template, Stats: stats}, nil
}

// Templates lists the template files under dir, relative to it.
func Templates(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if docx.DetectFormat(path) == docx.FormatUnknown {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// TemplateLocations lists where a template called name exists under dir,
// relative to it: the root first, then employee subdirectories.
func TemplateLocations(dir, name string) ([]string, error) {
	if !filepath.IsLocal(name) {
		return nil, ErrTemplateOutsideDir
	}
	all, err := Templates(dir)
	if err != nil {
		return nil, err
	}

	want := filepath.ToSlash(name)
	var root, sub []string
	for _, t := range all {
		if t == want {
			root = append(root, t)
			continue
		}
		if owner, ok := strings.CutSuffix(t, "/"+want); ok && !strings.Contains(owner, "/") {
			sub = append(sub, t)
		}
	}
	return append(root, sub...), nil
}

// SuggestTemplates returns up to three template names under dir resembling name,
// closest first.
func SuggestTemplates(dir, name string) []string {
	all, err := Templates(dir)
	if err != nil {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	want := stem(name)
	seen := make(map[string]bool)
	var found []candidate
	for _, t := range all {
		b := filepath.Base(t)
		if seen[b] {
			continue
		}
		seen[b] = true

		have := stem(b)
		d := fuzzy.LevenshteinDistance(want, have)
		if fuzzy.MatchNormalizedFold(want, have) || fuzzy.MatchNormalizedFold(have, want) || d <= maxDistance(want) {
			found = append(found, candidate{name: b, distance: d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})
	var out []string
	for _, c := range found {
		out = append(out, c.name)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func stem(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
}

func maxDistance(s string) int {
	if n := len([]rune(s)) / 3; n > 2 {
		return n
	}
	return 2
}
