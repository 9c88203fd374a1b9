package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/strftime"
)

// Exit codes for invalid settings.
const (
	CodeBaseURL         = 1
	CodeUsername        = 2
	CodePassword        = 3
	CodeTemplateDir     = 4
	CodeOutputDir       = 5
	CodeDateFormat      = 6
	CodeLeaveStatus     = 7
	CodeFilenamePattern = 8
)

// ValidationError reports a missing or invalid setting.
type ValidationError struct {
	Field  string
	Code   int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// ExitCode returns the process exit code for the error.
func (e *ValidationError) ExitCode() int {
	return e.Code
}

// Validate checks that every required setting is present and usable.
// The first problem found is returned.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
		code  int
	}{
		{"api.base_url", c.API.BaseURL, CodeBaseURL},
		{"api.username", c.API.Username, CodeUsername},
		{"api.password", c.API.Password, CodePassword},
		{"input.leave_status", c.Input.LeaveStatus, CodeLeaveStatus},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Code: r.code, Reason: "is not set"}
		}
	}

	dirs := []struct {
		field string
		value string
		code  int
	}{
		{"output.template_dir", c.Output.TemplateDir, CodeTemplateDir},
		{"output.output_dir", c.Output.OutputDir, CodeOutputDir},
	}
	for _, d := range dirs {
		if d.value == "" {
			return &ValidationError{Field: d.field, Code: d.code, Reason: "is not set"}
		}
		if info, err := os.Stat(d.value); err != nil || !info.IsDir() {
			return &ValidationError{Field: d.field, Code: d.code, Reason: fmt.Sprintf("is not a valid directory: %s", d.value)}
		}
	}

	if c.Output.DateFormat == "" {
		return &ValidationError{Field: "output.date_format", Code: CodeDateFormat, Reason: "is not set"}
	}
	if _, err := strftime.New(c.Output.DateFormat); err != nil {
		return &ValidationError{Field: "output.date_format", Code: CodeDateFormat, Reason: fmt.Sprintf("is invalid: %v", err)}
	}
	if strings.TrimSpace(c.Output.FilenamePattern) == "" {
		return &ValidationError{Field: "output.filename_pattern", Code: CodeFilenamePattern, Reason: "is not set"}
	}
	return nil
}
