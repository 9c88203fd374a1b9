package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/leave2docx/internal/docx"
	"github.com/roboco-io/leave2docx/internal/leave"
	"github.com/roboco-io/leave2docx/internal/placeholder"
)

var (
	inspectOutput      string
	inspectFormat      string
	inspectPrettyPrint bool
	inspectRuns        bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <template>",
	Short: "Έλεγχος των placeholders ενός προτύπου",
	Long: `Διαβάζει ένα πρότυπο .docx και εμφανίζει τα placeholders ${...} που περιέχει,
σε ποια περιοχή βρίσκονται και σε πόσα runs είναι μοιρασμένα.

Placeholders που δεν αναγνωρίζονται επισημαίνονται.
Οι έξοδοι είναι JSON ή κείμενο.

Παράδειγμα:
  leave2docx inspect templates/regular.docx
  leave2docx inspect templates/regular.docx --format text --runs`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "αρχείο εξόδου (προεπιλογή: stdout)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "μορφή εξόδου (json, text)")
	inspectCmd.Flags().BoolVar(&inspectPrettyPrint, "pretty", true, "JSON με εσοχές")
	inspectCmd.Flags().BoolVar(&inspectRuns, "runs", false, "εμφάνιση των runs κάθε παραγράφου (text)")

	rootCmd.AddCommand(inspectCmd)
}

// templateReport summarises the placeholders of a template.
type templateReport struct {
	Template string                `json:"template"`
	Sections int                   `json:"sections"`
	Findings []placeholder.Finding `json:"placeholders"`
	Unknown  []string              `json:"unknown,omitempty"`
	Missing  []string              `json:"missing,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Check file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("το αρχείο δεν βρέθηκε: %s", inputPath)
	}

	doc, err := docx.Open(inputPath)
	if err != nil {
		return fmt.Errorf("αποτυχία ανάγνωσης προτύπου: %w", err)
	}

	output, err := formatInspect(doc, inspectFormat)
	if err != nil {
		return fmt.Errorf("αποτυχία μορφοποίησης εξόδου: %w", err)
	}

	// Write output
	if inspectOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(inspectOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("αποτυχία αποθήκευσης αρχείου: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Ο έλεγχος αποθηκεύτηκε: %s\n", inspectOutput)
	}
	return nil
}

func buildReport(doc *docx.Document) templateReport {
	report := templateReport{
		Template: doc.Path(),
		Sections: len(doc.Sections()),
		Findings: placeholder.Scan(doc),
	}

	known := make(map[string]bool, len(leave.AllTokens))
	for _, t := range leave.AllTokens {
		known[t] = true
	}
	used := make(map[string]bool)
	for _, f := range report.Findings {
		if !known[f.Token] && !used[f.Token] {
			report.Unknown = append(report.Unknown, f.Token)
		}
		used[f.Token] = true
	}
	for _, t := range leave.AllTokens {
		if !used[t] {
			report.Missing = append(report.Missing, t)
		}
	}
	return report
}

func formatInspect(doc *docx.Document, format string) (string, error) {
	switch format {
	case "json":
		report := buildReport(doc)
		var data []byte
		var err error
		if inspectPrettyPrint {
			data, err = json.MarshalIndent(report, "", "  ")
		} else {
			data, err = json.Marshal(report)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatInspectText(doc), nil

	default:
		return "", fmt.Errorf("μη υποστηριζόμενη μορφή εξόδου: %s", format)
	}
}

func formatInspectText(doc *docx.Document) string {
	var sb strings.Builder
	report := buildReport(doc)

	fmt.Fprintf(&sb, "Πρότυπο: %s\n", report.Template)
	fmt.Fprintf(&sb, "Ενότητες: %d\n", report.Sections)
	for i, s := range doc.Sections() {
		fmt.Fprintf(&sb, "  %d: κεφαλίδα %s, υποσέλιδο %s\n", i+1, partName(s.Header()), partName(s.Footer()))
	}
	sb.WriteString("\n")

	if inspectRuns {
		for _, scope := range placeholder.Scopes {
			paragraphs := placeholder.ScopeParagraphs(doc, scope)
			if len(paragraphs) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "[%s]\n", scope)
			for i, p := range paragraphs {
				var runs []string
				for _, r := range p.Runs() {
					text := fmt.Sprintf("%q", r.Text())
					if r.Bold() {
						text = "**" + text + "**"
					}
					runs = append(runs, text)
				}
				style := ""
				if s := p.Style(); s != "" {
					style = " [" + s + "]"
				}
				fmt.Fprintf(&sb, "  %d%s: %s\n", i, style, strings.Join(runs, " | "))
			}
		}
		sb.WriteString("\n")
	}

	if len(report.Findings) == 0 {
		sb.WriteString("Δεν βρέθηκαν placeholders.\n")
	}
	for _, f := range report.Findings {
		split := ""
		if f.Split() {
			split = fmt.Sprintf(" (μοιρασμένο σε %d runs)", f.Runs)
		}
		fmt.Fprintf(&sb, "%s\t%s #%d%s\n", f.Token, f.Scope, f.Paragraph, split)
	}
	if len(report.Unknown) > 0 {
		fmt.Fprintf(&sb, "\nΆγνωστα placeholders: %s\n", strings.Join(report.Unknown, ", "))
	}
	if len(report.Missing) > 0 {
		fmt.Fprintf(&sb, "Δεν χρησιμοποιούνται: %s\n", strings.Join(report.Missing, ", "))
	}
	return sb.String()
}

// partName returns the part holding a header or footer, or "-" when there is none.
func partName(r *docx.Region) string {
	if r == nil {
		return "-"
	}
	return r.Part()
}
