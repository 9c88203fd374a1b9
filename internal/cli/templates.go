package cli

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/leave2docx/internal/docx"
	"github.com/roboco-io/leave2docx/internal/leave"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Πρότυπα ανά τύπο άδειας",
	Long: `Εμφανίζει για κάθε τύπο άδειας το όνομα του προτύπου (πεδίο 'Περιγραφή')
και αν το αρχείο υπάρχει στον φάκελο προτύπων.

Πρότυπα σε υποφάκελο με το ΑΦΜ του υπαλλήλου έχουν προτεραιότητα κατά την εξαγωγή.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	types, err := client.LeaveTypes(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Τύπος άδειας\tΠρότυπο\tΚατάσταση")
	fmt.Fprintln(w, "------------\t-------\t---------")
	for _, t := range types {
		name := t.Remark
		if strings.TrimSpace(name) == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Title, name, templateStatus(cfg.Output.TemplateDir, t.Remark))
	}
	w.Flush()

	files, err := leave.Templates(cfg.Output.TemplateDir)
	if err != nil {
		return fmt.Errorf("αποτυχία ανάγνωσης φακέλου προτύπων: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nΑρχεία στο %s:\n", cfg.Output.TemplateDir)
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	return nil
}

func templateStatus(dir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "✗ δεν ορίστηκε"
	}
	locations, err := leave.TemplateLocations(dir, name)
	if errors.Is(err, leave.ErrTemplateOutsideDir) {
		return "✗ εκτός φακέλου προτύπων"
	}
	if err != nil || len(locations) == 0 {
		if s := leave.SuggestTemplates(dir, name); len(s) > 0 {
			return fmt.Sprintf("✗ λείπει (μήπως %s;)", strings.Join(s, ", "))
		}
		return "✗ λείπει"
	}

	var owners []string
	for _, l := range locations {
		if owner := path.Dir(l); owner != "." {
			owners = append(owners, owner)
		}
	}
	if len(owners) == len(locations) {
		return fmt.Sprintf("✓ μόνο για ΑΦΜ %s", strings.Join(owners, ", "))
	}
	if docx.DetectFormat(filepath.Join(dir, name)) == docx.FormatDOC {
		return "✗ μορφή .doc"
	}
	if len(owners) > 0 {
		return fmt.Sprintf("✓ υπάρχει (και για ΑΦΜ %s)", strings.Join(owners, ", "))
	}
	return "✓ υπάρχει"
}
