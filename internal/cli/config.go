package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/leave2docx/internal/config"
	"github.com/roboco-io/leave2docx/internal/leave"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Διαχείριση ρυθμίσεων",
	Long: `Διαχείριση των ρυθμίσεων του leave2docx.

Αρχείο ρυθμίσεων: ~/.leave2docx/config.yaml (ή --config)

Υποεντολές:
  show    εμφάνιση τρεχουσών ρυθμίσεων
  init    δημιουργία αρχείου με τις προεπιλογές
  set     αλλαγή ρύθμισης
  path    εμφάνιση διαδρομής αρχείου ρυθμίσεων`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Εμφάνιση τρεχουσών ρυθμίσεων",
	Long: `Εμφανίζει τις ρυθμίσεις όπως είναι αποθηκευμένες.

Αναφορές ${VAR} σε μεταβλητές περιβάλλοντος εμφανίζονται χωρίς ανάπτυξη.
Αν δεν υπάρχει αρχείο ρυθμίσεων εμφανίζονται οι προεπιλογές.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Δημιουργία αρχείου ρυθμίσεων",
	Long: `Δημιουργεί αρχείο ρυθμίσεων με τις προεπιλογές στο ~/.leave2docx/config.yaml.

Αν το αρχείο υπάρχει ήδη εμφανίζεται σφάλμα.
Για αντικατάσταση χρησιμοποιήστε --force.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Αλλαγή ρύθμισης",
	Long: `Αλλάζει μία ρύθμιση.

Υποστηριζόμενα κλειδιά:
  ` + strings.Join(config.Keys, "\n  ") + `

Παράδειγμα:
  leave2docx config set input.leave_status approved
  leave2docx config set output.date_format "%d.%m.%Y"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Διαδρομή αρχείου ρυθμίσεων",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "ΣΦΑΛΜΑ: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "αντικατάσταση υπάρχοντος αρχείου")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("αποτυχία αρχικοποίησης ρυθμίσεων: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("αποτυχία φόρτωσης ρυθμίσεων: %w", err)
	}

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "Αρχείο ρυθμίσεων: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Αρχείο ρυθμίσεων: (προεπιλογές)\n\n")
	}

	shown := *cfg
	if !strings.HasPrefix(shown.API.Password, "${") {
		shown.API.Password = maskAPIKey(shown.API.Password)
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("αποτυχία εμφάνισης ρυθμίσεων: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	// Show environment variable overrides
	fmt.Fprintln(cmd.OutOrStdout(), "Μεταβλητές περιβάλλοντος:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key   string
		desc  string
		value string
	}{
		{"TIMEOFF_USERNAME", "Χρήστης API", os.Getenv("TIMEOFF_USERNAME")},
		{"TIMEOFF_PASSWORD", "Κωδικός API", maskAPIKey(os.Getenv("TIMEOFF_PASSWORD"))},
		{config.ConfigPathEnv, "Αρχείο ρυθμίσεων", os.Getenv(config.ConfigPathEnv)},
		{EnvFileEnv, "Αρχείο .env", os.Getenv(EnvFileEnv)},
		{DebugEnv, "Αναλυτική καταγραφή", os.Getenv(DebugEnv)},
	}

	for _, ev := range envVars {
		status := "(δεν έχει οριστεί)"
		if ev.value != "" {
			status = ev.value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("αποτυχία αρχικοποίησης ρυθμίσεων: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("το αρχείο ρυθμίσεων υπάρχει ήδη: %s\nγια αντικατάσταση χρησιμοποιήστε --force", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("αποτυχία δημιουργίας αρχείου ρυθμίσεων: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Δημιουργήθηκε αρχείο ρυθμίσεων: %s\n", loader.ConfigPath())
	return nil
}

var leaveStatuses = []string{"approved", "pending", "rejected", "cancelled"}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("αποτυχία αρχικοποίησης ρυθμίσεων: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("αποτυχία φόρτωσης ρυθμίσεων: %w", err)
	}

	switch key {
	case "output.date_format":
		if _, err := leave.ParseDateFormat(value); err != nil {
			return fmt.Errorf("μη έγκυρη μορφή ημερομηνίας: %s (%v)", value, err)
		}
	case "input.leave_status":
		if !contains(leaveStatuses, value) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Προσοχή: άγνωστη κατάσταση %s (γνωστές: %s)\n", value, strings.Join(leaveStatuses, ", "))
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("αποτυχία αποθήκευσης ρυθμίσεων: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Η ρύθμιση άλλαξε: %s = %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
