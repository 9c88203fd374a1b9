// Package cli implements the leave2docx command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfgFile    string
	envFile    string
	verbose    bool
	quiet      bool
	limitFlag  int
	statusFlag string
)

var rootCmd = &cobra.Command{
	Use:   "leave2docx",
	Short: "Εξαγωγή αιτημάτων άδειας σε έγγραφα Word",
	Long: `Το leave2docx διαβάζει τα αιτήματα άδειας από το timeoff API και
συμπληρώνει το πρότυπο .docx του τύπου άδειας με τα στοιχεία του αιτήματος.

Χωρίς υποεντολή εκτελείται η διαδραστική εξαγωγή (ίδια με το "export").

Ρυθμίσεις: ~/.leave2docx/config.yaml (ή --config, υποστηρίζεται και config.ini)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Εμφάνιση έκδοσης",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "leave2docx %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "αρχείο ρυθμίσεων (.yaml ή .ini)")
	pf.StringVar(&envFile, "env-file", "", "αρχείο .env με διαπιστευτήρια (προεπιλογή: ./.env αν υπάρχει)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "αναλυτική έξοδος")
	pf.BoolVarP(&quiet, "quiet", "q", false, "μόνο σφάλματα και προειδοποιήσεις")
	pf.IntVarP(&limitFlag, "limit", "n", 0, "πλήθος αιτημάτων προς εμφάνιση (προεπιλογή από τις ρυθμίσεις)")
	pf.StringVar(&statusFlag, "status", "", "κατάσταση αιτημάτων (προεπιλογή από τις ρυθμίσεις)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "ΣΦΑΛΜΑ: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to a process exit code: configuration and API errors
// carry their own code, anything else exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
