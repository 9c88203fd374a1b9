package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/leave2docx/internal/docx"
	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/leave"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Διαδραστική εξαγωγή αιτήματος άδειας σε .docx",
	Long: `Εμφανίζει τα πιο πρόσφατα αιτήματα άδειας και εξάγει σε .docx όποιο επιλέξετε.

Το πρότυπο κάθε τύπου άδειας ορίζεται στο πεδίο 'Περιγραφή' του τύπου άδειας
και αναζητείται πρώτα στον υποφάκελο με το ΑΦΜ του υπαλλήλου και μετά στον
φάκελο προτύπων. Για έξοδο πληκτρολογήστε 0.

Παράδειγμα:
  leave2docx export
  leave2docx export -n 20 --status approved`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// selectionKind is the outcome of reading one answer at the selection prompt.
type selectionKind int

const (
	selectionInvalid selectionKind = iota
	selectionQuit
	selectionChosen
)

type selection struct {
	kind selectionKind
	// index is the zero-based row for selectionChosen.
	index int
	// reason explains a selectionInvalid answer.
	reason string
}

// parseSelection interprets an answer at the selection prompt for a table of count rows.
func parseSelection(input string, count int) selection {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	if err != nil {
		return selection{kind: selectionInvalid, reason: "Λάθος τιμή! Η τιμή που δώσατε δεν είναι αριθμός!"}
	}
	if n == 0 {
		return selection{kind: selectionQuit}
	}
	if n < 0 || n > count {
		return selection{kind: selectionInvalid, reason: "Ο αριθμός που δώσατε δεν υπάρχει στον πίνακα!"}
	}
	return selection{kind: selectionChosen, index: n - 1}
}

// parseLimit interprets an answer at the limit prompt. An empty answer keeps def.
func parseLimit(input string, def int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("μη έγκυρο πλήθος: %q", input)
	}
	return n, nil
}

// prompter reads answers line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question and returns the answer. io.EOF is returned once input is exhausted.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) askLimit(def int) (int, error) {
	for {
		answer, err := p.ask(fmt.Sprintf("Δώστε το πλήθος των αιτημάτων που θέλετε να εμφανιστούν (πχ. 10)? default: %d > ", def))
		if err != nil {
			return 0, err
		}
		n, err := parseLimit(answer, def)
		if err != nil {
			fmt.Fprintf(p.out, "ΣΦΑΛΜΑ: %v\n", err)
			continue
		}
		return n, nil
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	opts := listOptions(cmd, cfg)
	if cfg.Input.AskForLatestLeavesToShow && !cmd.Flags().Changed("limit") {
		n, err := p.askLimit(opts.Limit)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		opts.Limit = n
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	exporter, err := newExporter(cfg, client, logger)
	if err != nil {
		return err
	}

	leaves, err := client.ListLeaves(cmd.Context(), opts)
	if err != nil {
		return err
	}
	printLeaveTable(out, leaves)
	if len(leaves) == 0 {
		fmt.Fprintln(out, "Δεν βρέθηκαν αιτήματα άδειας.")
		return nil
	}

	for {
		answer, err := p.ask("Γράψτε το Α/Α της αίτησης που θέλετε να εξάγετε? Για έξοδο γράψτε μηδέν (0) > ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		sel := parseSelection(answer, len(leaves))
		switch sel.kind {
		case selectionQuit:
			return nil
		case selectionInvalid:
			fmt.Fprintf(out, "ΣΦΑΛΜΑ: %s\n", sel.reason)
			continue
		}

		res, err := exporter.Export(cmd.Context(), &leaves[sel.index])
		if err != nil {
			if fatal(err) {
				return err
			}
			fmt.Fprintf(out, "ΣΦΑΛΜΑ: %s\n", describeExportError(err, &leaves[sel.index]))
			continue
		}
		fmt.Fprintf(out, "Η δημιουργία του αρχείου ολοκληρώθηκε. Το αρχείο βρίσκεται στην παρακάτω διαδρομή:\n%s\n\n", res.Path)
	}
}

// exitCoder is implemented by errors that end the process with their own code.
type exitCoder interface {
	ExitCode() int
}

// fatal reports whether an export error must end the session.
func fatal(err error) bool {
	var ec exitCoder
	return errors.As(err, &ec)
}

func describeExportError(err error, req *hrapi.LeaveRequest) string {
	title := ""
	if req.LeaveType != nil {
		title = req.LeaveType.Title
	}
	switch {
	case errors.Is(err, leave.ErrTemplateNotConfigured):
		return fmt.Sprintf("Δεν έχετε ορίσει το όνομα του αρχείου για τον τύπο άδειας '%s'. "+
			"Ορίστε το όνομα του προτύπου στο πεδίο 'Περιγραφή' του τύπου άδειας.", title)
	case errors.Is(err, leave.ErrTemplateOutsideDir):
		return fmt.Sprintf("Το όνομα προτύπου του τύπου άδειας '%s' δείχνει έξω από τον φάκελο προτύπων: %v", title, err)
	case errors.Is(err, leave.ErrTemplateNotFound):
		return fmt.Sprintf("Το πρότυπο δεν βρέθηκε: %v", err)
	case errors.Is(err, docx.ErrLegacyFormat):
		return fmt.Sprintf("Το πρότυπο είναι παλιού τύπου .doc. Αποθηκεύστε το ως .docx: %v", err)
	case errors.Is(err, leave.ErrFilenameTooLong):
		return fmt.Sprintf("Το όνομα του αρχείου docx είναι πολύ μεγάλο. Αλλάξτε τη ρύθμιση output.filename_pattern! (%v)", err)
	case errors.Is(err, leave.ErrFilenameEmpty):
		return "Το όνομα του αρχείου docx είναι κενό. Αλλάξτε τη ρύθμιση output.filename_pattern!"
	default:
		return err.Error()
	}
}
