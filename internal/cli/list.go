package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/roboco-io/leave2docx/internal/hrapi"
)

var listXLSX string

// leavesSheet is the worksheet written by list --xlsx.
const leavesSheet = "Leaves"

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Εμφάνιση των αιτημάτων άδειας",
	Long: `Εμφανίζει τα αιτήματα άδειας χωρίς εξαγωγή εγγράφου.

Με --xlsx ο πίνακας αποθηκεύεται και σε βιβλίο εργασίας Excel.

Παράδειγμα:
  leave2docx list -n 50
  leave2docx list --status pending --xlsx leaves.xlsx`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listXLSX, "xlsx", "", "αποθήκευση του πίνακα σε αρχείο .xlsx")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	leaves, err := client.ListLeaves(cmd.Context(), listOptions(cmd, cfg))
	if err != nil {
		return err
	}

	printLeaveTable(cmd.OutOrStdout(), leaves)

	if listXLSX != "" {
		if err := writeLeavesWorkbook(listXLSX, leaves); err != nil {
			return fmt.Errorf("αποτυχία αποθήκευσης %s: %w", listXLSX, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Ο πίνακας αποθηκεύτηκε: %s\n", listXLSX)
	}
	return nil
}

// writeLeavesWorkbook stores the leave table as a single-sheet workbook.
func writeLeavesWorkbook(path string, leaves []hrapi.LeaveRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leavesSheet); err != nil {
		return err
	}

	rows := [][]string{leaveColumns}
	for i := range leaves {
		rows = append(rows, leaveRow(i, &leaves[i]))
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(leavesSheet, cell, value); err != nil {
				return err
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(leaveColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(leavesSheet, "A1", last, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(leavesSheet, "A", "A", 6); err != nil {
		return err
	}
	if err := f.SetColWidth(leavesSheet, "B", "G", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(leavesSheet, "C", "C", leaveTypeWidth); err != nil {
		return err
	}

	return f.SaveAs(path)
}
