package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/leave2docx/internal/hrapi"
)

// leaveTypeWidth is the width of the leave type column.
const leaveTypeWidth = 40

var leaveColumns = []string{"Α/Α", "Ημερομηνία Αίτησης", "Τύπος Άδειας", "Ημ/νία Έναρξης", "Ημ/νία Λήξης", "Κατάσταση", "Επώνυμο/Όνομα"}

func leaveRow(i int, l *hrapi.LeaveRequest) []string {
	leaveType := ""
	if l.LeaveType != nil {
		leaveType = l.LeaveType.Title
	}
	return []string{
		fmt.Sprintf("%d", i+1),
		l.RequestDate.String(),
		truncate(leaveType, leaveTypeWidth),
		l.StartDate.String(),
		l.EndDate.String(),
		l.Status,
		l.Employee.FullName(),
	}
}

func printLeaveTable(w io.Writer, leaves []hrapi.LeaveRequest) {
	fmt.Fprintln(w, "Αιτήματα άδειας")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(leaveColumns, "\t"))
	dashes := make([]string, len(leaveColumns))
	for i, c := range leaveColumns {
		dashes[i] = strings.Repeat("-", len([]rune(c)))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for i := range leaves {
		fmt.Fprintln(tw, strings.Join(leaveRow(i, &leaves[i]), "\t"))
	}
	tw.Flush()
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
