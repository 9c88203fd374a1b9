// Package leave turns a leave request into a filled approval document.
package leave

import (
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/placeholder"
)

// Tokens recognised in templates and filename patterns.
const (
	TokenToday       = "${TODAY}"
	TokenFirstName   = "${FIRSTNAME}"
	TokenLastName    = "${LASTNAME}"
	TokenDepartment  = "${DEPARTMENT}"
	TokenLeaveType   = "${LEAVE_TYPE}"
	TokenRequestDate = "${REQUEST_DATE}"
	TokenStartDate   = "${START_DATE}"
	TokenEndDate     = "${END_DATE}"
	TokenDaysCount   = "${DAYS_COUNT}"
	TokenReason      = "${REASON}"
	TokenReasonAuth1 = "${REASON_AUTH1}"
	TokenReasonAuth2 = "${REASON_AUTH2}"
)

// AllTokens lists the tokens in substitution order.
var AllTokens = []string{
	TokenToday, TokenFirstName, TokenLastName, TokenDepartment, TokenLeaveType,
	TokenRequestDate, TokenStartDate, TokenEndDate, TokenDaysCount,
	TokenReason, TokenReasonAuth1, TokenReasonAuth2,
}

// Facts are the records a token map is built from.
type Facts struct {
	Request    *hrapi.LeaveRequest
	Department *hrapi.Department
	Detail     *hrapi.LeaveDetail
	Now        time.Time
}

// BuildTokens maps every token to its value. Dates are rendered with format.
// Missing records and absent optional reasons yield empty values.
func BuildTokens(f Facts, format *strftime.Strftime) placeholder.Set {
	req := f.Request
	if req == nil {
		req = &hrapi.LeaveRequest{}
	}

	var firstName, lastName, leaveType, department string
	if req.Employee != nil {
		firstName = req.Employee.FirstName
		lastName = req.Employee.LastName
	}
	if req.LeaveType != nil {
		leaveType = req.LeaveType.Title
	}
	if f.Department != nil {
		department = f.Department.Title
	}

	return placeholder.Set{
		{Token: TokenToday, Value: formatDate(format, f.Now)},
		{Token: TokenFirstName, Value: firstName},
		{Token: TokenLastName, Value: lastName},
		{Token: TokenDepartment, Value: department},
		{Token: TokenLeaveType, Value: leaveType},
		{Token: TokenRequestDate, Value: formatDate(format, req.RequestDate.Time)},
		{Token: TokenStartDate, Value: formatDate(format, req.StartDate.Time)},
		{Token: TokenEndDate, Value: formatDate(format, req.EndDate.Time)},
		{Token: TokenDaysCount, Value: strconv.Itoa(f.Detail.DaysCount())},
		{Token: TokenReason, Value: req.Remark},
		{Token: TokenReasonAuth1, Value: deref(req.AuthReason1)},
		{Token: TokenReasonAuth2, Value: deref(req.AuthReason2)},
	}
}

// ParseDateFormat compiles a strftime pattern such as "%d/%m/%Y".
func ParseDateFormat(pattern string) (*strftime.Strftime, error) {
	return strftime.New(pattern)
}

func formatDate(format *strftime.Strftime, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return format.FormatString(t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
