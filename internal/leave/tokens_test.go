package leave

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/placeholder"
)

func mustDate(t *testing.T, s string) hrapi.Date {
	t.Helper()
	d, err := time.Parse(hrapi.DateLayout, s)
	require.NoError(t, err)
	return hrapi.Date{Time: d}
}

func sampleRequest(t *testing.T) *hrapi.LeaveRequest {
	t.Helper()
	reason := "εγκρίνεται"
	return &hrapi.LeaveRequest{
		ID:          7,
		EmployeeID:  1,
		LeaveTypeID: 100,
		Status:      "approved",
		RequestDate: mustDate(t, "01.06.2024"),
		StartDate:   mustDate(t, "01.07.2024"),
		EndDate:     mustDate(t, "05.07.2024"),
		Remark:      "summer",
		AuthReason1: &reason,
		Employee: &hrapi.Employee{
			ID: 1, FirstName: "Γιάννης", LastName: "Παπαδόπουλος", DepartmentID: 10, VatNo: "123456789",
		},
		LeaveType: &hrapi.LeaveType{ID: 100, Title: "Κανονική άδεια", Remark: "regular.docx"},
	}
}

func TestBuildTokens(t *testing.T) {
	format, err := ParseDateFormat("%d/%m/%Y")
	require.NoError(t, err)

	set := BuildTokens(Facts{
		Request:    sampleRequest(t),
		Department: &hrapi.Department{ID: 10, Title: "Λογιστήριο"},
		Detail:     &hrapi.LeaveDetail{ID: 7, LeaveDays: []json.RawMessage{json.RawMessage(`{}`), json.RawMessage(`{}`)}},
		Now:        time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}, format)

	assert.Equal(t, placeholder.Set{
		{Token: TokenToday, Value: "16/10/2026"},
		{Token: TokenFirstName, Value: "Γιάννης"},
		{Token: TokenLastName, Value: "Παπαδόπουλος"},
		{Token: TokenDepartment, Value: "Λογιστήριο"},
		{Token: TokenLeaveType, Value: "Κανονική άδεια"},
		{Token: TokenRequestDate, Value: "01/06/2024"},
		{Token: TokenStartDate, Value: "01/07/2024"},
		{Token: TokenEndDate, Value: "05/07/2024"},
		{Token: TokenDaysCount, Value: "2"},
		{Token: TokenReason, Value: "summer"},
		{Token: TokenReasonAuth1, Value: "εγκρίνεται"},
		{Token: TokenReasonAuth2, Value: ""},
	}, set)
	for i, r := range set {
		assert.Equal(t, AllTokens[i], r.Token)
	}
}

func TestBuildTokens_MissingRecords(t *testing.T) {
	format, err := ParseDateFormat("%Y-%m-%d")
	require.NoError(t, err)

	set := BuildTokens(Facts{Now: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}, format)

	require.Len(t, set, 12)
	assert.Equal(t, "2024-01-02", set.Apply(TokenToday))
	assert.Equal(t, "0", set.Apply(TokenDaysCount))
	for _, r := range set[1:] {
		if r.Token == TokenDaysCount {
			continue
		}
		assert.Empty(t, r.Value, r.Token)
	}
}

func TestParseDateFormat_Invalid(t *testing.T) {
	_, err := ParseDateFormat("%Q")
	assert.Error(t, err)
}
