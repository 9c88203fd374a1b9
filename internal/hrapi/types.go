package hrapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the layout of dates sent by the API (dd.mm.yyyy).
const DateLayout = "02.01.2006"

// Date is a calendar date in the API's dd.mm.yyyy form.
type Date struct {
	time.Time
	// invalid holds a value that did not parse; it is reported by Validate.
	invalid string
}

// UnmarshalJSON parses a dd.mm.yyyy string. null and "" leave the date zero.
// A malformed value also leaves it zero and is kept for Validate, so one bad
// record does not fail the whole response.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.invalid = string(data)
		return nil
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		d.invalid = s
		return nil
	}
	d.Time = t
	return nil
}

// Validate returns an error if the date is missing or malformed.
func (d Date) Validate() error {
	if d.invalid != "" {
		return fmt.Errorf("invalid date %q, expected dd.mm.yyyy", d.invalid)
	}
	if d.IsZero() {
		return errors.New("missing date")
	}
	return nil
}

// MarshalJSON renders the date back in dd.mm.yyyy form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// String returns the date in dd.mm.yyyy form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// LeaveType is a category of leave. Remark holds the template filename.
type LeaveType struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Remark string `json:"remark"`
}

// Employee is a person in the personnel module.
type Employee struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	DepartmentID int    `json:"departmentId"`
	VatNo        string `json:"vatNo"`
}

// FullName returns "last first", the order leave listings use.
func (e *Employee) FullName() string {
	if e == nil {
		return ""
	}
	return e.LastName + " " + e.FirstName
}

// LeaveRequest is one leave application.
type LeaveRequest struct {
	ID          int     `json:"id"`
	EmployeeID  int     `json:"employeeId"`
	LeaveTypeID int     `json:"leaveTypeId"`
	Status      string  `json:"status"`
	RequestDate Date    `json:"requestDate"`
	StartDate   Date    `json:"startDate"`
	EndDate     Date    `json:"endDate"`
	Remark      string  `json:"remark"`
	AuthReason1 *string `json:"authLevel1_reason,omitempty"`
	AuthReason2 *string `json:"authLevel2_reason,omitempty"`

	// Set by ListLeaves.
	Employee  *Employee  `json:"-"`
	LeaveType *LeaveType `json:"-"`
}

// Validate checks the request, start and end dates.
func (r *LeaveRequest) Validate() error {
	for _, f := range []struct {
		name string
		date Date
	}{
		{"requestDate", r.RequestDate},
		{"startDate", r.StartDate},
		{"endDate", r.EndDate},
	} {
		if err := f.date.Validate(); err != nil {
			return fmt.Errorf("leave %d: %s: %w", r.ID, f.name, err)
		}
	}
	return nil
}

// LeaveDetail is the detail view of a leave request.
type LeaveDetail struct {
	ID        int               `json:"id"`
	LeaveDays []json.RawMessage `json:"leaveDays"`
}

// DaysCount returns the number of leave days.
func (d *LeaveDetail) DaysCount() int {
	if d == nil {
		return 0
	}
	return len(d.LeaveDays)
}

// Department is an organisational unit.
type Department struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
