package hrapi

import (
	"context"
	"fmt"
	"sort"
)

// ListOptions selects which leave requests ListLeaves returns.
type ListOptions struct {
	// Status keeps only requests with this status. Empty keeps all.
	Status string
	// Limit caps the number of requests. Zero or negative means no cap.
	Limit int
}

// ListLeaves fetches leave requests, filters them by status, keeps the first
// Limit of them, checks their dates, attaches their employee and leave type,
// and sorts them by request date, newest first. Requests dropped by the
// filter or the limit are never checked.
func (c *Client) ListLeaves(ctx context.Context, opts ListOptions) ([]LeaveRequest, error) {
	employees, err := c.Employees(ctx)
	if err != nil {
		return nil, err
	}
	types, err := c.LeaveTypes(ctx)
	if err != nil {
		return nil, err
	}
	leaves, err := c.Leaves(ctx)
	if err != nil {
		return nil, err
	}

	leaves = FilterLeaves(leaves, opts)
	for i := range leaves {
		if err := leaves[i].Validate(); err != nil {
			return nil, err
		}
	}
	if err := Enrich(leaves, employees, types); err != nil {
		return nil, err
	}
	SortByRequestDate(leaves)

	c.logger.Debug("leaves listed", "count", len(leaves), "status", opts.Status, "limit", opts.Limit)
	return leaves, nil
}

// FilterLeaves applies the status filter, then the limit.
func FilterLeaves(leaves []LeaveRequest, opts ListOptions) []LeaveRequest {
	out := leaves
	if opts.Status != "" {
		out = make([]LeaveRequest, 0, len(leaves))
		for _, l := range leaves {
			if l.Status == opts.Status {
				out = append(out, l)
			}
		}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// Enrich attaches the employee and leave type of every request.
func Enrich(leaves []LeaveRequest, employees []Employee, types []LeaveType) error {
	byEmployee := make(map[int]*Employee, len(employees))
	for i := range employees {
		byEmployee[employees[i].ID] = &employees[i]
	}
	byType := make(map[int]*LeaveType, len(types))
	for i := range types {
		byType[types[i].ID] = &types[i]
	}

	for i := range leaves {
		l := &leaves[i]
		emp, ok := byEmployee[l.EmployeeID]
		if !ok {
			return fmt.Errorf("leave %d: unknown employee %d", l.ID, l.EmployeeID)
		}
		lt, ok := byType[l.LeaveTypeID]
		if !ok {
			return fmt.Errorf("leave %d: unknown leave type %d", l.ID, l.LeaveTypeID)
		}
		l.Employee = emp
		l.LeaveType = lt
	}
	return nil
}

// SortByRequestDate orders requests newest first. Equal dates keep their order.
func SortByRequestDate(leaves []LeaveRequest) {
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].RequestDate.After(leaves[j].RequestDate.Time)
	})
}
