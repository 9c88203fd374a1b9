// Package hrapi provides a client for the timeoff HR API.
package hrapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ExitCode is the process exit code for API failures.
const ExitCode = 50

const (
	pathLeaveTypes = "/mod-leaves/leave-type/"
	pathEmployees  = "/mod-personnel/employee/"
	pathLeaves     = "/mod-leaves/leave/"
	pathDepartment = "/mod-personnel/department/"
)

// Config holds the configuration for the API client.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the HR API with basic authentication.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// APIError is returned when the API answers with a status other than 200.
type APIError struct {
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: url: %s, response status: %d, body: %s", e.URL, e.Status, e.Body)
}

// ExitCode returns the process exit code for the error.
func (e *APIError) ExitCode() int {
	return ExitCode
}

// RequestError is returned when the API could not be reached or its answer
// could not be read.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: url: %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error.
func (e *RequestError) ExitCode() int {
	return ExitCode
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("API base URL not configured")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		client:   client,
		logger:   logger,
	}, nil
}

// LeaveTypes fetches every leave type.
func (c *Client) LeaveTypes(ctx context.Context) ([]LeaveType, error) {
	var out []LeaveType
	if err := c.get(ctx, pathLeaveTypes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Employees fetches every employee.
func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.get(ctx, pathEmployees, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Leaves fetches every leave request, in the order the API returns them.
// Dates are not validated; ListLeaves checks the requests it keeps.
func (c *Client) Leaves(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	if err := c.get(ctx, pathLeaves, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Leave fetches the detail of one leave request.
func (c *Client) Leave(ctx context.Context, id int) (*LeaveDetail, error) {
	var out LeaveDetail
	if err := c.get(ctx, fmt.Sprintf("%s%d", pathLeaves, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Department fetches one department.
func (c *Client) Department(ctx context.Context, id int) (*Department, error) {
	var out Department
	if err := c.get(ctx, fmt.Sprintf("%s%d", pathDepartment, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "url", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{URL: url, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &RequestError{URL: url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
