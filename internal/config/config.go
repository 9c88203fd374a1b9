// Package config manages application configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api" ini:"API"`
	Input  InputConfig  `yaml:"input" ini:"INPUT"`
	Output OutputConfig `yaml:"output" ini:"OUTPUT"`
}

// APIConfig holds the HR API connection settings.
type APIConfig struct {
	BaseURL  string `yaml:"base_url" ini:"api_base_url"`
	Username string `yaml:"username" ini:"username"`
	Password string `yaml:"password" ini:"password"`
}

// InputConfig controls which leave requests are listed.
type InputConfig struct {
	AskForLatestLeavesToShow  bool   `yaml:"ask_for_latest_leaves_to_show" ini:"ask_for_latest_leaves_to_show"`
	DefaultLatestLeavesToShow int    `yaml:"default_latest_leaves_to_show" ini:"default_latest_leaves_to_show"`
	LeaveStatus               string `yaml:"leave_status" ini:"leave_status"`
}

// OutputConfig controls where and how documents are written.
type OutputConfig struct {
	TemplateDir     string `yaml:"template_dir" ini:"template_dir"`
	OutputDir       string `yaml:"output_dir" ini:"output_dir"`
	DateFormat      string `yaml:"date_format" ini:"date_format"`
	FilenamePattern string `yaml:"filename_pattern" ini:"filename_pattern"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://app.timeoff.gr/api",
			Username: "${TIMEOFF_USERNAME}",
			Password: "${TIMEOFF_PASSWORD}",
		},
		Input: InputConfig{
			AskForLatestLeavesToShow:  true,
			DefaultLatestLeavesToShow: 10,
			LeaveStatus:               "approved",
		},
		Output: OutputConfig{
			TemplateDir:     "./templates",
			OutputDir:       "./output",
			DateFormat:      "%d/%m/%Y",
			FilenamePattern: "${LASTNAME} ${FIRSTNAME} ${START_DATE}",
		},
	}
}

// Keys lists the settings accepted by Get and Set.
var Keys = []string{
	"api.base_url", "api.username", "api.password",
	"input.ask_for_latest_leaves_to_show", "input.default_latest_leaves_to_show", "input.leave_status",
	"output.template_dir", "output.output_dir", "output.date_format", "output.filename_pattern",
}

// Get returns the value of a setting by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.username":
		return c.API.Username, nil
	case "api.password":
		return c.API.Password, nil
	case "input.ask_for_latest_leaves_to_show":
		return strconv.FormatBool(c.Input.AskForLatestLeavesToShow), nil
	case "input.default_latest_leaves_to_show":
		return strconv.Itoa(c.Input.DefaultLatestLeavesToShow), nil
	case "input.leave_status":
		return c.Input.LeaveStatus, nil
	case "output.template_dir":
		return c.Output.TemplateDir, nil
	case "output.output_dir":
		return c.Output.OutputDir, nil
	case "output.date_format":
		return c.Output.DateFormat, nil
	case "output.filename_pattern":
		return c.Output.FilenamePattern, nil
	default:
		return "", unknownKey(key)
	}
}

// Set changes a setting by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.username":
		c.API.Username = value
	case "api.password":
		c.API.Password = value
	case "input.ask_for_latest_leaves_to_show":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		c.Input.AskForLatestLeavesToShow = b
	case "input.default_latest_leaves_to_show":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for %s: %q (expected a positive number)", key, value)
		}
		c.Input.DefaultLatestLeavesToShow = n
	case "input.leave_status":
		c.Input.LeaveStatus = value
	case "output.template_dir":
		c.Output.TemplateDir = value
	case "output.output_dir":
		c.Output.OutputDir = value
	case "output.date_format":
		c.Output.DateFormat = value
	case "output.filename_pattern":
		c.Output.FilenamePattern = value
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key: %s (supported: %s)", key, strings.Join(Keys, ", "))
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
