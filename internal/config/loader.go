package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".leave2docx"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
	// ConfigPathEnv overrides the default configuration path.
	ConfigPathEnv = "LEAVE2DOCX_CONFIG"
	// DefaultEnvFile is loaded before the configuration when present.
	DefaultEnvFile = ".env"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return NewLoaderWithPath(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	return &Loader{
		configDir:  configDir,
		configPath: configPath,
	}, nil
}

// NewLoaderWithPath creates a loader with a custom config path.
// Paths ending in .ini are read and written in INI form.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads and parses the configuration file, expanding ${VAR} references
// in the API and directory settings. The filename pattern is left untouched
// since it holds document placeholders.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.LoadRaw()
	if err != nil {
		return nil, err
	}
	cfg.API.BaseURL = expandEnvVars(cfg.API.BaseURL)
	cfg.API.Username = expandEnvVars(cfg.API.Username)
	cfg.API.Password = expandEnvVars(cfg.API.Password)
	cfg.Output.TemplateDir = expandEnvVars(cfg.Output.TemplateDir)
	cfg.Output.OutputDir = expandEnvVars(cfg.Output.OutputDir)
	return cfg, nil
}

// LoadRaw reads the configuration without expanding environment variables.
func (l *Loader) LoadRaw() (*Config, error) {
	if l.isINI() {
		return l.loadINI()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the file.
func (l *Loader) Save(cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if l.isINI() {
		return l.saveINI(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

func (l *Loader) isINI() bool {
	return strings.EqualFold(filepath.Ext(l.configPath), ".ini")
}

func (l *Loader) loadINI() (*Config, error) {
	if !l.Exists() {
		return DefaultConfig(), nil
	}

	f, err := ini.Load(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var cfg Config
	sections := []struct {
		name string
		v    any
	}{
		{"API", &cfg.API},
		{"INPUT", &cfg.Input},
		{"OUTPUT", &cfg.Output},
	}
	for _, s := range sections {
		if err := f.Section(s.name).MapTo(s.v); err != nil {
			return nil, fmt.Errorf("failed to parse [%s] section: %w", s.name, err)
		}
	}
	return &cfg, nil
}

func (l *Loader) saveINI(cfg *Config) error {
	f := ini.Empty()
	sections := []struct {
		name string
		v    any
	}{
		{"API", &cfg.API},
		{"INPUT", &cfg.Input},
		{"OUTPUT", &cfg.Output},
	}
	for _, s := range sections {
		if err := f.Section(s.name).ReflectFrom(s.v); err != nil {
			return fmt.Errorf("failed to marshal [%s] section: %w", s.name, err)
		}
	}
	if err := f.SaveTo(l.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file without overriding variables
// already set. A missing file is only an error when required is true.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		// Return empty string if env var not set
		return ""
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true" or "1".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
