package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxNameLength   = 100  // Author name
	MaxDateLength   = 30   // "2025-12-31" or "auto:MMMM D, YYYY"
	MaxListenLength = 255  // host:port
)

// MaxJobsLimit bounds server.maxJobs.
const MaxJobsLimit = 10000

// Config holds all configuration for conversion, compilation and the job service.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Template  TemplateConfig  `yaml:"template"`
	Document  DocumentConfig  `yaml:"document"`
	Resources ResourcesConfig `yaml:"resources"`
	Assets    AssetsConfig    `yaml:"assets"`
	Compile   CompileConfig   `yaml:"compile"`
	Server    ServerConfig    `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = resources dir)
}

// TemplateConfig selects the document class and rendering options.
type TemplateConfig struct {
	Name             string `yaml:"name"`             // Class name, also picks the header set
	ResolveLanguages bool   `yaml:"resolveLanguages"` // Map code tags to listings languages
}

// DocumentConfig supplies metadata fallbacks for files without front matter.
type DocumentConfig struct {
	Author string `yaml:"author"` // Empty = built-in default
	Date   string `yaml:"date"`   // "auto", "auto:FORMAT" or literal; empty = \today
}

// ResourcesConfig locates the class files and images copied next to the output.
type ResourcesConfig struct {
	Dir string `yaml:"dir"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// CompileConfig controls the latexmk step.
type CompileConfig struct {
	Enabled bool   `yaml:"enabled"`
	Clean   bool   `yaml:"clean"`
	Timeout string `yaml:"timeout"` // Go duration, empty = no limit
}

// ServerConfig configures the job service.
type ServerConfig struct {
	Listen    string `yaml:"listen"`
	BuildDir  string `yaml:"buildDir"`
	MaxJobs   int    `yaml:"maxJobs"`
	TokenHash string `yaml:"tokenHash"` // bcrypt hash of the bearer token, empty = open
	WebDir    string `yaml:"webDir"`    // Static frontend, empty = none
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		field string
		value string
	}{
		{"input.defaultDir", c.Input.DefaultDir},
		{"output.defaultDir", c.Output.DefaultDir},
		{"resources.dir", c.Resources.Dir},
		{"assets.basePath", c.Assets.BasePath},
		{"server.buildDir", c.Server.BuildDir},
		{"server.webDir", c.Server.WebDir},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Template.Name != "" {
		if err := assets.ValidateAssetName(c.Template.Name); err != nil {
			return fmt.Errorf("%w: template.name: %v", ErrInvalidValue, err)
		}
	}

	if err := validateFieldLength("document.author", c.Document.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.date", c.Document.Date, MaxDateLength); err != nil {
		return err
	}

	if _, err := c.CompileTimeout(); err != nil {
		return err
	}

	if err := validateFieldLength("server.listen", c.Server.Listen, MaxListenLength); err != nil {
		return err
	}
	if c.Server.MaxJobs < 0 || c.Server.MaxJobs > MaxJobsLimit {
		return fmt.Errorf("%w: server.maxJobs: must be between 0 and %d, got %d", ErrInvalidValue, MaxJobsLimit, c.Server.MaxJobs)
	}
	if c.Server.TokenHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Server.TokenHash)); err != nil {
			return fmt.Errorf("%w: server.tokenHash: not a bcrypt hash: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// CompileTimeout parses compile.timeout. Empty means no limit (zero).
func (c *Config) CompileTimeout() (time.Duration, error) {
	if c.Compile.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Compile.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: compile.timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: compile.timeout: must not be negative", ErrInvalidValue)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Defaults applied when neither config nor flags say otherwise.
const (
	DefaultTemplate     = "matnoble"
	DefaultResourcesDir = "doc"
	DefaultListen       = ":8000"
	DefaultBuildDir     = "build"
	DefaultMaxJobs      = 20
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Template:  TemplateConfig{Name: DefaultTemplate},
		Resources: ResourcesConfig{Dir: DefaultResourcesDir},
		Server: ServerConfig{
			Listen:   DefaultListen,
			BuildDir: DefaultBuildDir,
			MaxJobs:  DefaultMaxJobs,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory, then ~/.config/go-md2tex/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2tex", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
