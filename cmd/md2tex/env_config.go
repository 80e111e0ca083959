package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2tex/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MD2TEX_CONFIG: config file path
	Template   string        // MD2TEX_TEMPLATE: document class name
	Timeout    time.Duration // MD2TEX_TIMEOUT: latexmk timeout

	// Tier 2 - I/O
	InputDir     string // MD2TEX_INPUT_DIR: default input directory
	OutputDir    string // MD2TEX_OUTPUT_DIR: default output directory
	ResourcesDir string // MD2TEX_RESOURCES_DIR: class files and images
	AssetPath    string // MD2TEX_ASSET_PATH: custom asset directory

	// Tier 3 - Document and batch
	Author  string // MD2TEX_AUTHOR: author fallback
	Date    string // MD2TEX_DATE: date fallback
	Workers int    // MD2TEX_WORKERS: parallel workers

	// Tier 4 - Service
	Listen    string // MD2TEX_LISTEN: listen address
	BuildDir  string // MD2TEX_BUILD_DIR: job work areas
	TokenHash string // MD2TEX_TOKEN_HASH: bcrypt hash of the bearer token
	WebDir    string // MD2TEX_WEB_DIR: static frontend
}

// knownEnvVars lists valid MD2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MD2TEX_CONFIG":   true,
	"MD2TEX_TEMPLATE": true,
	"MD2TEX_TIMEOUT":  true,
	// Tier 2 - I/O
	"MD2TEX_INPUT_DIR":     true,
	"MD2TEX_OUTPUT_DIR":    true,
	"MD2TEX_RESOURCES_DIR": true,
	"MD2TEX_ASSET_PATH":    true,
	// Tier 3 - Document and batch
	"MD2TEX_AUTHOR":  true,
	"MD2TEX_DATE":    true,
	"MD2TEX_WORKERS": true,
	// Tier 4 - Service
	"MD2TEX_LISTEN":     true,
	"MD2TEX_BUILD_DIR":  true,
	"MD2TEX_TOKEN_HASH": true,
	"MD2TEX_WEB_DIR":    true,
	// Read by doctor only
	"MD2TEX_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2TEX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MD2TEX_CONFIG"),
		Template:   os.Getenv("MD2TEX_TEMPLATE"),
		// Tier 2
		InputDir:     os.Getenv("MD2TEX_INPUT_DIR"),
		OutputDir:    os.Getenv("MD2TEX_OUTPUT_DIR"),
		ResourcesDir: os.Getenv("MD2TEX_RESOURCES_DIR"),
		AssetPath:    os.Getenv("MD2TEX_ASSET_PATH"),
		// Tier 3
		Author: os.Getenv("MD2TEX_AUTHOR"),
		Date:   os.Getenv("MD2TEX_DATE"),
		// Tier 4
		Listen:    os.Getenv("MD2TEX_LISTEN"),
		BuildDir:  os.Getenv("MD2TEX_BUILD_DIR"),
		TokenHash: os.Getenv("MD2TEX_TOKEN_HASH"),
		WebDir:    os.Getenv("MD2TEX_WEB_DIR"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MD2TEX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MD2TEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2TEX_* variables.
// Helps catch typos like MD2TEX_TEMPLTE instead of MD2TEX_TEMPLATE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2TEX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is only set when the config still holds its built-in default,
// so the order is: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by the command's merge step).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	def := config.DefaultConfig()

	setIfDefault(&cfg.Template.Name, def.Template.Name, env.Template)

	setIfDefault(&cfg.Input.DefaultDir, def.Input.DefaultDir, env.InputDir)
	setIfDefault(&cfg.Output.DefaultDir, def.Output.DefaultDir, env.OutputDir)
	setIfDefault(&cfg.Resources.Dir, def.Resources.Dir, env.ResourcesDir)
	setIfDefault(&cfg.Assets.BasePath, def.Assets.BasePath, env.AssetPath)

	setIfDefault(&cfg.Document.Author, def.Document.Author, env.Author)
	setIfDefault(&cfg.Document.Date, def.Document.Date, env.Date)

	setIfDefault(&cfg.Server.Listen, def.Server.Listen, env.Listen)
	setIfDefault(&cfg.Server.BuildDir, def.Server.BuildDir, env.BuildDir)
	setIfDefault(&cfg.Server.TokenHash, def.Server.TokenHash, env.TokenHash)
	setIfDefault(&cfg.Server.WebDir, def.Server.WebDir, env.WebDir)
}

func setIfDefault(field *string, def, value string) {
	if value != "" && *field == def {
		*field = value
	}
}

// loadConfig loads the config named by flag or MD2TEX_CONFIG (flag wins),
// falling back to built-in defaults, then applies the environment.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// resolveTimeoutWithEnv picks the latexmk timeout: flag > env > config.
// Zero means no limit; explicit flag values must be positive.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		d, err := time.ParseDuration(configValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, configValue, err)
		}
		if d < 0 {
			return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, configValue)
		}
		return d, nil
	}
	return 0, nil
}
