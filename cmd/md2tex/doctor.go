package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/hints"
	"github.com/alnah/go-md2tex/internal/resources"
	"github.com/alnah/go-md2tex/internal/toolchain"
)

// versionTimeout bounds each "<binary> --version" probe.
const versionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Toolchain []binaryInfo  `json:"toolchain"`
	Resources resourcesInfo `json:"resources"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// binaryInfo holds detection results for one TeX binary.
type binaryInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// resourcesInfo describes the resources directory.
type resourcesInfo struct {
	Dir     string   `json:"dir"`
	Exists  bool     `json:"exists"`
	Classes []string `json:"classes"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	cfg, err := loadConfig("", loadEnvConfig())
	if err != nil {
		cfg = config.DefaultConfig()
	}

	result := runDoctor(cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkToolchain(result)
	checkResources(result, cfg)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkToolchain locates latexmk and xelatex and records their versions.
func checkToolchain(result *doctorResult) {
	found, _ := toolchain.Check()

	for _, name := range []string{toolchain.LatexmkBinary, toolchain.EngineBinary} {
		info := binaryInfo{Name: name}
		path, ok := found[name]
		if !ok {
			// Check stops at the first missing binary.
			if p, err := exec.LookPath(name); err == nil {
				path, ok = p, true
			}
		}
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s not found.%s", name, strings.TrimPrefix(hints.ForToolchainNotFound(name), "\n ")))
			result.Toolchain = append(result.Toolchain, info)
			continue
		}

		info.Found = true
		info.Path = path
		if v, err := binaryVersion(path); err == nil {
			info.Version = v
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not get %s version: %v", name, err))
		}
		result.Toolchain = append(result.Toolchain, info)
	}
}

// binaryVersion returns the first line of "<path> --version".
func binaryVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path from LookPath
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// checkResources reports the class files available for compiling.
func checkResources(result *doctorResult, cfg *config.Config) {
	result.Resources.Dir = cfg.Resources.Dir
	classes, err := resources.ListClasses(cfg.Resources.Dir)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Cannot read resources directory %s: %v", cfg.Resources.Dir, err))
		classes = []string{}
	}
	result.Resources.Classes = classes
	result.Resources.Exists = isDir(cfg.Resources.Dir)

	switch {
	case !result.Resources.Exists:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Resources directory %s not found; --compile needs the .cls files", cfg.Resources.Dir))
	case len(classes) == 0:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No .cls files in %s", cfg.Resources.Dir))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("MD2TEX_CONTAINER") == "1" {
		return true, "MD2TEX_CONTAINER=1"
	}
	// Docker
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory latexmk scratch files may use.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2tex-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2tex doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TeX toolchain")
	for _, b := range r.Toolchain {
		if !b.Found {
			fmt.Fprintf(w, "  [ERROR] %s: not found\n", b.Name)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", b.Name, b.Path)
		if b.Version != "" {
			fmt.Fprintf(w, "       %s\n", b.Version)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Resources")
	if r.Resources.Exists {
		fmt.Fprintf(w, "  [OK] Directory: %s\n", r.Resources.Dir)
		if len(r.Resources.Classes) > 0 {
			fmt.Fprintf(w, "  [OK] Classes: %s\n", strings.Join(r.Resources.Classes, ", "))
		}
	} else {
		fmt.Fprintf(w, "  [WARN] Directory: %s (missing)\n", r.Resources.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to compile")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
