package main

import (
	"encoding/json"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2tex/internal/resources"
)

// runTemplates lists the .cls files found in the resources directory.
func runTemplates(args []string, env *Environment) error {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	var (
		configName string
		dir        string
		jsonOutput bool
	)
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.StringVar(&dir, "resources", "", "directory with .cls files (default \"doc\")")
	fs.BoolVar(&jsonOutput, "json", false, "print as JSON")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printTemplatesUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	cfg, err := loadConfig(configName, loadEnvConfig())
	if err != nil {
		return withConfigHint(err, configName)
	}
	if dir == "" {
		dir = cfg.Resources.Dir
	}

	classes, err := resources.ListClasses(dir)
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Dir       string   `json:"dir"`
			Templates []string `json:"templates"`
		}{dir, classes})
	}

	if len(classes) == 0 {
		fmt.Fprintf(env.Stderr, "No .cls files in %s\n", dir)
		return nil
	}
	for _, name := range classes {
		marker := " "
		if name == cfg.Template.Name {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", marker, name)
	}
	return nil
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List document classes (.cls files) in the resources directory.")
	fmt.Fprintln(w, "The configured default is marked with *.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --resources <dir>     Directory to scan (default: doc)")
	fmt.Fprintln(w, "      --json                Print as JSON")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}
