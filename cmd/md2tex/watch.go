package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events a single save produces.
const watchDebounce = 200 * time.Millisecond

// runWatch converts one file, then converts it again after every change
// until ctx is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: watch takes exactly one markdown file", ErrUsage)
	}
	inputPath := positional[0]
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return withConfigHint(err, flags.common.config)
	}
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeoutWithEnv(flags.build.timeout, envCfg.Timeout, cfg.Compile.Timeout)
	if err != nil {
		return err
	}
	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	builder := resolveBuilder(env, timeout)

	file := FileToConvert{
		InputPath:  inputPath,
		OutputPath: resolveOutputPath(inputPath, resolveOutputDir(flags.output, cfg), ""),
	}
	params := &conversionParams{
		template:     cfg.Template.Name,
		resourcesDir: cfg.Resources.Dir,
		compile:      cfg.Compile.Enabled,
		clean:        cfg.Compile.Clean,
	}

	convert := func() {
		r := convertFile(ctx, conv, builder, file, params)
		summary := printResultsWithWriter([]ConversionResult{r}, flags.common.quiet, flags.common.verbose, env)
		if summary.FirstErr != nil && ctx.Err() == nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, summary.FirstErr)
		}
	}
	convert()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself; watch its directory instead.
	if err := watcher.Add(filepath.Dir(inputPath)); err != nil {
		return fmt.Errorf("watching %s: %w", inputPath, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	return watchLoop(ctx, watcher.Events, watcher.Errors, inputPath, watchDebounce, convert, env.Stderr)
}

// watchLoop calls onChange once events for target have been quiet for
// debounce. It returns nil when ctx is done or the channels close.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, onChange func(), errOut io.Writer) error {
	target = absPath(target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if absPath(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch error: %v\n", err)
		}
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
