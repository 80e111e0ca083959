package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/jobs"
	"github.com/alnah/go-md2tex/internal/logging"
	"github.com/alnah/go-md2tex/internal/server"
)

// runServe starts the job service and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}
	if flags.hashToken != "" {
		hash, err := server.HashToken(flags.hashToken)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, hash)
		return nil
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return withConfigHint(err, flags.common.config)
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.build.timeout, envCfg.Timeout, cfg.Compile.Timeout)
	if err != nil {
		return err
	}

	log, err := logging.New(env.Stderr, flags.logLevel)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	store, err := jobs.NewStore(cfg.Server.BuildDir, cfg.Server.MaxJobs)
	if err != nil {
		return err
	}
	if cfg.Server.TokenHash == "" {
		log.Warn("No token hash configured, /api/render is open")
	}

	srv := server.New(server.ConfigData{
		Log:             log,
		ListenAddr:      cfg.Server.Listen,
		Converter:       conv,
		Builder:         resolveBuilder(env, timeout),
		Jobs:            store,
		ResourcesDir:    cfg.Resources.Dir,
		DefaultTemplate: cfg.Template.Name,
		WebDir:          cfg.Server.WebDir,
		TokenHash:       []byte(cfg.Server.TokenHash),
	})
	return srv.Run(ctx)
}

// mergeServeFlags merges serve flags into config. CLI values override config values.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	mergeBuildFlags(&flags.build, cfg)
	mergeDocumentFlags(&flags.document, cfg)

	if flags.listen != "" {
		cfg.Server.Listen = flags.listen
	}
	if flags.buildDir != "" {
		cfg.Server.BuildDir = flags.buildDir
	}
	if flags.maxJobs >= 0 {
		cfg.Server.MaxJobs = flags.maxJobs
	}
	if flags.webDir != "" {
		cfg.Server.WebDir = flags.webDir
	}
	if flags.tokenHash != "" {
		cfg.Server.TokenHash = flags.tokenHash
	}
}
