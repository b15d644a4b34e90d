// Copyright 2025 The ri18n Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the ri18n completion engine and its debug CLI.

ri18n completes translation keys inside string literals, e.g. the key in a
Ruby I18n.t("errors.messages.blank") call, merged with words scraped from the
buffers open in the editor. An editor plugin starts the binary and talks to it
over msgpack on stdin/stdout.

# Usage

Start the engine for an editor plugin:

	ri18n

Use a custom config and enable debug logging (logs go to stderr):

	ri18n -config ./ri18n.toml -d

Look up keys of a project interactively:

	ri18n -c -root /path/to/rails/app

Print the keys of a locale directory as a JSON array. This output follows the
external helper contract, so the binary can serve as its own helper:

	ri18n -flatten /path/to/rails/app/config/locales

# Configuration

Runtime configuration lives in a TOML file, created with defaults if it
doesn't exist:

	[scopes]
	valid = ["string.quoted.double.ruby", "string.quoted.single.ruby"]

	[words]
	min_size = 3
	max_size = 50
	max_views = 20
	max_per_view = 100
	max_fix_time_ms = 10

	[keys]
	mode = "yaml"
	locale_subdir = "config/locales"
	interpreter = "ruby"
	helper = ""
	timeout_ms = 5000
	max_depth = 3

	[completion]
	fallback_to_words = true
	escape_dollar = true

With mode = "process" keys are produced by running
"<interpreter> <helper> <locale dir>", which must print a JSON array of keys.

# Command Line Flags

	-config string
	    Path to config.toml (default: user config dir)
	-d  Enable debug mode with detailed logging
	-c  Run the interactive key lookup CLI
	-root string
	    Project folder for CLI mode (default ".")
	-limit int
	    Maximum keys printed per lookup in CLI mode
	-flatten string
	    Print the keys of a locale directory as JSON and exit
	-version
	    Show current version
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/ri18n/internal/cli"
	"github.com/bastiangx/ri18n/internal/logger"
	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/bastiangx/ri18n/pkg/server"
	"github.com/bastiangx/ri18n/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "ri18n"
	gh      = "https://github.com/bastiangx/ri18n"
)

// main only manages the flow; the packages hold the logic.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the key lookup CLI -- useful for testing and debugging")
	root := flag.String("root", ".", "Project folder used in CLI mode")
	limit := flag.Int("limit", 24, "Maximum number of keys printed per lookup in CLI mode (0 for all)")
	flattenDir := flag.String("flatten", "", "Print the keys of a locale directory as a JSON array and exit")

	flag.Parse()

	log.SetOutput(os.Stderr)
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg := loadConfig(*configPath)

	if *flattenDir != "" {
		if err := printKeys(ctx, cfg, *flattenDir); err != nil {
			log.Errorf("Failed to flatten %s: %v", *flattenDir, err)
			os.Exit(1)
		}
		return
	}

	flattener, err := keys.NewFlattener(cfg.Keys)
	if err != nil {
		log.Fatalf("Invalid keys config: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		dir := utils.LocaleDir([]string{utils.GetAbsolutePath(*root)}, cfg.Keys.LocaleSubdir)
		cache := keys.NewCache(flattener, logger.New("keys"))
		handler := cli.NewInputHandler(cache, dir, *limit, os.Stdin, os.Stdout, logger.New("cli"))
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	manager := session.NewManager(cfg, flattener, session.WithLogger(logger.New("session")))
	srv := server.NewServer(manager, os.Stdin, os.Stdout, logger.New("server"))

	log.Debug("spawning IPC", "version", Version, "pid", os.Getpid(), "mode", cfg.Keys.Mode)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadConfig resolves the config file with priority:
// 1. -config flag
// 2. [UserConfigDir]/ri18n/config.toml
// 3. builtin defaults
func loadConfig(customPath string) *config.Config {
	var cfg *config.Config
	if customPath != "" {
		loaded, err := config.InitConfig(customPath)
		if err != nil {
			log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", customPath, err)
			loaded = config.DefaultConfig()
		}
		cfg = loaded
	} else {
		cfg = loadDefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		log.Warnf("Invalid config: %v. Using built-in defaults...", err)
		return config.DefaultConfig()
	}
	return cfg
}

func loadDefaultConfig() *config.Config {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v. Using built-in defaults...", err)
		return config.DefaultConfig()
	}
	path, err := resolver.GetConfigPath("config.toml")
	if err != nil {
		log.Warnf("Failed to determine config path: %v. Using built-in defaults...", err)
		return config.DefaultConfig()
	}
	log.Debugf("Using config file: (%s)", path)

	cfg, err := config.InitConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	cfg.Keys.Helper = resolver.ResolveRelativePath(cfg.Keys.Helper)
	return cfg
}

// printKeys writes the keys of dir as a JSON array on stdout.
func printKeys(ctx context.Context, cfg *config.Config, dir string) error {
	flattener := &keys.YAMLFlattener{MaxDepth: cfg.Keys.MaxDepth}
	list, err := flattener.Flatten(ctx, dir)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(list)
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print(fmt.Sprintf("[ %s ] Translation key completion for your editor", AppName))
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
