// ddltop is a terminal control panel for a ddld node and cache service:
// search nodes, act on a selection of them, trigger cache passes and
// follow the service log as it happens.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/wcpan/ddltop/internal/config"
	"github.com/wcpan/ddltop/internal/ui"
	"github.com/wcpan/ddltop/internal/update"
)

type options struct {
	configPath string
	server     string
	logFile    string
	scanPaths  []string
	help       bool
	command    string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, flagSet, err := parseOptions(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.help {
		printHelp(flagSet, os.Stderr)
		return nil
	}

	switch opts.command {
	case "version":
		runVersion(update.Repo)
		return nil
	case "update":
		return runUpdate(update.Repo)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(opts.logFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Printf("ddltop starting, server %s", cfg.Server.BaseURL)

	app := ui.NewApp(cfg)
	defer app.Close()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func parseOptions(args []string, output io.Writer) (options, *pflag.FlagSet, error) {
	var opts options
	flagSet := pflag.NewFlagSet("ddltop", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a YAML or TOML config file")
	flagSet.StringVar(&opts.server, "server", "", "ddld base URL (overrides config)")
	flagSet.StringVar(&opts.logFile, "log-file", defaultLogPath(), "file to write the program log to")
	flagSet.StringArrayVar(&opts.scanPaths, "scan-path", nil, "path sent with a cache scan, repeatable (overrides config)")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return opts, flagSet, err
	}

	rest := flagSet.Args()
	switch {
	case len(rest) == 0:
	case len(rest) == 1 && (rest[0] == "version" || rest[0] == "update"):
		opts.command = rest[0]
	default:
		return opts, flagSet, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return opts, flagSet, nil
}

// loadConfig resolves the config file and environment, lets flags
// override them, and validates only the final result.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.ResolveFile(opts.configPath)
	} else {
		cfg, err = config.Resolve()
	}
	if err != nil {
		return nil, err
	}

	if opts.server != "" {
		cfg.Server.BaseURL = opts.server
	}
	if len(opts.scanPaths) > 0 {
		cfg.Cache.ScanPaths = opts.scanPaths
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func defaultLogPath() string {
	return filepath.Join(os.TempDir(), "ddltop.log")
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprint(w, `ddltop: terminal control panel for ddld.

Usage:
  ddltop [flags]
  ddltop version     print the version and check for a newer release
  ddltop update      replace this binary with the latest release

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
