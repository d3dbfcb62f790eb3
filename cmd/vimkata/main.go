// Package main is the entry point for the vimkata CLI.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/vimkata/internal/config"
	"github.com/dshills/vimkata/internal/engine"
	"github.com/dshills/vimkata/internal/log"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgFile  string
	logLevel string

	cfg    config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vimkata",
	Short: "Replay and score vim keystroke sequences",
	Long: `vimkata replays vim keystroke sequences against text files and
scores them vim-golf style: fewest keystrokes to reach the target wins.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./vimkata.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"minimum log level: debug, info, warn, error")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = "vimkata.toml"
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger = log.New(log.Config{
		Level:  log.ParseLevel(level),
		Prefix: "vimkata",
	})
}

// newEngine builds an engine wired to the process shell, so :r !cmd
// works from the command line.
func newEngine() *engine.Engine {
	return engine.New(engine.Config{
		Log:   logger.WithComponent("engine"),
		Shell: runShell,
	})
}

func runShell(command string) (string, error) {
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		return "", fmt.Errorf("running %q: %w", command, err)
	}
	return string(out), nil
}

// readKeys resolves the --keys / --keys-file pair shared by the replay
// and score commands.
func readKeys(keystrokes, keysFile string) (string, error) {
	switch {
	case keystrokes != "" && keysFile != "":
		return "", fmt.Errorf("use either --keys or --keys-file, not both")
	case keystrokes != "":
		return keystrokes, nil
	case keysFile != "":
		data, err := os.ReadFile(keysFile)
		if err != nil {
			return "", fmt.Errorf("reading keys file: %w", err)
		}
		// Keys files spell returns as <CR>, so line endings are only
		// editor artifacts.
		return strings.TrimRight(string(data), "\r\n"), nil
	default:
		return "", fmt.Errorf("one of --keys or --keys-file is required")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
