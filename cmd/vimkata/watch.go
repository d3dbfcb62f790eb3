package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dshills/vimkata/internal/golf"
)

var watchCmd = &cobra.Command{
	Use:   "watch <start-file> <target-file> <keys-file>",
	Short: "Re-score the keys file whenever it changes",
	Long: `Watch monitors the keys file and re-scores it against the challenge
on every write, so a solution can be refined in one editor window while
the score updates in another. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(3),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	startPath, targetPath, keysPath := args[0], args[1], args[2]

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: editors that write via rename replace the
	// file, which drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(keysPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(keysPath), err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	scoreOnce(cmd, startPath, targetPath, keysPath)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(keysPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("keys file event: %s", event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			scoreOnce(cmd, startPath, targetPath, keysPath)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-signals:
			return nil
		}
	}
}

// scoreOnce runs one scoring pass and reports the outcome without
// stopping the watch loop on failure.
func scoreOnce(cmd *cobra.Command, startPath, targetPath, keysPath string) {
	out := cmd.OutOrStdout()

	ch, err := loadChallenge(startPath, targetPath)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	keystrokes, err := readKeys("", keysPath)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	opts := cfg.Editor
	at := golf.NewPlayer(newEngine(), &opts).Play(ch, keystrokes)

	stamp := time.Now().Format("15:04:05")
	if at.Solved {
		fmt.Fprintf(out, "[%s] SOLVED in %d keystrokes\n", stamp, at.Score)
		return
	}
	fmt.Fprintf(out, "[%s] MISS in %d keystrokes\n%s\n", stamp, at.Score, at.Diff)
}
