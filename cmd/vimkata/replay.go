package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/vimkata/internal/editor"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Apply keystrokes to a file and print the result",
	Long: `Replay reads the file, applies the keystroke sequence, and prints
the resulting buffer to stdout. With --write the file is updated in
place instead.

Example:
  vimkata replay notes.txt --keys 'ggdd'
  vimkata replay notes.txt --keys-file solution.keys --write`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayKeys     string
	replayKeysFile string
	replayWrite    bool
)

func init() {
	replayCmd.Flags().StringVarP(&replayKeys, "keys", "k", "", "keystroke sequence")
	replayCmd.Flags().StringVar(&replayKeysFile, "keys-file", "", "file holding the keystroke sequence")
	replayCmd.Flags().BoolVarP(&replayWrite, "write", "w", false, "write the result back to the file")

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]
	keystrokes, err := readKeys(replayKeys, replayKeysFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	opts := cfg.Editor
	st := newEngine().ExecuteAll(editor.New(string(data), &opts), keystrokes)
	logger.Debug("replayed %d bytes of keys against %s", len(keystrokes), path)

	if replayWrite {
		if err := os.WriteFile(path, []byte(st.Text()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), st.Text())
	return nil
}
