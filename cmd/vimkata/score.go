package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/vimkata/internal/golf"
)

var scoreCmd = &cobra.Command{
	Use:   "score <start-file> <target-file>",
	Short: "Score a keystroke sequence against a golf target",
	Long: `Score replays the keystroke sequence against the start file and
checks the result against the target file. It prints the vim-golf
keystroke count; on a mismatch it prints a diff and exits nonzero.

Example:
  vimkata score start.txt target.txt --keys-file solution.keys --par 11`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

var (
	scoreKeys     string
	scoreKeysFile string
	scorePar      int
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreKeys, "keys", "k", "", "keystroke sequence")
	scoreCmd.Flags().StringVar(&scoreKeysFile, "keys-file", "", "file holding the keystroke sequence")
	scoreCmd.Flags().IntVar(&scorePar, "par", 0, "reference score to beat")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	keystrokes, err := readKeys(scoreKeys, scoreKeysFile)
	if err != nil {
		return err
	}

	ch, err := loadChallenge(args[0], args[1])
	if err != nil {
		return err
	}
	ch.Par = scorePar

	opts := cfg.Editor
	at := golf.NewPlayer(newEngine(), &opts).Play(ch, keystrokes)

	out := cmd.OutOrStdout()
	if !at.Solved {
		fmt.Fprintf(out, "MISS in %d keystrokes\n", at.Score)
		fmt.Fprintf(out, "diff (target vs output):\n%s\n", at.Diff)
		return fmt.Errorf("output does not match target")
	}

	fmt.Fprintf(out, "SOLVED in %d keystrokes\n", at.Score)
	if ch.Par > 0 {
		if at.UnderPar(ch) {
			fmt.Fprintf(out, "under par (%d)\n", ch.Par)
		} else {
			fmt.Fprintf(out, "over par (%d)\n", ch.Par)
		}
	}
	return nil
}

// loadChallenge builds a challenge from a start and a target file, named
// after the start file.
func loadChallenge(startPath, targetPath string) (golf.Challenge, error) {
	start, err := os.ReadFile(startPath)
	if err != nil {
		return golf.Challenge{}, fmt.Errorf("reading %s: %w", startPath, err)
	}
	target, err := os.ReadFile(targetPath)
	if err != nil {
		return golf.Challenge{}, fmt.Errorf("reading %s: %w", targetPath, err)
	}
	name := filepath.Base(startPath)
	return golf.NewChallenge(name, string(start), string(target)), nil
}
