package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

// ErrMismatch is returned by check when the built message differs from the
// expected file.
var ErrMismatch = errors.New("built message does not match expected message")

var checkCmd = &cobra.Command{
	Use:   "check recipe.yaml expected.eml",
	Short: "Build a recipe and compare it to an expected message",
	Long: `Build a recipe and compare it to an expected message. The recipe must
set the date, message ID, and boundaries for the output to be reproducible.`,
	Args: cobra.ExactArgs(2),
	RunE: RunCheck,
}

func RunCheck(cmd *cobra.Command, args []string) error {
	b, err := loadBuilder(args[0])
	if err != nil {
		return err
	}

	expected, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("unable to read expected message: %w", err)
	}

	got := &bytes.Buffer{}
	if _, err := b.WriteTo(got); err != nil {
		return fmt.Errorf("unable to write message: %w", err)
	}

	if bytes.Equal(expected, got.Bytes()) {
		logger.Info("message matches", "expected", args[1])
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(string(expected), got.String(), false))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))

	return ErrMismatch
}
