package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildCmd = &cobra.Command{
		Use:   "build recipe.yaml",
		Short: "Build the message described by a recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  RunBuild,
	}

	outputPath string
)

func init() {
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the message to this file instead of stdout")
}

func RunBuild(cmd *cobra.Command, args []string) error {
	b, err := loadBuilder(args[0])
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	n, err := b.WriteTo(out)
	if err != nil {
		return fmt.Errorf("unable to write message: %w", err)
	}

	logger.Info("wrote message", "bytes", n, "output", outputPath)
	return nil
}
