package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	gomessage "github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect message.eml",
	Short: "Parse a message and show its MIME structure",
	Args:  cobra.ExactArgs(1),
	RunE:  RunInspect,
}

func RunInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("unable to open message: %w", err)
	}
	defer func() { _ = f.Close() }()

	return inspect(cmd.OutOrStdout(), f)
}

// inspect prints one line per part of the message read from r, indented by
// depth, much like the tree command does for recipes.
func inspect(out io.Writer, r io.Reader) error {
	e, err := gomessage.Read(r)
	if gomessage.IsUnknownCharset(err) {
		logger.Warn("unknown charset", "error", err)
	} else if err != nil {
		return fmt.Errorf("unable to parse message: %w", err)
	}

	if subject, err := e.Header.Text("Subject"); err == nil && subject != "" {
		if _, err := fmt.Fprintf(out, "Subject: %s\n", subject); err != nil {
			return err
		}
	}

	return e.Walk(func(path []int, part *gomessage.Entity, err error) error {
		if gomessage.IsUnknownCharset(err) {
			logger.Warn("unknown charset", "path", path, "error", err)
		} else if err != nil {
			return err
		}

		mt, _, _ := part.Header.ContentType()
		desc := mt

		if disp, params, err := part.Header.ContentDisposition(); err == nil && disp != "" {
			desc += " " + disp
			if fn, ok := params["filename"]; ok {
				desc += fmt.Sprintf(" %q", fn)
			}
		}

		if !strings.HasPrefix(mt, "multipart/") {
			n, err := io.Copy(io.Discard, part.Body)
			if err != nil {
				logger.Warn("unable to read part body", "path", path, "error", err)
			}
			desc += fmt.Sprintf(" (%d bytes)", n)
		}

		_, err = fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", len(path)), desc)
		return err
	})
}
