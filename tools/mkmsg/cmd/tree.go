package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailbuilder/message"
	"github.com/zostay/go-mailbuilder/message/header"
	"github.com/zostay/go-mailbuilder/message/walker"
)

var treeCmd = &cobra.Command{
	Use:   "tree recipe.yaml",
	Short: "Show the MIME structure a recipe builds without writing it",
	Args:  cobra.ExactArgs(1),
	RunE:  RunTree,
}

func RunTree(cmd *cobra.Command, args []string) error {
	b, err := loadBuilder(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var pw walker.PartWalker = func(depth, _ int, part *message.Part) error {
		_, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), describePart(part))
		return err
	}

	return pw.Walk(b.Assemble())
}

// describePart summarizes a part on one line.
func describePart(p *message.Part) string {
	desc := p.MediaType()

	if cd, ok := p.Header.Get(header.FieldContentDisposition).(*header.ContentType); ok {
		desc += " " + cd.Value()
		if fn, ok := cd.Attribute("filename"); ok {
			desc += fmt.Sprintf(" %q", fn)
		}
	}

	switch body := p.Body.(type) {
	case message.Text:
		desc += fmt.Sprintf(" (%d bytes)", len(body))
	case message.Binary:
		desc += fmt.Sprintf(" (%d bytes)", len(body))
	}

	return desc
}
