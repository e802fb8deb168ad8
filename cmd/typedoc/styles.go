package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/typedoc/docstring"
	"github.com/viant/typedoc/inspector/info"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available docstring styles",
		Args:  cobra.NoArgs,
		RunE:  runStyles,
	}
}

func runStyles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	defaultStyle := info.DefaultConfig().Style
	for _, name := range docstring.Default("").Names() {
		marker := " "
		if name == defaultStyle {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	return nil
}
