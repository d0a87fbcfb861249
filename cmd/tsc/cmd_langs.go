package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tsc/cursor"
	"github.com/dhamidi/tsc/format"
	"github.com/dhamidi/tsc/sitter"
	"github.com/dhamidi/tsc/workspace"
)

func newLangsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the languages tsc can parse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(a.cfg.Format, cmd.OutOrStdout(), []string{"language", "extensions", "fields"})
			if err != nil {
				return err
			}
			if err := enc.Encode([]any{workspace.LanguageSexp, ".sexp", nil}); err != nil {
				return err
			}
			for _, l := range sitter.Languages() {
				if err := enc.Encode([]any{l.Name(), strings.Join(l.Extensions(), ","), l.FieldCount()}); err != nil {
					return err
				}
			}
			return enc.Flush()
		},
	}
}

func newPropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "props",
		Short: "List the node properties walk and seek can print",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range cursor.PropNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
