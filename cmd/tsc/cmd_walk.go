package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tsc/cursor"
)

func newWalkCmd(a *app) *cobra.Command {
	var limit int
	var at int64

	cmd := &cobra.Command{
		Use:   "walk <file>",
		Short: "Print the properties of every node in depth-first order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.props()
			if err != nil {
				return err
			}
			enc, err := a.encoder(cmd)
			if err != nil {
				return err
			}

			f, err := a.loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer f.Tree.Release()

			var src cursor.TreeOrNode = cursor.Tree(f.Tree)
			if at >= 0 {
				n, err := nodeAt(f, uint32(at))
				if err != nil {
					return fmt.Errorf("find node at %d: %w", at, err)
				}
				defer n.Release()
				src = n
			}

			rows := 0
			err = cursor.Traverse(src, props, func(values []any) error {
				if limit > 0 && rows == limit {
					return cursor.ErrStop
				}
				rows++
				return enc.Encode(values)
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", args[0], err)
			}
			return enc.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many nodes (0: no limit)")
	cmd.Flags().Int64Var(&at, "at", -1, "start at the innermost node containing this byte offset")

	return cmd
}
