package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tsc/cursor"
)

func newSeekCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seek <file> <byte>",
		Short: "Print the nodes from the root down to the one containing a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}
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

			if err := cursor.Seek(cursor.Tree(f.Tree), uint32(offset), props, enc.Encode); err != nil {
				return fmt.Errorf("seek %s: %w", args[0], err)
			}
			return enc.Flush()
		},
	}
}
