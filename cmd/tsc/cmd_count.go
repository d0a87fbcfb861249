package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/tsc/cursor"
	"github.com/dhamidi/tsc/format"
)

var countColumns = []string{"file", "language", "nodes", "named", "errors", "missing"}

var countProps = []cursor.Prop{cursor.PropNamed, cursor.PropError, cursor.PropMissing}

type fileCount struct {
	path, language                string
	nodes, named, errors, missing int
}

func (c *fileCount) row() []any {
	return []any{c.path, c.language, c.nodes, c.named, c.errors, c.missing}
}

func newCountCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "count <file>...",
		Short: "Count the nodes of several files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(outputFormat, cmd.OutOrStdout(), countColumns)
			if err != nil {
				return err
			}

			counts := make([]*fileCount, len(args))
			var mu sync.Mutex
			var result *multierror.Error

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Jobs)
			for i, path := range args {
				g.Go(func() error {
					c, err := a.countFile(ctx, path)
					if err != nil {
						mu.Lock()
						result = multierror.Append(result, err)
						mu.Unlock()
						return nil
					}
					counts[i] = c
					return nil
				})
			}
			g.Wait()

			for _, c := range counts {
				if c == nil {
					continue
				}
				if err := enc.Encode(c.row()); err != nil {
					return err
				}
			}
			if err := enc.Flush(); err != nil {
				return err
			}
			return result.ErrorOrNil()
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "table", "output format for the counts")

	return cmd
}

func (a *app) countFile(ctx context.Context, path string) (*fileCount, error) {
	f, err := a.loadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Tree.Release()

	c := &fileCount{path: path, language: f.Language}
	err = cursor.Traverse(cursor.Tree(f.Tree), countProps, func(values []any) error {
		c.nodes++
		if values[0].(bool) {
			c.named++
		}
		if values[1].(bool) {
			c.errors++
		}
		if values[2].(bool) {
			c.missing++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", path, err)
	}
	return c, nil
}
