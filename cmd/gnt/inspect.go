package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/esimov/gnt"
	"github.com/spf13/cobra"
)

func inspectCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect [flags] <file.gnt>",
		Short: "List the character records of a GNT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closer, err := gnt.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tOFFSET\tCODE\tCHAR\tSIZE")

			n := 0
			err = p.Each(cmd.Context(), func(rec *gnt.Record) error {
				n++
				if limit <= 0 || n <= limit {
					offset := p.Offset() - int64(rec.Len())
					fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%dx%d\n", n, offset, rec.TagCode, gnt.Character(rec.TagCode), rec.Width, rec.Height)
				}
				return nil
			})
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", n)

			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most this many records (0 prints all)")

	return cmd
}
