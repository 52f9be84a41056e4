package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dhamidi/jclass/jar"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls <archive>",
		Short: "List class entries in a jar or zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := jar.List(args[0])
			if err != nil {
				return err
			}

			if !long {
				for _, e := range entries {
					fmt.Println(e.FullName())
				}
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			var total uint64
			for _, e := range entries {
				total += e.UncompressedSize
				fmt.Fprintf(tw, "%d\t  %s\n", e.UncompressedSize, e.FullName())
			}
			fmt.Fprintf(tw, "%d\t  total in %d entries\n", total, len(entries))
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show uncompressed sizes")

	return cmd
}
