package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/epubgen/internal/name"
)

// NewNameCmd creates the name subcommand, which prints the sort form of a
// personal name.
func NewNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "name <words...>",
		Short:        `Print a name in "Last, First" sort form`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortName, err := name.FormatName(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sortName)
			return nil
		},
	}
}
