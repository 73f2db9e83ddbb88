// Package species implements the command that lists the members of a group.
package species

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Command creates the species command.
func Command(getApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "species <group>",
		Short: "List the species of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			cat, err := a.LoadCatalog()
			if err != nil {
				a.Logger("cmd").Error("failed to load catalog", logger.Error(err))
				return err
			}

			g, ok := cat.Group(args[0])
			if !ok {
				return fmt.Errorf("unknown group %q", args[0])
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLATIN\tSTATUS")
			for _, s := range cat.Species(g) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Latin, s.Tag.DisplayName())
			}
			return w.Flush()
		},
	}
}
