// Package groups implements the command that lists bird groups.
package groups

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Command creates the groups command.
func Command(getApp func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List bird groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp()
			cat, err := a.LoadCatalog()
			if err != nil {
				a.Logger("cmd").Error("failed to load catalog", logger.Error(err))
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tORDER\tFAMILY\tSPECIES")
			for _, g := range cat.Groups() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", g.Category, g.Order.Name, g.Family.Name, g.MemberCount())
			}
			return w.Flush()
		},
	}
}
