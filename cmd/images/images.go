// Package images implements the command that prints a species' image URLs.
package images

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Command creates the images command.
func Command(getApp func() *app.App) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "images <species>",
		Short: "Print the image URLs of a species",
		Long:  "Print the image URLs of a species. The species may be given by name or by title (spaces replaced with underscores).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			cat, err := a.LoadCatalog()
			if err != nil {
				a.Logger("cmd").Error("failed to load catalog", logger.Error(err))
				return err
			}

			title := strings.ReplaceAll(strings.Join(args, " "), " ", "_")
			s, _, ok := cat.FindSpecies(title)
			if !ok {
				return fmt.Errorf("unknown species %q", title)
			}

			out := cmd.OutOrStdout()
			if _, ok := cat.DetailFor(s); !ok {
				fmt.Fprintf(out, "No images for %s.\n", s.Name)
				return nil
			}

			var urls []string
			if preview {
				urls = cat.PreviewImages(s)
			} else {
				urls = cat.AllImages(s)
			}
			if len(urls) == 0 {
				fmt.Fprintf(out, "No images for %s.\n", s.Name)
				return nil
			}
			for _, u := range urls {
				fmt.Fprintln(out, u)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "Print only the preview strip")
	return cmd
}
