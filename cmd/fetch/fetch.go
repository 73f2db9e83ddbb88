// Package fetch implements the command that downloads a catalog image.
package fetch

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Command creates the fetch command.
func Command(getApp func() *app.App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download an image through the image cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			cache := a.NewImageCache()
			defer func() { _ = cache.Close() }()

			img, err := cache.Fetch(cmd.Context(), args[0])
			if err != nil {
				a.Logger("cmd").Error("image fetch failed", logger.String("url", args[0]), logger.Error(err))
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, img.Data, 0o644); err != nil {
					return fmt.Errorf("error writing %s: %w", output, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", img.URL, img.MIME, humanize.Bytes(uint64(img.Size())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the image to this file")
	return cmd
}
