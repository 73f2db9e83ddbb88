package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/cmd/configcmd"
	"github.com/tphakala/birdcatalog/cmd/fetch"
	"github.com/tphakala/birdcatalog/cmd/groups"
	"github.com/tphakala/birdcatalog/cmd/images"
	"github.com/tphakala/birdcatalog/cmd/serve"
	"github.com/tphakala/birdcatalog/cmd/species"
	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/buildinfo"
	"github.com/tphakala/birdcatalog/internal/conf"
)

// globalFlags are bound to the root command's persistent flags.
type globalFlags struct {
	configFile string
	debug      bool
	dataDir    string
}

// RootCommand creates and returns the root command
func RootCommand(bi buildinfo.BuildInfo) *cobra.Command {
	var (
		flags   globalFlags
		current *app.App
	)
	getApp := func() *app.App { return current }

	rootCmd := &cobra.Command{
		Use:           "birdcatalog",
		Short:         "Browse the bird catalog and its photographs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flags.dataDir, "datadir", "", "Directory holding the catalog JSON files (default: bundled data)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "birdcatalog %s\n", bi.GetVersion())
		},
	}

	configCmd := configcmd.Command()

	rootCmd.AddCommand(
		groups.Command(getApp),
		species.Command(getApp),
		images.Command(getApp),
		fetch.Command(getApp),
		serve.Command(getApp),
		configCmd,
		versionCmd,
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// Commands that must work without a valid configuration.
		if cmd == versionCmd || cmd.Parent() == configCmd || cmd == configCmd {
			return nil
		}

		settings, err := conf.Load(flags.configFile)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		if flags.debug {
			settings.Debug = true
		}
		if flags.dataDir != "" {
			settings.Catalog.DataDir = flags.dataDir
		}

		a, err := app.New(settings, bi)
		if err != nil {
			return err
		}
		current = a
		return nil
	}

	// Cobra skips post-run hooks when RunE fails, so the app is closed from
	// the RunE wrapper to flush telemetry on failing commands too.
	closeApp := func() error {
		if current == nil {
			return nil
		}
		a := current
		current = nil
		return a.Close()
	}
	closeAfterRun(rootCmd, closeApp)

	return rootCmd
}

// closeAfterRun wraps the RunE of cmd and its subcommands so closeApp runs
// whether or not the command succeeds.
func closeAfterRun(cmd *cobra.Command, closeApp func() error) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := closeApp(); err == nil {
					err = cerr
				}
			}()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, closeApp)
	}
}
