package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/soulhash/pkg/buildinfo"
	"github.com/matzehuels/soulhash/pkg/hasher"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Soulhash fingerprints source artifacts for build caches",
		Long: `Soulhash computes two identities for every artifact: a byte-exact textual
hash for cache keys and a semantic "protein" hash that groups code with the
same shape, so near-duplicates can be found.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.SetLogLevel(logLevel(c.verbose, c.quiet))
			hasher.SetLogger(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "only log errors")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/soulhash/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the fingerprint cache")

	root.AddCommand(c.hashCommand())
	root.AddCommand(c.dualCommand())
	root.AddCommand(c.arrayCommand())
	root.AddCommand(c.soulsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
