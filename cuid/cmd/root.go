// Package cmd provides the command-line interface for cuid.
package cmd

import (
	"github.com/sarchlab/cuid"
	"github.com/sarchlab/cuid/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cuid",
	Short: "Generate collision-resistant identifiers.",
	Long: `cuid generates short, collision-resistant identifiers that sort by ` +
		`creation time, prints the fingerprint of the current process, and ` +
		`stress-tests the generators from many goroutines.`,
	SilenceUsage: true,
}

var envFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "",
		"Load settings from this .env file instead of ./.env")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}

	return config.Load()
}

type generator interface {
	cuid.IDGenerator
	Fingerprint() string
}

// newGenerator builds the generator for the requested variant. An empty
// fingerprint derives one from the current process.
func newGenerator(slug bool, fp string) generator {
	b := cuid.MakeBuilder()
	if fp != "" {
		b = b.WithFingerprint(fp)
	}

	if slug {
		return b.BuildSlug()
	}

	return b.Build()
}

func fingerprintFlag(cmd *cobra.Command, c *config.Config) string {
	if cmd.Flags().Changed("fingerprint") {
		fp, _ := cmd.Flags().GetString("fingerprint")
		return fp
	}

	return c.Fingerprint
}
