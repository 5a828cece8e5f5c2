package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print new identifiers.",
	Long: "`generate` prints identifiers, one per line. Use --slug for the " +
		"short form.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		if count < 0 {
			return fmt.Errorf("count must not be negative, got %d", count)
		}

		slug, _ := cmd.Flags().GetBool("slug")
		g := newGenerator(slug, fingerprintFlag(cmd, c))

		out := cmd.OutOrStdout()
		for i := 0; i < count; i++ {
			fmt.Fprintln(out, g.Generate())
		}

		return nil
	},
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the fingerprint of this process.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		slug, _ := cmd.Flags().GetBool("slug")
		g := newGenerator(slug, c.Fingerprint)

		fmt.Fprintln(cmd.OutOrStdout(), g.Fingerprint())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("count", "n", 1, "Number of identifiers to print")
	generateCmd.Flags().Bool("slug", false, "Print short-form identifiers")
	generateCmd.Flags().String("fingerprint", "",
		"Use this fingerprint instead of the one derived from the process")

	rootCmd.AddCommand(fingerprintCmd)
	fingerprintCmd.Flags().Bool("slug", false,
		"Print the 2-character short-form fingerprint")
}
