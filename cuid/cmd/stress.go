package cmd

import (
	"fmt"

	"github.com/sarchlab/cuid/config"
	"github.com/sarchlab/cuid/monitoring"
	"github.com/sarchlab/cuid/stress"
	"github.com/spf13/cobra"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Generate many identifiers concurrently and check them.",
	Long: "`stress` shares one generator between --threads goroutines that " +
		"each generate --per-thread identifiers, then reports duplicates and " +
		"malformed identifiers. It exits with status 1 if it finds any.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		opts, err := stressOptions(cmd, c)
		if err != nil {
			return err
		}

		g := newGenerator(opts.Variant == stress.ShortForm, fingerprintFlag(cmd, c))

		var progress stress.Progress
		if monitor, _ := cmd.Flags().GetBool("monitor"); monitor {
			m := monitoring.NewMonitor()
			if port := intFlag(cmd, "port", c.Monitor.Port); port != 0 {
				m.WithPortNumber(port)
			}
			m.RegisterGenerator(opts.Variant.String(), g)

			bar := m.CreateProgressBar(opts.Variant.String()+" form",
				uint64(opts.Threads*opts.PerThread))
			defer m.CompleteProgressBar(bar)
			progress = bar

			m.StartServer()
			if open, _ := cmd.Flags().GetBool("open"); open {
				if err := m.OpenInBrowser(); err != nil {
					return fmt.Errorf("opening browser: %w", err)
				}
			}
		}

		report := stress.Run(g, opts, progress)
		fmt.Fprint(cmd.OutOrStdout(), report.String())

		recordPath := c.Stress.RecordPath
		if cmd.Flags().Changed("record") {
			recordPath, _ = cmd.Flags().GetString("record")
		}
		if recordPath != "" {
			recorder := stress.NewSQLiteRecorder(recordPath)
			recorder.Record(report)
			if err := recorder.Close(); err != nil {
				return fmt.Errorf("recording report: %w", err)
			}
		}

		if !report.OK() {
			return fmt.Errorf("found %d duplicates and %d malformed identifiers",
				report.Duplicates, report.Malformed)
		}

		return nil
	},
}

func stressOptions(cmd *cobra.Command, c *config.Config) (stress.Options, error) {
	opts := stress.Options{
		Threads:   intFlag(cmd, "threads", c.Stress.Threads),
		PerThread: intFlag(cmd, "per-thread", c.Stress.PerThread),
		Variant:   stress.LongForm,
	}

	if slug, _ := cmd.Flags().GetBool("slug"); slug {
		opts.Variant = stress.ShortForm
	}

	if opts.Threads <= 0 || opts.PerThread <= 0 {
		return opts, fmt.Errorf("threads and per-thread must be positive, "+
			"got %d and %d", opts.Threads, opts.PerThread)
	}

	return opts, nil
}

// intFlag returns the flag value if it was given and def otherwise.
func intFlag(cmd *cobra.Command, name string, def int) int {
	if !cmd.Flags().Changed(name) {
		return def
	}

	v, _ := cmd.Flags().GetInt(name)

	return v
}

func init() {
	rootCmd.AddCommand(stressCmd)
	stressCmd.Flags().Int("threads", 10, "Number of goroutines")
	stressCmd.Flags().Int("per-thread", 50000, "Identifiers per goroutine")
	stressCmd.Flags().Bool("slug", false, "Stress the short form")
	stressCmd.Flags().String("fingerprint", "",
		"Use this fingerprint instead of the one derived from the process")
	stressCmd.Flags().String("record", "",
		"Write the report to a new <record>.sqlite3 database")
	stressCmd.Flags().Bool("monitor", false,
		"Serve progress over HTTP while running")
	stressCmd.Flags().Int("port", 0, "Port of the monitoring server")
	stressCmd.Flags().Bool("open", false,
		"Open the monitoring page in a browser")
}
