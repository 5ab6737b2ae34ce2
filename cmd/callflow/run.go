package main

import (
	"os"

	"github.com/drelynlikescode26/callflow-assist/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [graph]",
	Short: "Run an interactive call",
	Long: `Starts the call script in the terminal. Type an option number to choose it,
b to go back, r to restart, n <text> to take a note, s for the summary and q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := cli.RunOptions{GraphPath: graphPath(cmd, args)}
		opts.Debug, _ = flags.GetBool("debug")
		opts.RepName, _ = flags.GetString("rep")
		opts.CustomerName, _ = flags.GetString("customer")
		opts.SetupDir, _ = flags.GetString("setup")
		opts.RedisAddr, _ = flags.GetString("redis")
		opts.Profile, _ = flags.GetString("profile")
		opts.Strict, _ = flags.GetBool("strict")
		opts.Plain, _ = flags.GetBool("plain")
		opts.MetricsFile, _ = flags.GetString("metrics-file")
		opts.ResetDelay, _ = flags.GetDuration("reset-delay")

		ctx, stop := cli.WithSignals(cmd.Context())
		defer stop()

		return cli.Execute(ctx, opts, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("rep", "", "Representative name (saved for later sessions)")
	runCmd.Flags().String("customer", "", "Customer name for this call")
	runCmd.Flags().String("setup", "", "Directory holding saved setup (default .callflow/setup)")
	runCmd.Flags().String("redis", "", "Redis address for saved setup, instead of files")
	runCmd.Flags().String("profile", cli.DefaultProfile, "Setup profile name")
	runCmd.Flags().Bool("strict", false, "Fail summaries on values without a label")
	runCmd.Flags().Bool("plain", false, "Disable colors and markdown styling")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	runCmd.Flags().Duration("reset-delay", cli.DefaultResetDelay, "Delay before restarting after an error")

	// Make 'run' the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
