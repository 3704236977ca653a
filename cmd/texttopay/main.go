package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "texttopay",
		Short:         "Merchant console for sending text-to-pay invoices and watching their status",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.serverURL, "server", "", "Backend base URL (default client.server_url)")
	rootCmd.PersistentFlags().StringVar(&opts.dataFile, "data-file", "", "Local storage file (default client.data_file)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(sendCmd(opts))
	rootCmd.AddCommand(watchCmd(opts))
	rootCmd.AddCommand(paymentsCmd(opts))
	rootCmd.AddCommand(showCmd(opts))
	rootCmd.AddCommand(activityCmd(opts))
	rootCmd.AddCommand(statsCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))
	rootCmd.AddCommand(clearCmd(opts))
	rootCmd.AddCommand(healthCmd(opts))
	return rootCmd
}
