package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func paymentsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "List payments sent from this console",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(_ context.Context, c *console, _ []string) error {
			payments := c.store.Payments()
			if len(payments) == 0 {
				fmt.Fprintln(c.out, "No payments yet")
				return nil
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCUSTOMER\tINVOICE\tAMOUNT\tSTATUS\tDATE")
			for _, p := range payments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.CustomerName, p.InvoiceTitle, dollars(p.Amount), p.Status, p.Date.Format(time.DateOnly))
			}
			return w.Flush()
		}),
	}
}

func showCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [payment-id]",
		Short: "Show the details of one payment",
		Args:  cobra.ExactArgs(1),
		RunE: withConsole(opts, func(_ context.Context, c *console, args []string) error {
			p, ok := c.store.ViewPayment(args[0])
			if !ok {
				return fmt.Errorf("payment %s not found", args[0])
			}
			defer c.store.CloseView()
			fmt.Fprintf(c.out, "Payment ID:  %s\n", p.ID)
			fmt.Fprintf(c.out, "Customer:    %s\n", p.CustomerName)
			fmt.Fprintf(c.out, "Phone:       %s\n", p.CustomerPhone)
			fmt.Fprintf(c.out, "Customer ID: %s\n", p.CustomerID)
			fmt.Fprintf(c.out, "Invoice:     %s\n", p.InvoiceTitle)
			fmt.Fprintf(c.out, "Reference:   %s\n", p.InvoiceReference)
			fmt.Fprintf(c.out, "Amount:      %s\n", dollars(p.Amount))
			fmt.Fprintf(c.out, "Status:      %s\n", p.Status)
			fmt.Fprintf(c.out, "Created:     %s\n", p.Date.Format(time.RFC3339))
			return nil
		}),
	}
}

func activityCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the most recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(_ context.Context, c *console, _ []string) error {
			acts := c.store.Activities()
			if len(acts) == 0 {
				fmt.Fprintln(c.out, "No activity yet")
				return nil
			}
			now := time.Now()
			for _, a := range acts {
				fmt.Fprintf(c.out, "%-9s %-10s %s\n", "["+string(a.Type)+"]", timeAgo(now, a.Timestamp), a.Message)
			}
			return nil
		}),
	}
}

func statsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise sent payments",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(_ context.Context, c *console, _ []string) error {
			s := c.store.Stats()
			fmt.Fprintf(c.out, "Total payments:  %d\n", s.Total)
			fmt.Fprintf(c.out, "Completed:       %d\n", s.Completed)
			fmt.Fprintf(c.out, "Pending:         %d\n", s.Pending)
			fmt.Fprintf(c.out, "Total amount:    %s\n", dollars(s.TotalAmount))
			return nil
		}),
	}
}

func exportCmd(opts *globalOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export customers, payments and activity as JSON",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(_ context.Context, c *console, _ []string) error {
			b, err := json.MarshalIndent(c.store.Export(), "", "  ")
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = fmt.Fprintln(c.out, string(b))
				return err
			}
			if err := os.WriteFile(outFile, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Exported to %s\n", outFile)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
