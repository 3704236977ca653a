package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fatflowers/texttopay/internal/app/service/reconcile"
)

func sendCmd(opts *globalOptions) *cobra.Command {
	var form reconcile.InvoiceForm
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a text-to-pay invoice to a customer",
		Example: `  texttopay send --title "Consulting" --amount 25.00 --name "Jane Doe" --phone "(212) 555-1234"`,
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(ctx context.Context, c *console, _ []string) error {
			p, err := c.store.SubmitInvoice(ctx, form)
			if err != nil {
				return err
			}
			inv, _ := c.store.CurrentInvoice()
			fmt.Fprintf(c.out, "Payment ID:  %s\n", p.ID)
			fmt.Fprintf(c.out, "Reference:   %s\n", inv.Reference)
			fmt.Fprintf(c.out, "Customer:    %s (%s)\n", p.CustomerName, p.CustomerPhone)
			fmt.Fprintf(c.out, "Amount:      %s\n", dollars(p.Amount))
			fmt.Fprintf(c.out, "Date:        %s\n", inv.Date)
			fmt.Fprintf(c.out, "Status:      %s\n", inv.Status)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Invoice title")
	cmd.Flags().StringVar(&form.Amount, "amount", "", "Amount in dollars, e.g. 25.00")
	cmd.Flags().StringVar(&form.Name, "name", "", "Customer name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Customer phone; US numbers may omit the country code")

	return cmd
}
