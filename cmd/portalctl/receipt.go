package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newReceiptCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [return-url]",
		Short: "Reconcile a gateway return URL and print the receipt",
		Long: `Takes the URL the payment gateway sent the citizen back to, for example
<portal>/services/business-permit?step=receipt&success=1&transactionId=...
and prints the resulting receipt. Cancel links cancel the transaction first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.commandContext(cmd)

			serviceID, query, err := parseReturnURL(args[0])
			if err != nil {
				return err
			}

			session, err := app.newStepper(&consoleNavigator{console: app.console})
			if err != nil {
				return err
			}
			defer session.Wait()

			if err := session.Mount(ctx, serviceID, nil); err != nil {
				return userError(err)
			}
			if err := session.HandleReturn(ctx, query); err != nil {
				return userError(err)
			}

			receipt := session.Snapshot().Receipt
			if receipt == nil {
				return errors.New("the return URL did not lead to a receipt")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transaction: %s\n", receipt.TransactionID)
			fmt.Fprintf(out, "Service:     %s\n", receipt.ServiceName)
			fmt.Fprintf(out, "Status:      %s\n", receipt.Status)
			fmt.Fprintf(out, "Method:      %s\n", receipt.PaymentMethod)
			for _, item := range receipt.Breakdown {
				fmt.Fprintf(out, "  %-32s %s %12s\n", item.Label, receipt.Currency, formatMinor(item.AmountMinor))
			}
			fmt.Fprintf(out, "  %-32s %s %12s\n", "Total", receipt.Currency, formatMinor(receipt.TotalAmountMinor))
			if receipt.PaidAt != nil {
				fmt.Fprintf(out, "Paid at:     %s\n", receipt.PaidAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// parseReturnURL extracts the service id from a /services/<id> path.
func parseReturnURL(rawURL string) (string, url.Values, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("parse return url: %w", err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "services" && segments[i+1] != "" {
			return segments[i+1], parsed.Query(), nil
		}
	}
	return "", nil, fmt.Errorf("return url %q has no /services/<id> path", rawURL)
}
