package main

import (
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/stepper"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPayCmd(app *cli) *cobra.Command {
	var (
		fields    []string
		files     []string
		method    string
		quoteOnly bool
	)

	cmd := &cobra.Command{
		Use:   "pay [service-id]",
		Short: "Fill a service form and start a payment",
		Long: `Runs a full payment session for one service: fills the form from
--field and --file, reviews it, uploads the files and prints the hosted
checkout URL. Repeat --field with the same id to tick several checkboxes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.commandContext(cmd)
			serviceID := args[0]

			textValues, textOrder, err := parseAssignments(fields)
			if err != nil {
				return err
			}
			filePaths, fileOrder, err := parseAssignments(files)
			if err != nil {
				return err
			}

			navigator := &consoleNavigator{console: app.console}
			session, err := app.newStepper(navigator)
			if err != nil {
				return err
			}
			defer session.Wait()

			if err := session.Mount(ctx, serviceID, nil); err != nil {
				return userError(err)
			}

			for _, fieldID := range textOrder {
				if err := session.SetInput(fieldID, textValues[fieldID]...); err != nil {
					return userError(err)
				}
			}
			for _, fieldID := range fileOrder {
				paths := filePaths[fieldID]
				file, err := readLocalFile(paths[len(paths)-1])
				if err != nil {
					return err
				}
				if err := session.SelectFile(fieldID, file); err != nil {
					return userError(err)
				}
			}

			if err := session.Submit(); err != nil {
				return userError(err)
			}
			if err := session.Confirm(); err != nil {
				return userError(err)
			}

			if quoteOnly {
				breakdown, err := session.Quote(ctx, method)
				if err != nil {
					return userError(err)
				}
				printBreakdown(cmd, *breakdown)
				return nil
			}

			result, err := session.Pay(ctx, method)
			if err != nil {
				return userError(err)
			}

			printBreakdown(cmd, result.Breakdown)
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction: %s\n", result.TransactionID)
			fmt.Fprintf(cmd.OutOrStdout(), "Checkout:    %s\n", result.CheckoutURL)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "Form value as id=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "File upload as id=path (repeatable)")
	cmd.Flags().StringVarP(&method, "method", "m", "card", "Payment method (card, digital-wallets, dob, qrph)")
	cmd.Flags().BoolVar(&quoteOnly, "quote", false, "Print the breakdown without starting a payment")
	return cmd
}

func readLocalFile(path string) (models.LocalFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.LocalFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return models.LocalFile{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(content).String(),
		Content:     content,
	}, nil
}

func printBreakdown(cmd *cobra.Command, breakdown stepper.Breakdown) {
	out := cmd.OutOrStdout()
	for _, item := range breakdown.Items {
		fmt.Fprintf(out, "  %-32s PHP %12s\n", item.Label, formatMinor(item.AmountMinor))
	}
	fmt.Fprintf(out, "  %-32s PHP %12s\n", "Total", formatMinor(breakdown.TotalAmountMinor))
}

func formatMinor(amountMinor int64) string {
	return decimal.New(amountMinor, -2).StringFixed(2)
}

// userError keeps the underlying error for errors.Is while printing the
// message a citizen would see on the portal.
func userError(err error) error {
	return fmt.Errorf("%s: %w", stepper.UserMessage(err), err)
}
