package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/locvowork/payment_probability/internal/bootstrap"
	"github.com/locvowork/payment_probability/internal/logger"
	"github.com/spf13/cobra"
)

var overrides bootstrap.Overrides

func main() {
	root := &cobra.Command{
		Use:           "payprob",
		Short:         "Score spreadsheet rows with the payment probability model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&overrides.SpreadsheetID, "spreadsheet-id", "", "spreadsheet id, or workbook path for the xlsx backend")
	root.PersistentFlags().StringVar(&overrides.ReadRange, "range", "", "A1 range to read, e.g. Página1!A:G")
	root.PersistentFlags().StringVar(&overrides.ModelPath, "model", "", "path to the model artifact")
	root.PersistentFlags().StringVar(&overrides.SheetBackend, "backend", "", "sheet backend: google or xlsx")

	root.AddCommand(runCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one batch: read, score and write back",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := bootstrap.NewApp(overrides)
			defer app.Close()
			if err := app.Initialize(ctx); err != nil {
				return err
			}

			summary, err := app.RunOnce(ctx)
			if summary != nil {
				out, _ := json.MarshalIndent(summary, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return err
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := bootstrap.NewApp(overrides)
			defer app.Close()
			if err := app.Initialize(ctx); err != nil {
				logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
				return err
			}

			if err := app.Run(); err != nil {
				logger.ErrorLog(ctx, "Application failed: %v", err)
				return err
			}
			return nil
		},
	}
}
