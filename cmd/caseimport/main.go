package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/modules/litigation/infrastructure/persistence"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/configuration"
)

var (
	filePath string
	lenient  bool
	userID   int64
)

var rootCmd = &cobra.Command{
	Use:   "caseimport",
	Short: "Bulk-import litigation cases from an Excel workbook",
	Long: `Reads an .xlsx workbook and creates one case per data row.
Rows that fail validation are reported and skipped; the rest are committed.`,
	RunE:          runImport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the .xlsx workbook (required)")
	rootCmd.Flags().BoolVar(&lenient, "lenient", false, "coerce invalid enum and date values to defaults instead of rejecting the row")
	rootCmd.Flags().Int64Var(&userID, "user", 0, "id of the user the imported cases are attributed to (required)")
	_ = rootCmd.MarkFlagRequired("file")
	_ = rootCmd.MarkFlagRequired("user")
}

func runImport(cmd *cobra.Command, _ []string) error {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}

	ctx := cmd.Context()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	importer := importing.NewImporter(
		persistence.NewCaseRepository(),
		importing.WithLogger(log),
		importing.WithMaxRows(conf.Import.MaxRows),
	)

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithUser(ctx, userID)

	outcome, err := composables.InTxResult(ctx, func(txCtx context.Context) (*importing.Outcome, error) {
		return importer.ImportBytes(txCtx, data, userID, !lenient), nil
	})
	if err != nil {
		return fmt.Errorf("import transaction: %w", err)
	}

	fmt.Printf("Batch %s: %d imported, %d failed\n", outcome.BatchID, outcome.Success, outcome.Failed)
	for _, col := range outcome.Unrecognized {
		fmt.Printf("Unrecognized column: %s\n", col)
	}
	for _, msg := range outcome.Errors {
		fmt.Println(msg)
	}

	// A batch that imported nothing and reported errors is a failure.
	if outcome.Success == 0 && len(outcome.Errors) > 0 {
		return fmt.Errorf("no rows imported")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
