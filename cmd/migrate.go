package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"transit-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for migrate command
	migrateFrom   string
	migrateTo     string
	migrateUpdate bool
	migrateDryRun bool
	yesConfirm    bool
)

// migrateCmd copies every stop from one persistent store into another.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy every stop from one store into another",
	Long: `Copy every stop held by the --from store into the --to store.
Stores are named as in the configuration: kv, database, bucket, mongo.

Examples:
  # List what would be copied
  migrate --from database --to mongo --dry-run

  # Copy and overwrite, without the confirmation prompt
  migrate --from database --to mongo --update --yes`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "Origin store")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "Destination store")
	migrateCmd.Flags().BoolVar(&migrateUpdate, "update", false, "Overwrite stops already in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Only list the stops that would be copied")
	migrateCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")

	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrateFrom == migrateTo {
		return fmt.Errorf("origin and destination must differ")
	}

	env, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()
	l := env.log

	origin, err := env.backends.Store(migrateFrom)
	if err != nil {
		return err
	}
	dest, err := env.backends.Store(migrateTo)
	if err != nil {
		return err
	}

	if !migrateDryRun && migrateUpdate && !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	report, err := reconcile.Migrate(cmd.Context(), origin, dest, reconcile.MigrateOptions{
		Update: migrateUpdate,
		DryRun: migrateDryRun,
	}, l.Named("migrate"))
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	l.Info("Migration report",
		zap.String("from", migrateFrom),
		zap.String("to", migrateTo),
		zap.Int("found", len(report.Found)),
		zap.Int("migrated", len(report.Migrated)),
		zap.Int("failed", len(report.Failed)),
		zap.Bool("dry_run", report.DryRun),
	)
	if len(report.Failed) > 0 {
		l.Warn("Stops not migrated", zap.Ints("stop_ids", sample(report.Failed)))
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to overwrite stops in the destination: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
