package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"transit-manager/core/reconcile"
	"transit-manager/core/resolver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile stops command
	reconcileStart   int
	reconcileEnd     int
	reconcileWorkers int
	reconcileUpdate  bool
	reconcileFanOut  string
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Refresh the offline stores from the online sources",
}

// stopsReconcileCmd fetches a range of stops online and saves them offline.
var stopsReconcileCmd = &cobra.Command{
	Use:   "stops",
	Short: "Fetch a range of stop ids from the online getters and save them",
	Long: `Fetch every stop id in [--start, --end] from the online Stop Getters and save
the stops found through the Stop Setters.

Examples:
  # Sequential run over the first thousand ids
  reconcile stops --start 1 --end 1000

  # Four concurrent workers, overwriting existing records
  reconcile stops --start 1 --end 10000 --workers 4 --update

Interrupting the command stops claiming new ids and reports what was done.`,
	RunE: runStopsReconcile,
}

func init() {
	reconcileCmd.AddCommand(stopsReconcileCmd)

	stopsReconcileCmd.Flags().IntVar(&reconcileStart, "start", 1, "First stop id (inclusive)")
	stopsReconcileCmd.Flags().IntVar(&reconcileEnd, "end", 1, "Last stop id (inclusive)")
	stopsReconcileCmd.Flags().IntVar(&reconcileWorkers, "workers", 0, "Concurrent workers (0 runs sequentially)")
	stopsReconcileCmd.Flags().BoolVar(&reconcileUpdate, "update", false, "Overwrite stops already stored")
	stopsReconcileCmd.Flags().StringVar(&reconcileFanOut, "fanout", "", "Setter policy: first or all (default from config)")

	RootCmd.AddCommand(reconcileCmd)
}

func runStopsReconcile(cmd *cobra.Command, args []string) error {
	fanOut, err := resolver.ParseFanOut(reconcileFanOut)
	if err != nil {
		return err
	}

	env, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()
	l := env.log

	l.Info("Starting stop reconciliation",
		zap.Int("start", reconcileStart),
		zap.Int("end", reconcileEnd),
		zap.Int("workers", reconcileWorkers),
	)

	run, err := reconcile.UpdateAllFromGetters(cmd.Context(), env.backends.Resolver, reconcile.Options{
		Start:   reconcileStart,
		End:     reconcileEnd,
		Workers: reconcileWorkers,
		Update:  reconcileUpdate,
		FanOut:  fanOut,
	}, l.Named("reconcile"))
	if err != nil {
		return fmt.Errorf("failed to start reconciliation: %w", err)
	}

	// Interrupt stops the run gracefully
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			l.Warn("Interrupted, waiting for in-flight stops...")
			run.Cancel()
		case <-run.Done():
		}
	}()

	waitErr := run.Wait()
	printReconcileReport(l, run)
	return waitErr
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, run *reconcile.Run) {
	s := run.Summary()

	l.Info("Reconciliation report",
		zap.Int("total", s.Total),
		zap.Int("processed", s.Processed),
		zap.Int("saved", s.Saved),
		zap.Int("not_found", s.NotFound),
		zap.Int("errors", s.Errors),
		zap.Int("not_saved", s.NotSaved),
		zap.Bool("cancelled", s.Cancelled),
	)

	if ids := run.ErrorIDs(); len(ids) > 0 {
		l.Warn("Stops whose lookup failed", zap.Ints("stop_ids", sample(ids)), zap.Int("count", len(ids)))
	}
	if ids := run.NotSavedIDs(); len(ids) > 0 {
		l.Warn("Stops found but not saved", zap.Ints("stop_ids", sample(ids)), zap.Int("count", len(ids)))
	}
}

// sample returns at most the first 20 ids.
func sample(ids []int) []int {
	const maxShow = 20
	if len(ids) > maxShow {
		return ids[:maxShow]
	}
	return ids
}
