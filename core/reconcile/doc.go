// Package reconcile refreshes local stop copies from the online sources.
//
// # Update from getters
//
// UpdateAllFromGetters walks an inclusive range of stop ids. For every id it asks the
// online Stop Getters for the stop (without auto-save) and writes the result through the
// Stop Setters. Lookups that fail for reasons other than "not found" are collected in
// ErrorIDs; writes that fail are collected in NotSavedIDs.
//
// With Workers set to 0 the range is processed in order on the calling goroutine and the
// returned Run is complete. With Workers > 0 the call returns immediately; workers share a
// cursor that hands out each id exactly once, and the Run is used to follow, cancel or
// wait for the batch:
//
//	run, err := reconcile.UpdateAllFromGetters(ctx, r, reconcile.Options{
//	    Start: 1, End: 9000, Workers: 8, Update: true,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer run.Cancel()
//	_ = run.Wait()
//	fmt.Println(run.ErrorIDs(), run.NotSavedIDs())
//
// Cancellation is cooperative: workers stop claiming ids, but a lookup or a write already
// in progress runs to completion.
//
// # Migration
//
// Migrate copies every stop listed by one store into another, for example when
// moving from SQLite to MongoDB. A dry run only reports what would be copied.
package reconcile
