package reconcile

import (
	"context"
	"errors"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"
)

// ErrInvalidRange is returned for a negative Start, an End lower than Start or equal
// to math.MaxInt, or a negative Workers.
var ErrInvalidRange = errors.New("invalid reconcile range")

// Resolver is the subset of *resolver.Resolver used by reconciliation.
type Resolver interface {
	FindStop(ctx context.Context, stopID int, scope resolver.Scope, autoSave resolver.AutoSave) (*transit.Stop, error)
	SaveStop(ctx context.Context, stop *transit.Stop, update bool, fanOut resolver.FanOut) error
	CountStopGetters(scope resolver.Scope) int
	CountStopSetters() int
}

// Options configures UpdateAllFromGetters.
type Options struct {
	// Start is the first stop id, inclusive.
	Start int
	// End is the last stop id, inclusive.
	End int
	// Workers is the number of concurrent workers. Zero runs synchronously.
	Workers int
	// Update overwrites stops that already exist in the setters.
	Update bool
	// FanOut overrides the setter policy of the resolver.
	FanOut resolver.FanOut
}

// Summary counts the outcome of a batch.
type Summary struct {
	Total     int  `json:"total"`
	Processed int  `json:"processed"`
	Saved     int  `json:"saved"`
	NotFound  int  `json:"not_found"`
	Errors    int  `json:"errors"`
	NotSaved  int  `json:"not_saved"`
	Cancelled bool `json:"cancelled"`
}

// Lister enumerates the stop ids held by a store.
type Lister interface {
	ListStopIDs(ctx context.Context) ([]int, error)
}

// Source is a store that can be migrated from.
type Source interface {
	Lister
	resolver.StopGetter
}

// MigrateOptions configures Migrate.
type MigrateOptions struct {
	// Update overwrites stops already present in the destination.
	Update bool
	// DryRun lists the stops without writing them.
	DryRun bool
}

// MigrationReport lists the ids seen during a migration.
type MigrationReport struct {
	Found    []int `json:"found"`
	Migrated []int `json:"migrated"`
	Failed   []int `json:"failed"`
	DryRun   bool  `json:"dry_run"`
}
