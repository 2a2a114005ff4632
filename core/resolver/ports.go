package resolver

import (
	"context"

	"transit-manager/core/transit"
)

// StopGetter looks a stop up by id. Implementations report a missing stop with a
// transit.KindStopNotFound error, or transit.KindStopNotExist when the source is
// authoritative. Source failures use transit.KindStopGetterUnavailable.
type StopGetter interface {
	GetStop(ctx context.Context, stopID int) (*transit.Stop, error)
}

// StopSetter persists a stop. When update is false an existing record is kept as is.
type StopSetter interface {
	SaveStop(ctx context.Context, stop *transit.Stop, update bool) error
}

// StopDeleter removes a stop. Deleting an absent stop is not an error.
type StopDeleter interface {
	DeleteStop(ctx context.Context, stopID int) error
}

// BusGetter lists the upcoming buses at a stop.
type BusGetter interface {
	GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error)
}

// BusSetter stores the buses of a stop.
type BusSetter interface {
	SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus) error
}

// BusDeleter removes the stored buses of a stop.
type BusDeleter interface {
	DeleteBuses(ctx context.Context, stopID int) error
}

// StopGetterFunc adapts a function to StopGetter.
type StopGetterFunc func(ctx context.Context, stopID int) (*transit.Stop, error)

func (f StopGetterFunc) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	return f(ctx, stopID)
}

// StopSetterFunc adapts a function to StopSetter.
type StopSetterFunc func(ctx context.Context, stop *transit.Stop, update bool) error

func (f StopSetterFunc) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	return f(ctx, stop, update)
}

// StopDeleterFunc adapts a function to StopDeleter.
type StopDeleterFunc func(ctx context.Context, stopID int) error

func (f StopDeleterFunc) DeleteStop(ctx context.Context, stopID int) error {
	return f(ctx, stopID)
}

// BusGetterFunc adapts a function to BusGetter.
type BusGetterFunc func(ctx context.Context, stopID int) ([]*transit.Bus, error)

func (f BusGetterFunc) GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error) {
	return f(ctx, stopID)
}

// BusSetterFunc adapts a function to BusSetter.
type BusSetterFunc func(ctx context.Context, stopID int, buses []*transit.Bus) error

func (f BusSetterFunc) SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus) error {
	return f(ctx, stopID, buses)
}

// BusDeleterFunc adapts a function to BusDeleter.
type BusDeleterFunc func(ctx context.Context, stopID int) error

func (f BusDeleterFunc) DeleteBuses(ctx context.Context, stopID int) error {
	return f(ctx, stopID)
}
