package resolver_test

import (
	"context"
	"errors"
	"testing"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busesAt(times ...float64) []*transit.Bus {
	out := make([]*transit.Bus, len(times))
	for i, tm := range times {
		b := transit.NewBus("L", "R")
		b.Time = transit.Float(tm)
		out[i] = b
	}
	return out
}

func TestGetBuses(t *testing.T) {
	t.Run("First success wins and is sorted", func(t *testing.T) {
		log := &callLog{}
		r := resolver.New(resolver.DefaultConfig(), nil)
		require.NoError(t, r.AddBusGetter("broken", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			log.add("broken")
			return nil, errors.New("timeout")
		})))
		require.NoError(t, r.AddBusGetter("api", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			log.add("api")
			return busesAt(30, 5, 15), nil
		})))
		require.NoError(t, r.AddBusGetter("never", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			log.add("never")
			return busesAt(1), nil
		})))

		buses, err := r.GetBuses(context.Background(), 1, transit.SortTime, false)
		require.NoError(t, err)
		require.Len(t, buses, 3)
		assert.Equal(t, 5.0, *buses[0].Time)
		assert.Equal(t, 15.0, *buses[1].Time)
		assert.Equal(t, 30.0, *buses[2].Time)
		assert.Equal(t, []string{"broken", "api"}, log.list())
	})

	t.Run("Empty list is a valid answer", func(t *testing.T) {
		r := resolver.New(resolver.DefaultConfig(), nil)
		require.NoError(t, r.AddBusGetter("api", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			return nil, nil
		})))

		buses, err := r.GetBuses(context.Background(), 1, transit.SortNone, false)
		require.NoError(t, err)
		assert.Empty(t, buses)
		assert.NotNil(t, buses)
	})

	t.Run("All fail", func(t *testing.T) {
		r := resolver.New(resolver.DefaultConfig(), nil)
		require.NoError(t, r.AddBusGetter("api", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			return nil, transit.ErrBusGetterUnavailable
		})))

		_, err := r.GetBuses(context.Background(), 1, transit.SortNone, false)
		assert.ErrorIs(t, err, transit.ErrBusGetterUnavailable)
	})

	t.Run("Stop not exist propagates", func(t *testing.T) {
		log := &callLog{}
		r := resolver.New(resolver.DefaultConfig(), nil)
		require.NoError(t, r.AddBusGetter("api", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			log.add("api")
			return nil, transit.ErrStopNotExist
		})))
		require.NoError(t, r.AddBusGetter("other", resolver.BusGetterFunc(func(ctx context.Context, id int) ([]*transit.Bus, error) {
			log.add("other")
			return nil, nil
		})))

		_, err := r.GetBuses(context.Background(), 1, transit.SortNone, false)
		assert.ErrorIs(t, err, transit.ErrStopNotExist)
		assert.Equal(t, []string{"api"}, log.list())
	})

	t.Run("No getters", func(t *testing.T) {
		r := resolver.New(resolver.DefaultConfig(), nil)
		_, err := r.GetBuses(context.Background(), 1, transit.SortNone, false)
		assert.ErrorIs(t, err, transit.ErrMissingGetters)
	})
}

func TestSaveAndDeleteBuses(t *testing.T) {
	r := resolver.New(resolver.DefaultConfig(), nil)
	saved := map[string]int{}

	assert.ErrorIs(t, r.SaveBuses(context.Background(), 1, busesAt(1), resolver.FanOutDefault), transit.ErrMissingSetters)
	assert.ErrorIs(t, r.DeleteBuses(context.Background(), 1, resolver.FanOutDefault), transit.ErrMissingDeleters)

	for _, name := range []string{"a", "b"} {
		require.NoError(t, r.AddBusSetter(name, resolver.BusSetterFunc(func(ctx context.Context, id int, buses []*transit.Bus) error {
			saved[name] += len(buses)
			return nil
		})))
	}
	require.NoError(t, r.SaveBuses(context.Background(), 1, busesAt(1, 2), resolver.FanOutDefault))
	assert.Equal(t, map[string]int{"a": 2}, saved)

	require.NoError(t, r.SaveBuses(context.Background(), 1, busesAt(1), resolver.FanOutAll))
	assert.Equal(t, map[string]int{"a": 3, "b": 1}, saved)

	require.NoError(t, r.AddBusDeleter("a", resolver.BusDeleterFunc(func(ctx context.Context, id int) error {
		return transit.ErrBusDeleterUnavailable
	})))
	err := r.DeleteBuses(context.Background(), 1, resolver.FanOutDefault)
	assert.ErrorIs(t, err, transit.ErrBusDeleterUnavailable)
}
