package cache

import (
	"context"
	"testing"

	"transit-manager/core/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Stops(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Config{StopTTLSeconds: 60, BusTTLSeconds: 60}, nil)
	defer s.Close()

	_, err := s.GetStop(ctx, 1)
	assert.ErrorIs(t, err, transit.ErrStopNotFound)

	in := &transit.Stop{ID: 1, Name: "Plaza", Extra: map[string]any{"zone": "A"}}
	require.NoError(t, s.SaveStop(ctx, in, false))
	in.Extra["zone"] = "changed"

	got, err := s.GetStop(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Extra["zone"])

	require.NoError(t, s.SaveStop(ctx, &transit.Stop{ID: 1, Name: "Ignored"}, false))
	got, _ = s.GetStop(ctx, 1)
	assert.Equal(t, "Plaza", got.Name)

	require.NoError(t, s.SaveStop(ctx, &transit.Stop{ID: 1, Name: "Replaced"}, true))
	got, _ = s.GetStop(ctx, 1)
	assert.Equal(t, "Replaced", got.Name)

	require.NoError(t, s.DeleteStop(ctx, 1))
	_, err = s.GetStop(ctx, 1)
	assert.ErrorIs(t, err, transit.ErrStopNotFound)
}

func TestStore_Buses(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Config{StopTTLSeconds: 60, BusTTLSeconds: 60}, nil)
	defer s.Close()

	_, err := s.GetBuses(ctx, 1)
	assert.ErrorIs(t, err, transit.ErrBusGetterUnavailable)

	buses := []*transit.Bus{transit.NewBus("C1", "Centro")}
	require.NoError(t, s.SaveBuses(ctx, 1, buses))
	buses[0].Line = "mutated"

	got, err := s.GetBuses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C1", got[0].Line)

	require.NoError(t, s.DeleteBuses(ctx, 1))
	_, err = s.GetBuses(ctx, 1)
	assert.Error(t, err)
}
