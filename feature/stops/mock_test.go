package stops

import (
	"context"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"github.com/stretchr/testify/mock"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) FindStop(ctx context.Context, stopID int, scope resolver.Scope, autoSave resolver.AutoSave) (*transit.Stop, error) {
	args := m.Called(ctx, stopID, scope, autoSave)
	stop, _ := args.Get(0).(*transit.Stop)
	return stop, args.Error(1)
}

func (m *mockResolver) SaveStop(ctx context.Context, stop *transit.Stop, update bool, fanOut resolver.FanOut) error {
	return m.Called(ctx, stop, update, fanOut).Error(0)
}

func (m *mockResolver) DeleteStop(ctx context.Context, stopID int, fanOut resolver.FanOut) error {
	return m.Called(ctx, stopID, fanOut).Error(0)
}

func (m *mockResolver) GetBuses(ctx context.Context, stopID int, sortBy transit.SortMethod, reverse bool) ([]*transit.Bus, error) {
	args := m.Called(ctx, stopID, sortBy, reverse)
	buses, _ := args.Get(0).([]*transit.Bus)
	return buses, args.Error(1)
}

func (m *mockResolver) SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus, fanOut resolver.FanOut) error {
	return m.Called(ctx, stopID, buses, fanOut).Error(0)
}
