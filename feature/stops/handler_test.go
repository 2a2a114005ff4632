package stops

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *mockResolver) *fiber.App {
	app := fiber.New()
	feature := NewFeature(m, nil)
	_ = feature.Load(app)
	return app
}

func TestHandleFindStop(t *testing.T) {
	m := new(mockResolver)
	m.On("FindStop", mock.Anything, 1, resolver.ScopeOnline, resolver.AutoSaveEnabled).
		Return(&transit.Stop{ID: 1, Name: "Plaza"}, nil)
	m.On("FindStop", mock.Anything, 2, resolver.ScopeAll, resolver.AutoSaveDefault).
		Return(nil, transit.NewError(transit.KindStopNotFound, "missing"))
	m.On("FindStop", mock.Anything, 3, resolver.ScopeAll, resolver.AutoSaveDefault).
		Return(nil, transit.NewError(transit.KindStopNotExist, "gone"))
	m.On("FindStop", mock.Anything, 4, resolver.ScopeAll, resolver.AutoSaveDefault).
		Return(nil, transit.NewError(transit.KindStopGetterUnavailable, "down"))
	m.On("FindStop", mock.Anything, 5, resolver.ScopeAll, resolver.AutoSaveDefault).
		Return(nil, transit.NewError(transit.KindMissingGetters, "none"))

	app := newTestApp(m)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"Found", "/stops/1?scope=online&autosave=true", fiber.StatusOK},
		{"Not found", "/stops/2", fiber.StatusNotFound},
		{"Not exist", "/stops/3", fiber.StatusGone},
		{"Unavailable", "/stops/4", fiber.StatusServiceUnavailable},
		{"Missing getters", "/stops/5", fiber.StatusInternalServerError},
		{"Bad id", "/stops/abc", fiber.StatusBadRequest},
		{"Bad scope", "/stops/1?scope=nowhere", fiber.StatusBadRequest},
		{"Bad autosave", "/stops/1?autosave=maybe", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/stops/1?scope=online&autosave=true", nil))
	require.NoError(t, err)
	var stop transit.Stop
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stop))
	assert.Equal(t, "Plaza", stop.Name)
}

func TestHandleSaveStop(t *testing.T) {
	m := new(mockResolver)
	m.On("SaveStop", mock.Anything, mock.MatchedBy(func(s *transit.Stop) bool {
		return s.ID == 7 && s.Name == "Plaza"
	}), true, resolver.FanOutAll).Return(nil)
	m.On("SaveStop", mock.Anything, mock.MatchedBy(func(s *transit.Stop) bool {
		return s.ID == 8
	}), false, resolver.FanOutDefault).Return(transit.NewError(transit.KindStopSetterUnavailable, "down"))

	app := newTestApp(m)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"Saved", "/stops/7?update=true&fanout=all", `{"name": "Plaza"}`, fiber.StatusNoContent},
		{"Setters down", "/stops/8", `{"name": "Other"}`, fiber.StatusServiceUnavailable},
		{"Partial location", "/stops/7", `{"lat": 42.1}`, fiber.StatusBadRequest},
		{"Id mismatch", "/stops/7", `{"id": 9}`, fiber.StatusBadRequest},
		{"Bad fanout", "/stops/7?fanout=some", `{}`, fiber.StatusBadRequest},
		{"Bad body", "/stops/7", `{`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestStatusFor_RejectedStop(t *testing.T) {
	partial := transit.Wrap(transit.KindStopSetterUnavailable, transit.ErrPartialLocation, "stop 1 rejected")
	assert.Equal(t, fiber.StatusBadRequest, statusFor(partial))

	invalid := transit.Wrap(transit.KindStopSetterUnavailable, transit.ErrInvalidStop, "stop 1 rejected")
	assert.Equal(t, fiber.StatusBadRequest, statusFor(invalid))

	assert.Equal(t, fiber.StatusServiceUnavailable, statusFor(transit.ErrStopSetterUnavailable))
}

func TestHandleDeleteStop(t *testing.T) {
	m := new(mockResolver)
	m.On("DeleteStop", mock.Anything, 7, resolver.FanOutFirstSuccess).Return(nil)
	m.On("DeleteStop", mock.Anything, 8, resolver.FanOutDefault).
		Return(transit.NewError(transit.KindMissingDeleters, "none"))

	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/stops/7?fanout=first", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/stops/8", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestHandleGetBuses(t *testing.T) {
	bus := transit.NewBus("C1", "Centro")
	bus.Time = transit.Float(3)

	m := new(mockResolver)
	m.On("GetBuses", mock.Anything, 1, transit.SortTimeLine, true).Return([]*transit.Bus{bus}, nil)
	m.On("GetBuses", mock.Anything, 2, transit.SortNone, false).
		Return(nil, transit.NewError(transit.KindStopNotExist, "gone"))

	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest("GET", "/stops/1/buses?sort=time_line&reverse=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload BusesResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Buses, 1)
	assert.Equal(t, bus.ID, payload.Buses[0].ID)
	assert.Contains(t, string(body), `"buses"`)

	resp, err = app.Test(httptest.NewRequest("GET", "/stops/2/buses", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/stops/1/buses?sort=weird", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mockResolver), nil)
	assert.Equal(t, "stops", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
