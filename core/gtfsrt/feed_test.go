package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"transit-manager/core/transit"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var base = time.Unix(1_700_000_000, 0)

func stopTime(stopID string, arrival int64) *gtfs.TripUpdate_StopTimeUpdate {
	return &gtfs.TripUpdate_StopTimeUpdate{
		StopId:  proto.String(stopID),
		Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(arrival)},
	}
}

func testFeed(t *testing.T) []byte {
	t.Helper()
	msg := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip:    &gtfs.TripDescriptor{TripId: proto.String("t1"), RouteId: proto.String("C1")},
					Vehicle: &gtfs.VehicleDescriptor{Label: proto.String("Centro")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						stopTime("V10", base.Add(170*time.Second).Unix()),
						stopTime("V11", base.Add(10*time.Minute).Unix()),
					},
				},
			},
			{
				Id: proto.String("e2"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: proto.String("t2"), RouteId: proto.String("4A")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						stopTime("V10", base.Add(-time.Minute).Unix()),
						stopTime("V12", base.Add(-time.Minute).Unix()),
					},
				},
			},
			{
				Id: proto.String("e3"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: proto.String("t3"), RouteId: proto.String("4A")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{
							StopId:    proto.String("V10"),
							Departure: &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(base.Add(5 * time.Minute).Unix())},
						},
					},
				},
			},
		},
	}
	data, err := proto.Marshal(msg)
	require.NoError(t, err)
	return data
}

func newFeed(t *testing.T, hits *atomic.Int32, status int) *Feed {
	t.Helper()
	data := testFeed(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		w.WriteHeader(status)
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	f := New(Config{FeedURL: srv.URL, APIKey: "key", StopIDPrefix: "V", RefreshSeconds: 30}, nil)
	f.now = func() time.Time { return base }
	return f
}

func TestFeed_GetBuses(t *testing.T) {
	var hits atomic.Int32
	f := newFeed(t, &hits, http.StatusOK)

	buses, err := f.GetBuses(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, buses, 2)

	assert.Equal(t, "C1", buses[0].Line)
	assert.Equal(t, "Centro", buses[0].Route)
	assert.Equal(t, 3.0, *buses[0].Time)
	assert.Equal(t, transit.BusID("C1", "Centro"), buses[0].ID)

	assert.Equal(t, "4A", buses[1].Line)
	assert.Equal(t, "t3", buses[1].Route)
	assert.Equal(t, 5.0, *buses[1].Time)
}

func TestFeed_OnlyPastArrivals(t *testing.T) {
	var hits atomic.Int32
	f := newFeed(t, &hits, http.StatusOK)

	buses, err := f.GetBuses(context.Background(), 12)
	require.NoError(t, err)
	assert.Empty(t, buses)
}

func TestFeed_UnknownStop(t *testing.T) {
	var hits atomic.Int32
	f := newFeed(t, &hits, http.StatusOK)

	_, err := f.GetBuses(context.Background(), 99)
	assert.ErrorIs(t, err, transit.ErrBusGetterUnavailable)
}

func TestFeed_ReusesFetch(t *testing.T) {
	var hits atomic.Int32
	f := newFeed(t, &hits, http.StatusOK)
	ctx := context.Background()

	_, err := f.GetBuses(ctx, 10)
	require.NoError(t, err)
	_, err = f.GetBuses(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	f.now = func() time.Time { return base.Add(time.Minute) }
	_, err = f.GetBuses(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFeed_BadStatus(t *testing.T) {
	var hits atomic.Int32
	f := newFeed(t, &hits, http.StatusBadGateway)

	_, err := f.GetBuses(context.Background(), 10)
	assert.ErrorIs(t, err, transit.ErrBusGetterUnavailable)
}
