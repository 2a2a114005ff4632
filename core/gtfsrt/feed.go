package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"transit-manager/core/transit"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/protobuf/proto"
)

// Feed reads buses from a GTFS Realtime feed.
type Feed struct {
	cfg     Config
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
	refresh time.Duration

	group     singleflight.Group
	mu        sync.Mutex
	cached    *gtfs.FeedMessage
	fetchedAt time.Time
}

// New creates a Feed from cfg.
func New(cfg Config, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Feed{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
		refresh: time.Duration(cfg.RefreshSeconds) * time.Second,
	}
}

// GetBuses returns the upcoming arrivals at a stop.
func (f *Feed) GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error) {
	msg, err := f.message(ctx)
	if err != nil {
		return nil, transit.Wrap(transit.KindBusGetterUnavailable, err, "gtfs-rt feed for stop %d", stopID)
	}

	buses, seen := f.busesAt(msg, f.cfg.StopIDPrefix+strconv.Itoa(stopID))
	if !seen {
		return nil, transit.NewError(transit.KindBusGetterUnavailable, "stop %d is not in the gtfs-rt feed", stopID)
	}
	return buses, nil
}

// message returns the cached feed or fetches a fresh one.
func (f *Feed) message(ctx context.Context) (*gtfs.FeedMessage, error) {
	f.mu.Lock()
	if f.cached != nil && f.refresh > 0 && f.now().Sub(f.fetchedAt) < f.refresh {
		msg := f.cached
		f.mu.Unlock()
		return msg, nil
	}
	f.mu.Unlock()

	v, err, _ := f.group.Do("feed", func() (interface{}, error) {
		msg, err := f.fetch(ctx)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.cached = msg
		f.fetchedAt = f.now()
		f.mu.Unlock()
		return msg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gtfs.FeedMessage), nil
}

func (f *Feed) fetch(ctx context.Context) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if f.cfg.APIKey != "" {
		req.Header.Set("x-api-key", f.cfg.APIKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	msg := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	f.logger.Debug("GTFS-RT feed fetched", zap.Int("entities", len(msg.GetEntity())))
	return msg, nil
}

// busesAt maps the stop time updates of feedStopID. seen reports whether the feed
// mentions the stop at all.
func (f *Feed) busesAt(msg *gtfs.FeedMessage, feedStopID string) (buses []*transit.Bus, seen bool) {
	now := f.now()
	buses = []*transit.Bus{}

	for _, entity := range msg.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}
		trip := tripUpdate.GetTrip()

		for _, update := range tripUpdate.GetStopTimeUpdate() {
			if update.GetStopId() != feedStopID {
				continue
			}
			seen = true

			at := update.GetArrival().GetTime()
			if at == 0 {
				at = update.GetDeparture().GetTime()
			}
			if at == 0 {
				continue
			}
			arrival := time.Unix(at, 0)
			if arrival.Before(now) {
				continue
			}

			route := tripUpdate.GetVehicle().GetLabel()
			if route == "" {
				route = trip.GetTripId()
			}
			bus := transit.NewBus(trip.GetRouteId(), route)
			if bus.Line == "" || bus.Route == "" {
				continue
			}
			bus.Time = transit.Float(math.Round(arrival.Sub(now).Minutes()))
			bus.Extra = map[string]any{"trip_id": trip.GetTripId()}
			buses = append(buses, bus)
		}
	}
	return buses, seen
}
