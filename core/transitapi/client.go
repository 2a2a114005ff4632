package transitapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"transit-manager/core/transit"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client reads stops and buses from the remote API.
type Client struct {
	baseURL       string
	apiKey        string
	authoritative bool
	http          *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// New creates a Client from cfg.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		authoritative: cfg.Authoritative,
		http:          &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(limit, burst),
		logger:        logger,
	}
}

type busesResponse struct {
	Buses []busPayload `json:"buses"`
}

type busPayload struct {
	ID       string         `json:"id"`
	Line     string         `json:"line"`
	Route    string         `json:"route"`
	Time     *float64       `json:"time"`
	Distance *float64       `json:"distance"`
	Extra    map[string]any `json:"extra"`
}

// get performs a paced GET and returns the status code and body.
func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// GetStop fetches a stop by id.
func (c *Client) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	status, body, err := c.get(ctx, "/stops/"+strconv.Itoa(stopID))
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "transit api lookup of stop %d", stopID)
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		if c.authoritative {
			return nil, transit.NewError(transit.KindStopNotExist, "stop %d does not exist", stopID)
		}
		return nil, transit.NewError(transit.KindStopNotFound, "stop %d not found in transit api", stopID)
	default:
		return nil, transit.NewError(transit.KindStopGetterUnavailable, "transit api returned status %d for stop %d", status, stopID)
	}

	var stop transit.Stop
	if err := json.Unmarshal(body, &stop); err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "decoding stop %d", stopID)
	}
	if stop.ID == 0 {
		stop.ID = stopID
	}
	if err := stop.Validate(); err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "transit api returned an invalid stop")
	}

	c.logger.Debug("Stop fetched from transit api", zap.Int("stop_id", stopID))
	return &stop, nil
}

// GetBuses fetches the upcoming buses of a stop.
func (c *Client) GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error) {
	status, body, err := c.get(ctx, "/stops/"+strconv.Itoa(stopID)+"/buses")
	if err != nil {
		return nil, transit.Wrap(transit.KindBusGetterUnavailable, err, "transit api lookup of buses of stop %d", stopID)
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		if c.authoritative {
			return nil, transit.NewError(transit.KindStopNotExist, "stop %d does not exist", stopID)
		}
		return nil, transit.NewError(transit.KindBusGetterUnavailable, "transit api has no buses for stop %d", stopID)
	default:
		return nil, transit.NewError(transit.KindBusGetterUnavailable, "transit api returned status %d for buses of stop %d", status, stopID)
	}

	var payload busesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, transit.Wrap(transit.KindBusGetterUnavailable, err, "decoding buses of stop %d", stopID)
	}

	buses := make([]*transit.Bus, 0, len(payload.Buses))
	for _, p := range payload.Buses {
		bus := transit.NewBus(p.Line, p.Route)
		if bus.Line == "" || bus.Route == "" {
			c.logger.Warn("Skipping bus without line or route", zap.Int("stop_id", stopID))
			continue
		}
		if p.ID != "" {
			bus.ID = p.ID
		}
		bus.Time = p.Time
		bus.Distance = p.Distance
		bus.Extra = p.Extra
		buses = append(buses, bus)
	}
	return buses, nil
}
