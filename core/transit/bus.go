package transit

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Bus is an upcoming arrival at a stop.
type Bus struct {
	// ID identifies the line/route pair. See BusID.
	ID string `json:"id"`
	// Line is the public line name (e.g. "C1").
	Line string `json:"line"`
	// Route is the destination or route description.
	Route string `json:"route"`
	// Time is the remaining time until arrival, in minutes.
	Time *float64 `json:"time,omitempty"`
	// Distance is the remaining distance to the stop, in meters.
	Distance *float64 `json:"distance,omitempty"`
	// Extra holds source specific attributes.
	Extra map[string]any `json:"extra,omitempty"`
}

// NewBus builds a Bus with trimmed line and route and a derived id.
func NewBus(line, route string) *Bus {
	line = strings.TrimSpace(line)
	route = strings.TrimSpace(route)
	return &Bus{
		ID:    BusID(line, route),
		Line:  line,
		Route: route,
	}
}

// BusID returns the hex MD5 digest of line followed by route.
//
// The two values are hashed without a separator, so ("A", "BC") and ("AB", "C")
// produce the same id. Ids stay compatible with data already stored by other
// clients of the same sources.
func BusID(line, route string) string {
	h := md5.New()
	h.Write([]byte(line))
	h.Write([]byte(route))
	return hex.EncodeToString(h.Sum(nil))
}
