// Package transitapi is an online source backed by a remote REST transit API.
//
// The API is expected to serve:
//
//	GET {base_url}/stops/{id}        -> {"id": 1, "name": "...", "lat": 0, "lon": 0, "extra": {}}
//	GET {base_url}/stops/{id}/buses  -> {"buses": [{"line": "...", "route": "...", "time": 3, "distance": 1.2}]}
//
// Status mapping:
//   - 200 decodes the payload.
//   - 404 is transit.KindStopNotExist when the API is authoritative, otherwise
//     transit.KindStopNotFound (for buses, transit.KindBusGetterUnavailable).
//   - Anything else, transport failures and undecodable payloads are reported as the
//     matching unavailable kind.
//
// Requests are paced with a token bucket limiter so large reconcile runs do not hammer
// the upstream. The API key, if set, is sent in the X-API-Key header.
package transitapi
