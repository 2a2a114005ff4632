// Package gtfsrt is a Bus Getter backed by a GTFS Realtime TripUpdates feed.
//
// The feed is fetched over HTTP and decoded with the MobilityData protobuf bindings.
// One fetch is shared by concurrent lookups and reused for RefreshSeconds.
//
// Every StopTimeUpdate whose stop_id equals StopIDPrefix followed by the stop id
// becomes a bus:
//   - line is the trip route_id
//   - route is the vehicle label, falling back to the trip_id
//   - time is the minutes until arrival (departure when arrival is missing), rounded
//
// Arrivals in the past are skipped. A stop the feed never mentions is reported as
// transit.KindBusGetterUnavailable so other Bus Getters get a chance.
package gtfsrt
