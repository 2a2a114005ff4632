// Package bootstrap builds a Resolver and its collaborators from the application
// configuration.
//
// Every enabled backend is opened and registered under a fixed name:
//
//	cache     in-memory stops and buses (offline)
//	kv        embedded BadgerDB (offline, buses too)
//	database  SQL through gorm (offline)
//	bucket    S3 compatible object storage (offline)
//	mongo     MongoDB (offline)
//	api       remote REST transit API (online, buses too)
//	gtfsrt    GTFS Realtime feed (buses only)
//
// Stop Getters and Bus Getters are registered in the order above, so the cache is
// always asked first and the online API last. Setters and Deleters follow the same
// order except for the cache, which comes after the persistent stores: with the
// first-success policy a stop is therefore persisted rather than only cached.
//
// Backends.Close releases everything Build opened.
package bootstrap
