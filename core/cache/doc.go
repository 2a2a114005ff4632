// Package cache keeps stops and bus lists in memory for a limited time.
//
// Cache is a generic TTL map. A background sweep runs every half TTL and drops
// expired entries, so an entry lives between ttl and 1.5*ttl unless it is read
// after expiry, in which case it is reported as a miss right away.
//
// Store puts two caches behind the resolver collaborator interfaces. Register it as
// the first offline Stop Getter so hot stops never reach the slower stores, and as a
// Stop Setter so online hits are remembered. Cached values are cloned on the way in
// and on the way out.
package cache
