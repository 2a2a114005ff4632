// Package stopkv stores stops and recent bus lists in an embedded BadgerDB.
//
// Keys:
//
//	stop:<id>   JSON encoded record with the stop and its saved/updated timestamps
//	buses:<id>  JSON encoded bus list, written with a TTL
//
// The store is an offline Stop Getter, Setter and Deleter, and a Bus Getter, Setter and
// Deleter. A bus list that expired or was never written is reported as
// transit.KindBusGetterUnavailable so the resolver falls through to the live sources.
//
// Open runs value log garbage collection in the background until Close.
package stopkv
