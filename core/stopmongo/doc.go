// Package stopmongo stores stops as MongoDB documents.
//
// Every stop is one document in the configured collection:
//
//	{ "_id": <stop id>, "name": ..., "lat": ..., "lon": ..., "other": {...},
//	  "saved": <unix>, "updated": <unix> }
//
// Saves are upserts. With update false the write only applies $setOnInsert so an
// existing document is left untouched; with update true the fields are $set and
// "saved" keeps the time of the first insert. Deleting a missing stop is not an
// error.
package stopmongo
