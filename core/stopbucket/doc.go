// Package stopbucket stores stops as JSON objects in an S3 compatible bucket.
//
// Each stop is one object at "<prefix>/<id>.json". The store is registered as an offline
// Stop Getter and as a Setter and Deleter. A missing object is reported as
// transit.KindStopNotFound; any other storage failure as the matching unavailable kind.
package stopbucket
