// Package transit defines the entities handled by the resolver and the closed set of
// outcome kinds every collaborator reports.
//
// # Entities
//
//   - Stop: a physical location identified by an integer id. The name is optional and
//     the coordinates are either both present or both absent.
//   - Bus: an upcoming arrival at a stop, identified by its line and route. The id is
//     derived from those two values unless the source provides its own.
//
// # Outcome kinds
//
// Collaborators (stores, caches, remote APIs) never return ad-hoc errors to callers of
// the resolver. Each failure is classified into a Kind:
//
//   - KindStopNotFound: this source does not have the stop; others may.
//   - KindStopNotExist: an authoritative source confirmed the stop does not exist.
//   - Kind*Unavailable: the source itself failed (I/O, decoding, timeouts).
//   - KindMissing*: no collaborator of the required role is registered.
//
// Use KindOf to classify any error, or errors.Is against the package sentinels:
//
//	if errors.Is(err, transit.ErrStopNotExist) {
//	    // stop was deleted upstream
//	}
//
// # Sorting
//
// SortBuses orders arrivals by time, line, route or a combination, keeping the relative
// order of equal elements.
package transit
