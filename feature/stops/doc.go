// Package stops exposes the resolver over HTTP.
//
// # Routes
//
//	GET    /stops/:id          find a stop (query: scope=all|online|offline, autosave=true|false)
//	PUT    /stops/:id          save a stop (query: update=true|false, fanout=first|all)
//	DELETE /stops/:id          delete a stop (query: fanout=first|all)
//	GET    /stops/:id/buses    list buses (query: sort=time|line|route|..., reverse=true, save=true)
//
// # Status codes
//
// Resolver outcomes map to HTTP statuses:
//   - stop not found in any source: 404
//   - stop confirmed not to exist: 410
//   - every source failed: 503
//   - no collaborator registered for the role: 500
//   - malformed id, query or body: 400
//
// Identical concurrent lookups of the same stop share one resolver call.
package stops
