// Package sources reports the collaborators registered on the resolver.
//
//	GET /sources            every registration grouped by role, in query order
//	GET /sources?role=...   only the given role (stop_getter, bus_setter, ...)
package sources
