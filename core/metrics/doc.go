// Package metrics exposes Prometheus collectors for the resolver.
//
// Collectors are registered on the default registry at package init through promauto and
// served by Handler (mounted on /metrics by the start command).
//
//	transit_resolver_source_calls_total{role, source, outcome}
//	transit_resolver_operation_duration_seconds{operation, outcome}
package metrics
