// Package resolver implements the multi-source lookup engine for stops and buses.
//
// A Resolver holds six ordered registries, one per collaborator role:
//
//   - Stop Getters, each tagged online (remote, authoritative) or offline (local copy)
//   - Stop Setters and Stop Deleters
//   - Bus Getters, Bus Setters and Bus Deleters
//
// Collaborators are registered under a unique name and queried in registration order.
//
// # Finding stops
//
// FindStop walks the offline getters first and the online ones after (ScopeAll), or only
// one group. Each outcome is classified with transit.KindOf:
//
//   - success: the stop is returned. When it came from an online getter and auto-save is
//     enabled, it is also written through SaveStop; save failures are logged and dropped.
//   - KindStopNotFound: try the next getter.
//   - KindStopNotExist: stop immediately and return it.
//   - anything else: the source is considered broken; try the next getter.
//
// When every getter was tried, the result is KindStopGetterUnavailable if any source
// failed, KindStopNotFound otherwise.
//
// # Writing and deleting
//
// SaveStop, DeleteStop, SaveBuses and DeleteBuses fan out to the registered collaborators
// either until the first success or to all of them (FanOut). The defaults come from
// Config and mirror the historical behavior: save to the first setter that accepts,
// delete from every deleter.
//
// # Usage
//
//	r := resolver.New(resolver.DefaultConfig(), logger)
//	_ = r.AddStopGetter("sqlite", store, resolver.Offline)
//	_ = r.AddStopGetter("api", client, resolver.Online)
//	_ = r.AddStopSetter("sqlite", store)
//
//	stop, err := r.FindStop(ctx, 5800, resolver.ScopeAll, resolver.AutoSaveEnabled)
package resolver
