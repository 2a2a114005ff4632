package resolver

import (
	"strings"
	"sync"

	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// Resolver orchestrates lookups and writes across the registered collaborators.
// It is safe for concurrent use; registrations may change while operations run,
// each operation sees the registry as it was when the operation started.
type Resolver struct {
	cfg Config
	log *zap.Logger

	mu           sync.RWMutex
	stopGetters  registry[StopGetter]
	stopSetters  registry[StopSetter]
	stopDeleters registry[StopDeleter]
	busGetters   registry[BusGetter]
	busSetters   registry[BusSetter]
	busDeleters  registry[BusDeleter]
}

// New creates a Resolver with no collaborators.
func New(cfg Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Resolver created",
		zap.Bool("auto_save_stop", cfg.AutoSaveStop),
		zap.Bool("use_all_stop_setters", cfg.UseAllStopSetters),
		zap.Bool("use_all_stop_deleters", cfg.UseAllStopDeleters),
		zap.Bool("use_all_bus_setters", cfg.UseAllBusSetters),
		zap.Bool("use_all_bus_deleters", cfg.UseAllBusDeleters),
	)
	return &Resolver{cfg: cfg, log: logger}
}

// Config returns the default policies.
func (r *Resolver) Config() Config {
	return r.cfg
}

// AddStopGetter registers a Stop Getter at the end of its group.
func (r *Resolver) AddStopGetter(name string, g StopGetter, kind SourceKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopGetters.add(name, kind, g, g == nil)
}

// RemoveStopGetter unregisters a Stop Getter. It reports whether it was registered.
func (r *Resolver) RemoveStopGetter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopGetters.remove(name)
}

// AddStopSetter registers a Stop Setter.
func (r *Resolver) AddStopSetter(name string, s StopSetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopSetters.add(name, Offline, s, s == nil)
}

// RemoveStopSetter unregisters a Stop Setter.
func (r *Resolver) RemoveStopSetter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopSetters.remove(name)
}

// AddStopDeleter registers a Stop Deleter.
func (r *Resolver) AddStopDeleter(name string, d StopDeleter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopDeleters.add(name, Offline, d, d == nil)
}

// RemoveStopDeleter unregisters a Stop Deleter.
func (r *Resolver) RemoveStopDeleter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopDeleters.remove(name)
}

// AddBusGetter registers a Bus Getter.
func (r *Resolver) AddBusGetter(name string, g BusGetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busGetters.add(name, Online, g, g == nil)
}

// RemoveBusGetter unregisters a Bus Getter.
func (r *Resolver) RemoveBusGetter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busGetters.remove(name)
}

// AddBusSetter registers a Bus Setter.
func (r *Resolver) AddBusSetter(name string, s BusSetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busSetters.add(name, Offline, s, s == nil)
}

// RemoveBusSetter unregisters a Bus Setter.
func (r *Resolver) RemoveBusSetter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busSetters.remove(name)
}

// AddBusDeleter registers a Bus Deleter.
func (r *Resolver) AddBusDeleter(name string, d BusDeleter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busDeleters.add(name, Offline, d, d == nil)
}

// RemoveBusDeleter unregisters a Bus Deleter.
func (r *Resolver) RemoveBusDeleter(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busDeleters.remove(name)
}

// Sources lists every registration, grouped by role in registration order.
func (r *Resolver) Sources() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Registration
	out = append(out, r.stopGetters.registrations(RoleStopGetter, true)...)
	out = append(out, r.stopSetters.registrations(RoleStopSetter, false)...)
	out = append(out, r.stopDeleters.registrations(RoleStopDeleter, false)...)
	out = append(out, r.busGetters.registrations(RoleBusGetter, false)...)
	out = append(out, r.busSetters.registrations(RoleBusSetter, false)...)
	out = append(out, r.busDeleters.registrations(RoleBusDeleter, false)...)
	return out
}

// CountStopGetters returns how many Stop Getters the scope selects.
func (r *Resolver) CountStopGetters(scope Scope) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.selectStopGetters(scope))
}

// CountStopSetters returns how many Stop Setters are registered.
func (r *Resolver) CountStopSetters() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stopSetters.entries)
}

// selectStopGetters must be called with r.mu held.
func (r *Resolver) selectStopGetters(scope Scope) []entry[StopGetter] {
	switch scope {
	case ScopeOnline:
		return r.stopGetters.filter(Online)
	case ScopeOffline:
		return r.stopGetters.filter(Offline)
	default:
		return append(r.stopGetters.filter(Offline), r.stopGetters.filter(Online)...)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ReplaceAll(transit.KindOf(err).String(), " ", "_")
}
