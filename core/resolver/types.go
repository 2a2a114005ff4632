package resolver

import (
	"fmt"
	"strings"
)

// SourceKind tags a Stop Getter as a local copy or a remote authority.
type SourceKind int

const (
	Offline SourceKind = iota
	Online
)

func (k SourceKind) String() string {
	if k == Online {
		return "online"
	}
	return "offline"
}

// Scope selects which Stop Getters FindStop queries.
type Scope int

const (
	// ScopeAll queries offline getters first, then online ones.
	ScopeAll Scope = iota
	ScopeOnline
	ScopeOffline
)

func (s Scope) String() string {
	switch s {
	case ScopeOnline:
		return "online"
	case ScopeOffline:
		return "offline"
	default:
		return "all"
	}
}

// ParseScope parses "all", "online" or "offline". An empty value is ScopeAll.
func ParseScope(v string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return ScopeAll, nil
	case "online":
		return ScopeOnline, nil
	case "offline":
		return ScopeOffline, nil
	}
	return ScopeAll, fmt.Errorf("unknown scope %q", v)
}

// AutoSave overrides Config.AutoSaveStop for a single FindStop call.
type AutoSave int

const (
	AutoSaveDefault AutoSave = iota
	AutoSaveEnabled
	AutoSaveDisabled
)

// AutoSaveFrom maps an optional boolean to an AutoSave value.
func AutoSaveFrom(v *bool) AutoSave {
	switch {
	case v == nil:
		return AutoSaveDefault
	case *v:
		return AutoSaveEnabled
	default:
		return AutoSaveDisabled
	}
}

// FanOut overrides the configured write policy for a single call.
type FanOut int

const (
	FanOutDefault FanOut = iota
	// FanOutFirstSuccess stops at the first collaborator that succeeds.
	FanOutFirstSuccess
	// FanOutAll calls every collaborator.
	FanOutAll
)

// ParseFanOut parses "first" or "all". An empty value is FanOutDefault.
func ParseFanOut(v string) (FanOut, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "default":
		return FanOutDefault, nil
	case "first":
		return FanOutFirstSuccess, nil
	case "all":
		return FanOutAll, nil
	}
	return FanOutDefault, fmt.Errorf("unknown fan-out policy %q", v)
}

func (f FanOut) resolve(useAll bool) bool {
	switch f {
	case FanOutAll:
		return true
	case FanOutFirstSuccess:
		return false
	default:
		return useAll
	}
}

// Role is the capability a collaborator was registered for.
type Role string

const (
	RoleStopGetter  Role = "stop_getter"
	RoleStopSetter  Role = "stop_setter"
	RoleStopDeleter Role = "stop_deleter"
	RoleBusGetter   Role = "bus_getter"
	RoleBusSetter   Role = "bus_setter"
	RoleBusDeleter  Role = "bus_deleter"
)

// Registration describes one registered collaborator.
type Registration struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	// Kind is only meaningful for Stop Getters.
	Kind     string `json:"kind,omitempty"`
	Position int    `json:"position"`
}
