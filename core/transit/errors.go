package transit

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a collaborator call.
type Kind int

const (
	// KindNone means no error.
	KindNone Kind = iota
	// KindUnknown is any error that does not carry a Kind.
	KindUnknown
	KindStopNotFound
	KindStopNotExist
	KindStopGetterUnavailable
	KindStopSetterUnavailable
	KindStopDeleterUnavailable
	KindBusGetterUnavailable
	KindBusSetterUnavailable
	KindBusDeleterUnavailable
	KindMissingGetters
	KindMissingSetters
	KindMissingDeleters
)

var kindNames = map[Kind]string{
	KindNone:                   "none",
	KindUnknown:                "unknown",
	KindStopNotFound:           "stop not found",
	KindStopNotExist:           "stop does not exist",
	KindStopGetterUnavailable:  "stop getter unavailable",
	KindStopSetterUnavailable:  "stop setter unavailable",
	KindStopDeleterUnavailable: "stop deleter unavailable",
	KindBusGetterUnavailable:   "bus getter unavailable",
	KindBusSetterUnavailable:   "bus setter unavailable",
	KindBusDeleterUnavailable:  "bus deleter unavailable",
	KindMissingGetters:         "missing getters",
	KindMissingSetters:         "missing setters",
	KindMissingDeleters:        "missing deleters",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsUnavailable reports whether k is one of the source failure kinds.
func (k Kind) IsUnavailable() bool {
	switch k {
	case KindStopGetterUnavailable, KindStopSetterUnavailable, KindStopDeleterUnavailable,
		KindBusGetterUnavailable, KindBusSetterUnavailable, KindBusDeleterUnavailable:
		return true
	}
	return false
}

// IsMissingCollaborators reports whether k signals an empty registry.
func (k Kind) IsMissingCollaborators() bool {
	return k == KindMissingGetters || k == KindMissingSetters || k == KindMissingDeleters
}

// Error is a classified error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Sentinels for errors.Is. They match any *Error with the same Kind.
var (
	ErrStopNotFound           = &Error{Kind: KindStopNotFound}
	ErrStopNotExist           = &Error{Kind: KindStopNotExist}
	ErrStopGetterUnavailable  = &Error{Kind: KindStopGetterUnavailable}
	ErrStopSetterUnavailable  = &Error{Kind: KindStopSetterUnavailable}
	ErrStopDeleterUnavailable = &Error{Kind: KindStopDeleterUnavailable}
	ErrBusGetterUnavailable   = &Error{Kind: KindBusGetterUnavailable}
	ErrBusSetterUnavailable   = &Error{Kind: KindBusSetterUnavailable}
	ErrBusDeleterUnavailable  = &Error{Kind: KindBusDeleterUnavailable}
	ErrMissingGetters         = &Error{Kind: KindMissingGetters}
	ErrMissingSetters         = &Error{Kind: KindMissingSetters}
	ErrMissingDeleters        = &Error{Kind: KindMissingDeleters}
)

// NewError returns an *Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind. It returns nil when err is nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// KindOf returns the Kind carried by err. A nil error is KindNone and an
// unclassified error is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsMissingCollaborators reports whether err signals an empty registry.
func IsMissingCollaborators(err error) bool {
	return KindOf(err).IsMissingCollaborators()
}

// IsUnavailable reports whether err signals a failing source.
func IsUnavailable(err error) bool {
	return KindOf(err).IsUnavailable()
}
