package resolver

import (
	"transit-manager/core/metrics"
	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// fanOutCall describes one write fanned out over a registry snapshot.
type fanOutCall[T any] struct {
	op          string
	role        Role
	entries     []entry[T]
	all         bool
	missingKind transit.Kind
	failKind    transit.Kind
	subject     int
	// benign marks error kinds that still count as success.
	benign func(transit.Kind) bool
	call   func(T) error
}

func runFanOut[T any](l *zap.Logger, c fanOutCall[T]) error {
	if len(c.entries) == 0 {
		return transit.NewError(c.missingKind, "no %ss registered", c.role)
	}

	succeeded := 0
	for _, e := range c.entries {
		err := c.call(e.impl)
		metrics.ObserveSourceCall(string(c.role), e.name, outcome(err))

		if err != nil && (c.benign == nil || !c.benign(transit.KindOf(err))) {
			l.Warn("Collaborator failed", zap.String("op", c.op), zap.String("source", e.name), zap.Error(err))
			continue
		}

		succeeded++
		l.Debug("Collaborator succeeded", zap.String("op", c.op), zap.String("source", e.name))
		if !c.all {
			break
		}
	}

	if succeeded == 0 {
		return transit.NewError(c.failKind, "%s %d failed in all %d %ss", c.op, c.subject, len(c.entries), c.role)
	}
	return nil
}
