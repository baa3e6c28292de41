// Package simlog provides the leveled logger used across the simulator.
// It wraps zap the same way the rest of the ecosystem does: a small
// named-logger factory instead of a global singleton passed by import.
package simlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu   sync.Mutex
	base *zap.Logger
)

// Logger is the leveled interface every package logs through.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// Configure installs the base zap logger. Tests may call this with a
// zap.NewNop() logger to silence output; cmd/gpusim calls it once at
// startup with a production or development config depending on --verbose.
func Configure(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

func getBase() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base, _ = zap.NewDevelopment()
	}
	return base
}

// Named returns a Logger scoped to component, e.g. simlog.Named("simulator").
func Named(component string) Logger {
	return &sugared{s: getBase().Named(component).Sugar()}
}

type sugared struct {
	s *zap.SugaredLogger
}

func (s *sugared) Debugf(template string, args ...interface{}) { s.s.Debugf(template, args...) }
func (s *sugared) Infof(template string, args ...interface{})  { s.s.Infof(template, args...) }
func (s *sugared) Warnf(template string, args ...interface{})  { s.s.Warnf(template, args...) }
func (s *sugared) Errorf(template string, args ...interface{}) { s.s.Errorf(template, args...) }
