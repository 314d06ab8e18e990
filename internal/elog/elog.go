// Package elog provides the executor's module-scoped logger, following the
// same "construct once, pass a pointer, dereference at the call site" idiom
// rosgo uses for *modular.ModuleLogger.
package elog

import (
	modular "github.com/edwinhayes/logrus-modular"
	"github.com/sirupsen/logrus"
)

var root = modular.NewRootLogger(logrus.New())

// Logger is a named, leveled logger for one executor component.
type Logger struct {
	inner modular.ModuleLogger
}

// New returns a logger scoped to name, e.g. "executor", "action.client".
func New(name string) *Logger {
	return &Logger{inner: root.GetModuleLogger(name)}
}

// SetLevel adjusts the verbosity of every logger sharing this process's root.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

func (l *Logger) Debug(args ...interface{})                 { l.inner.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{})  { l.inner.Debugf(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.inner.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.inner.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.inner.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.inner.Errorf(format, args...) }
