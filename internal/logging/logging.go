// Package logging provides the small structured-logging wrapper used
// across this module, adapted from the zap-backed logger the rest of the
// codebase this project grew out of relies on: a name-scoped, leveled
// logger with key/value ("w"-suffixed) methods, rather than a bare
// *zap.Logger threaded everywhere.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured logger interface used throughout this module.
type Logger interface {
	Named(name string) Logger
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

type sugarLogger struct {
	sugar *zap.SugaredLogger
}

// New returns a Logger backed by zap's default production configuration
// (JSON encoder), named for the component that owns it.
func New(name string) Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &sugarLogger{sugar: z.Sugar().Named(name)}
}

// NewTest returns a Logger that writes to the test's own output via
// zaptest, for use inside _test.go files.
func NewTest(tb testing.TB) Logger {
	return &sugarLogger{sugar: zaptest.NewLogger(tb).Sugar()}
}

func (l *sugarLogger) Named(name string) Logger {
	return &sugarLogger{sugar: l.sugar.Named(name)}
}

func (l *sugarLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *sugarLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *sugarLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *sugarLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}
