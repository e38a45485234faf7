package logging

import "testing"

func TestNewTestLoggerDoesNotPanic(t *testing.T) {
	logger := NewTest(t)
	logger.Infow("hello", "key", "value")
	named := logger.Named("child")
	named.Debugw("debug message")
	named.Warnw("warn message")
	named.Errorw("error message")
}
