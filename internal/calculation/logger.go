package calculation

import (
	"fmt"
	"log/slog"
)

// Logger is a minimal logging interface for the engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// SlogLogger adapts a *slog.Logger to the engine Logger interface.
type SlogLogger struct {
	L *slog.Logger
}

func (s SlogLogger) logger() *slog.Logger {
	if s.L == nil {
		return slog.Default()
	}
	return s.L
}

func (s SlogLogger) Debugf(format string, args ...any) {
	s.logger().Debug(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Infof(format string, args ...any) {
	s.logger().Info(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Warnf(format string, args ...any) {
	s.logger().Warn(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Errorf(format string, args ...any) {
	s.logger().Error(fmt.Sprintf(format, args...))
}
