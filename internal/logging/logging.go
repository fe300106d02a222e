// Package logging constructs the zap loggers injected through every
// long-lived component, instead of a package-level global (spec.md §9
// "Global singletons").
package logging

import "go.uber.org/zap"

// New builds a production structured logger (JSON encoding, Info level).
func New() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Development builds a human-readable console logger for local runs.
func Development() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests and
// components that don't care to inject one.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
