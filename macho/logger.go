package macho

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the macho package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the macho package's logger.
// This must be called before any parsing; contexts created afterwards
// inherit it unless WithLogger is given.
func SetLogger(l *zap.Logger) {
	logger = l
}
