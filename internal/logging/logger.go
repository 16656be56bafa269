// Package logging holds the zap logger shared by every featx package.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the current logger. It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger installs l as the package-wide logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}
