package primate

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// SetLogger replaces the package logger. Codecs log at Debug level when they
// wrap a child failure; nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	return l
}

func logWrapped(e *Error) {
	l := Logger()
	if ce := l.Check(zap.DebugLevel, "codec child failed"); ce != nil {
		fields := []zap.Field{zap.String("codec", e.Codec), zap.Stringer("op", e.Op)}
		if e.Code == CodeElement {
			fields = append(fields, zap.Int("index", e.Index))
		} else {
			fields = append(fields, zap.String("key", e.Key))
		}
		ce.Write(append(fields, zap.NamedError("cause", e.Cause))...)
	}
}
