package database

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger routes badger's printf-style logging into logr. Badger is
// chatty at info level, so info and debug go to V(1) and V(2).
type badgerLogger struct {
	logger logr.Logger
}

func newBadgerLogger(logger logr.Logger) *badgerLogger {
	return &badgerLogger{logger: logger.WithName("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(nil, trim(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Info(trim(format, args), "level", "warning")
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.V(1).Info(trim(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.V(2).Info(trim(format, args))
}

func trim(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
