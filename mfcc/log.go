package mfcc

import "sync"
import "github.com/sirupsen/logrus"

var (
	logMu  sync.RWMutex
	logger = logrus.StandardLogger()
)

// SetLogger replaces the logger used by the package. A nil logger restores
// the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

func log(function string) *logrus.Entry {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger.WithField("function", function)
}
