package log

import "github.com/sirupsen/logrus"

var logger = logrus.New()

func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// SetLevel changes the verbosity of the whole library. DebugLevel makes
// the dispatcher dump every envelope it sends and receives.
func SetLevel(level logrus.Level) {
	logger.SetLevel(level)
}
