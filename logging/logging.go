package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogger returns the process-wide logger. Set LOG_DEBUG=1 for debug
// output.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if os.Getenv("LOG_DEBUG") == "1" {
			logger.SetLevel(logrus.DebugLevel)
		}
	})
	return logger
}
