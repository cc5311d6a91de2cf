package observability

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger: JSON in production, colored text
// everywhere else.
func NewLogger(environment, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
