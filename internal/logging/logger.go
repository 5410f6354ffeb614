package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON output outside development so
// log collectors can parse it, human-readable text locally.
func New(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(parseLevel(logLevel))

	if strings.ToLower(environment) == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func parseLevel(logLevel string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
