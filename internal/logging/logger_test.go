package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		logLevel string
		want     logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"WARN", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			logger := New(tt.logLevel, "production")
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewFormatterByEnvironment(t *testing.T) {
	prod := New("info", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)

	dev := New("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
}
