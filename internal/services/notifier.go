package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/risk29/riskboard/internal/analytics"
	"github.com/risk29/riskboard/internal/models"
	"github.com/sirupsen/logrus"
)

// AnomalyNotifier pushes high-severity anomaly alerts to a Telegram chat.
// With no bot token configured it is a no-op.
type AnomalyNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *logrus.Logger
}

// NewAnomalyNotifier creates a notifier. An empty token disables it.
func NewAnomalyNotifier(token, chatID string, logger *logrus.Logger) (*AnomalyNotifier, error) {
	notifier := &AnomalyNotifier{logger: logger}
	if token == "" {
		logger.Info("Telegram bot token not configured, anomaly alerts disabled")
		return notifier, nil
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat ID: %w", err)
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	notifier.bot = b
	notifier.chatID = id
	return notifier, nil
}

// Enabled reports whether alerts will actually be sent.
func (n *AnomalyNotifier) Enabled() bool {
	return n.bot != nil
}

// NotifyAnomalies sends one alert covering the high-severity anomalies in
// the list. Lower severities are not alert-worthy.
func (n *AnomalyNotifier) NotifyAnomalies(ctx context.Context, method string, anomalies []models.DatedAnomaly) error {
	if n.bot == nil {
		return nil
	}

	var high []models.DatedAnomaly
	for _, a := range anomalies {
		if a.Severity == analytics.SeverityHigh {
			high = append(high, a)
		}
	}
	if len(high) == 0 {
		return nil
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      formatAnomalyAlert(method, high),
		ParseMode: tgmodels.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("failed to send anomaly alert: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"method": method,
		"count":  len(high),
	}).Info("Sent anomaly alert")
	return nil
}

func formatAnomalyAlert(method string, anomalies []models.DatedAnomaly) string {
	var sb strings.Builder
	sb.WriteString("*Risk score anomaly detected*\n")
	sb.WriteString(fmt.Sprintf("Method: `%s`\n\n", method))
	for _, a := range anomalies {
		sb.WriteString(fmt.Sprintf(
			"%s: observed %.1f, expected %.1f (z=%.1f)\n",
			a.Date, a.ObservedValue, a.ExpectedValue, a.ZScore,
		))
	}
	return sb.String()
}
