package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides structured logging for projection and decision
// events so downstream tooling can parse a consistent field set
type AnalysisLogger struct {
	logger *logrus.Logger
}

// NewAnalysisLogger creates a new analysis logger
func NewAnalysisLogger(logger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{logger: logger}
}

// LogProjection logs a computed projection
func (al *AnalysisLogger) LogProjection(player, category string, lambda, posteriorRate, composite, reliability float64) {
	al.logger.WithFields(logrus.Fields{
		"component":      "engine",
		"event_type":     "projection",
		"player":         player,
		"category":       category,
		"lambda":         lambda,
		"posterior_rate": posteriorRate,
		"composite":      composite,
		"reliability":    reliability,
	}).Info("Projection computed")
}

// LogDecision logs a betting decision
func (al *AnalysisLogger) LogDecision(player, category string, line float64, odds int, winProbability, implied, edge, stake float64) {
	al.logger.WithFields(logrus.Fields{
		"component":           "engine",
		"event_type":          "decision",
		"player":              player,
		"category":            category,
		"line":                line,
		"american_odds":       odds,
		"win_probability":     winProbability,
		"implied_probability": implied,
		"edge":                edge,
		"stake":               stake,
	}).Info("Decision computed")
}

// LogProviderFallback logs a context signal degrading to its neutral default
func (al *AnalysisLogger) LogProviderFallback(providerName, signal, reason string) {
	al.logger.WithFields(logrus.Fields{
		"component":  "provider",
		"event_type": "fallback",
		"provider":   providerName,
		"signal":     signal,
		"reason":     reason,
	}).Debug("Context signal defaulted to neutral")
}
