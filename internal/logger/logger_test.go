package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevelParsing(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestAnalysisLoggerProjection(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogProjection("Nikola Jokic", "PTS", 27.4, 0.81, 1.06, 1.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Nikola Jokic", logEntry["player"])
	assert.Equal(t, "engine", logEntry["component"])
	assert.Equal(t, "projection", logEntry["event_type"])
	assert.Equal(t, 27.4, logEntry["lambda"])
}

func TestAnalysisLoggerDecision(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogDecision("Nikola Jokic", "PTS", 26.5, -110, 0.62, 0.5238, 0.0962, 84.20)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "decision", logEntry["event_type"])
	assert.Equal(t, 26.5, logEntry["line"])
	assert.Equal(t, 84.20, logEntry["stake"])
}

func TestAnalysisLoggerProviderFallback(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogProviderFallback("referee_assignments", "referee_multiplier", "assignment not published")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "fallback", logEntry["event_type"])
	assert.Equal(t, "referee_assignments", logEntry["provider"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogProjection("Test", "REB", 12.1, 0.4, 0.98, 0.75)

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}
