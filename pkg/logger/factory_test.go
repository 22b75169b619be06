package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/logger"
)

type ctxKey string

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "notifier")),
	)

	log.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "notifier", record["service"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithLevel(slog.LevelWarn),
		logger.WithOutput(&buf),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNew_ContextValueExtraction(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey("request_id")),
	)

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), "req-42")
	log.InfoContext(ctx, "with context")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-42", record["request_id"])
}

func TestNew_InvalidFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)
	assert.Equal(t, "recipient_id", logger.RecipientID("u1").Key)
	assert.Equal(t, slog.Attr{}, logger.RecipientID(nil))
	assert.Equal(t, "outcome", logger.Outcome("accepted").Key)
	assert.Equal(t, "reason", logger.Reason("quiet_hours").Key)
	assert.Equal(t, "recipient_count", logger.RecipientCount(3).Key)
}
