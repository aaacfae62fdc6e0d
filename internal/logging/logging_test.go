package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevelRecognizesKnownNames(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestLogCommandSuccessLogsAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogCommand(logger, "SORT_TABLE", "orders", time.Now(), nil)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "command=SORT_TABLE")
	assert.Contains(t, out, "table=orders")
	assert.NotContains(t, out, "error=")
}

func TestLogCommandFailureLogsAtErrorWithDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogCommand(logger, "DROP_COLUMNS", "orders", time.Now(), errors.New("column does not exist"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.True(t, strings.Contains(out, "column does not exist"))
}

func TestNewReturnsLoggerWhenNoLogFile(t *testing.T) {
	logger := New("", "info")
	assert.NotNil(t, logger)
}
