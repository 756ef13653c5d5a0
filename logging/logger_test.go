package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(buf *bytes.Buffer) *CoreLogger {
	return New(&Config{Level: LogLevelDebug, Format: "json", Output: buf})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LogLevelError, ParseLevel("error"))
	assert.Equal(t, LogLevelInfo, ParseLevel("anything else"))
}

func TestWithComponent_TagsEveryRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf).WithComponent("chat")

	logger.Info("message processed", "session_id", "s1")

	out := buf.String()
	assert.Contains(t, out, `"component":"chat"`)
	assert.Contains(t, out, "message processed")
}

func TestLogGeneratorCall(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	LogGeneratorCall(logger, "gpt-4o-mini", 5*time.Millisecond, nil)
	assert.Contains(t, buf.String(), "generator call completed")
	assert.Contains(t, buf.String(), "gpt-4o-mini")

	buf.Reset()
	LogGeneratorCall(logger, "gpt-4o-mini", 5*time.Millisecond, errors.New("connection refused"))
	assert.Contains(t, buf.String(), "generator call failed, falling back")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), `"level":"WARN"`, "generation failures never escalate past warn")
}

func TestLogSnapshot(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	LogSnapshot(logger, 42, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "snapshot written")
	assert.Contains(t, buf.String(), `"experiences":42`)

	buf.Reset()
	LogSnapshot(logger, 42, time.Millisecond, errors.New("disk full"))
	assert.Contains(t, buf.String(), "snapshot write failed, continuing from memory")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)
	assert.Same(t, logger, OrNoOp(logger))
}
