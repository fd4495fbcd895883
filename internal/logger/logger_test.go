package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, InfoLevel, ParseLevel(" info "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, WarnLevel, ParseLevel("verbose"))
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WarnLevel, Output: &buf})

	l.Info("hidden")
	l.Warn("shown", "file", "application.yml")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "application.yml")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DebugLevel, Output: &buf, JSON: true})

	l.Debug("resolved", "path", "a/b")

	assert.Contains(t, buf.String(), `"path":"a/b"`)
}

func TestDefaultConfig_ReadsEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	assert.Equal(t, DebugLevel, DefaultConfig().Level)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: InfoLevel, Output: &buf})

	assert.Equal(t, l, FromContext(ContextWithLogger(context.Background(), l)))
	assert.NotNil(t, FromContext(context.Background()))
}
