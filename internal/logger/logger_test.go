package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	defer Init("test")

	ctx := WithAction(WithRequestID(context.Background(), "req-1"), "delete")
	CtxInfo(ctx, "row removed", "id", 5)

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"action":"delete"`)
	assert.Contains(t, out, `"msg":"row removed"`)
}

func TestTestEnvSilencesInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	defer Init("test")

	Info("hidden")
	Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
