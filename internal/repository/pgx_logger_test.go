package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPgxLogger_DropsSQLBelowTrace(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{"sql": "SELECT 1", "time": "1ms"})
	assert.NotContains(t, buf.String(), "SELECT 1")
	assert.Contains(t, buf.String(), `"component":"pgx"`)

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{"sql": "SELECT 1"})
	assert.Contains(t, buf.String(), "SELECT 1")

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelNone, "Query", nil)
	assert.Empty(t, buf.String())
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.FatalLevel))
}
