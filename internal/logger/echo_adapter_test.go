package logger

import (
	"bytes"
	"testing"

	"github.com/labstack/echo/v4"
	echolog "github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

var _ echo.Logger = (*EchoAdapter)(nil)

func TestEchoAdapter_RoutesLevels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	a := NewEchoAdapter(NewSlogLogger(buf, LogLevelDebug).Module("echo"))

	a.Debugf("route %s", "/api/v1/groups")
	a.Warn("slow client")
	a.Errorj(echolog.JSON{"status": 500})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "route /api/v1/groups")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "slow client")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "module=echo")
}

func TestEchoAdapter_SetLevelFilters(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	a := NewEchoAdapter(NewSlogLogger(buf, LogLevelDebug))
	a.SetLevel(echolog.WARN)

	assert.Equal(t, echolog.WARN, a.Level())
	a.Info("dropped")
	a.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	a.SetLevel(echolog.OFF)
	a.Error("silenced")
	assert.NotContains(t, buf.String(), "silenced")
}

func TestEchoAdapter_PanicLogsFirst(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	a := NewEchoAdapter(NewSlogLogger(buf, LogLevelInfo))

	assert.PanicsWithValue(t, "echo fatal: listener gone", func() { a.Fatal("listener gone") })
	assert.Contains(t, buf.String(), "listener gone")
}
