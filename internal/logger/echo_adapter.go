package logger

import (
	"fmt"
	"io"
	"sync/atomic"

	echolog "github.com/labstack/gommon/log"
)

// EchoAdapter routes echo's internal logging (startup, listener and
// recovered handler errors) into a module Logger.
//
//	e := echo.New()
//	e.Logger = logger.NewEchoAdapter(log.Module("echo"))
type EchoAdapter struct {
	logger Logger
	level  atomic.Uint32
}

// NewEchoAdapter wraps l. A nil l logs through the global logger.
func NewEchoAdapter(l Logger) *EchoAdapter {
	if l == nil {
		l = Global().Module("echo")
	}
	a := &EchoAdapter{logger: l}
	a.level.Store(uint32(echolog.DEBUG))
	return a
}

// Output is unused; the wrapped logger owns the output.
func (a *EchoAdapter) Output() io.Writer { return io.Discard }

// SetOutput is a no-op.
func (a *EchoAdapter) SetOutput(io.Writer) {}

// Prefix is unused; module scoping replaces it.
func (a *EchoAdapter) Prefix() string { return "" }

// SetPrefix is a no-op.
func (a *EchoAdapter) SetPrefix(string) {}

// SetHeader is a no-op.
func (a *EchoAdapter) SetHeader(string) {}

// Level returns the minimum level forwarded to the wrapped logger. The
// wrapped logger still applies its own module level.
func (a *EchoAdapter) Level() echolog.Lvl { return echolog.Lvl(a.level.Load()) }

// SetLevel sets the minimum level forwarded to the wrapped logger.
func (a *EchoAdapter) SetLevel(v echolog.Lvl) { a.level.Store(uint32(v)) }

func (a *EchoAdapter) enabled(v echolog.Lvl) bool {
	lvl := a.Level()
	return lvl != echolog.OFF && v >= lvl
}

func (a *EchoAdapter) log(v echolog.Lvl, msg string, fields ...Field) {
	if !a.enabled(v) {
		return
	}
	switch v {
	case echolog.DEBUG:
		a.logger.Debug(msg, fields...)
	case echolog.WARN:
		a.logger.Warn(msg, fields...)
	case echolog.ERROR:
		a.logger.Error(msg, fields...)
	default:
		a.logger.Info(msg, fields...)
	}
}

func (a *EchoAdapter) Print(i ...any) { a.log(echolog.INFO, fmt.Sprint(i...)) }
func (a *EchoAdapter) Printf(format string, args ...any) {
	a.log(echolog.INFO, fmt.Sprintf(format, args...))
}
func (a *EchoAdapter) Printj(j echolog.JSON) { a.log(echolog.INFO, "echo", Any("data", j)) }

func (a *EchoAdapter) Debug(i ...any) { a.log(echolog.DEBUG, fmt.Sprint(i...)) }
func (a *EchoAdapter) Debugf(format string, args ...any) {
	a.log(echolog.DEBUG, fmt.Sprintf(format, args...))
}
func (a *EchoAdapter) Debugj(j echolog.JSON) { a.log(echolog.DEBUG, "echo", Any("data", j)) }

func (a *EchoAdapter) Info(i ...any) { a.log(echolog.INFO, fmt.Sprint(i...)) }
func (a *EchoAdapter) Infof(format string, args ...any) {
	a.log(echolog.INFO, fmt.Sprintf(format, args...))
}
func (a *EchoAdapter) Infoj(j echolog.JSON) { a.log(echolog.INFO, "echo", Any("data", j)) }

func (a *EchoAdapter) Warn(i ...any) { a.log(echolog.WARN, fmt.Sprint(i...)) }
func (a *EchoAdapter) Warnf(format string, args ...any) {
	a.log(echolog.WARN, fmt.Sprintf(format, args...))
}
func (a *EchoAdapter) Warnj(j echolog.JSON) { a.log(echolog.WARN, "echo", Any("data", j)) }

func (a *EchoAdapter) Error(i ...any) { a.log(echolog.ERROR, fmt.Sprint(i...)) }
func (a *EchoAdapter) Errorf(format string, args ...any) {
	a.log(echolog.ERROR, fmt.Sprintf(format, args...))
}
func (a *EchoAdapter) Errorj(j echolog.JSON) { a.log(echolog.ERROR, "echo", Any("data", j)) }

// Fatal logs at error level and panics so the recover middleware or the
// caller can shut down cleanly instead of exiting the process.
func (a *EchoAdapter) Fatal(i ...any) {
	msg := fmt.Sprint(i...)
	a.logger.Error(msg)
	panic("echo fatal: " + msg)
}

func (a *EchoAdapter) Fatalf(format string, args ...any) { a.Fatal(fmt.Sprintf(format, args...)) }
func (a *EchoAdapter) Fatalj(j echolog.JSON)             { a.Fatal(fmt.Sprintf("%v", j)) }

func (a *EchoAdapter) Panic(i ...any) {
	msg := fmt.Sprint(i...)
	a.logger.Error(msg)
	panic(msg)
}

func (a *EchoAdapter) Panicf(format string, args ...any) { a.Panic(fmt.Sprintf(format, args...)) }
func (a *EchoAdapter) Panicj(j echolog.JSON)             { a.Panic(fmt.Sprintf("%v", j)) }
