// Package logging wires logiface's builder API to a zerolog backend.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

type (
	// Logger is the logger type passed around the module.
	Logger = logiface.Logger[*Event]

	// Event adapts a zerolog event to logiface.Event.
	Event struct {
		logiface.UnimplementedEvent
		z   *zerolog.Event
		lvl logiface.Level
		msg string
	}

	writer struct {
		z zerolog.Logger
	}
)

var (
	// compile time assertions

	_ logiface.Event               = (*Event)(nil)
	_ logiface.EventFactory[*Event] = (*writer)(nil)
	_ logiface.Writer[*Event]       = (*writer)(nil)
)

// New returns a Logger writing to z, filtering events below level.
func New(z zerolog.Logger, level logiface.Level) *Logger {
	w := &writer{z: z}
	return logiface.New[*Event](
		logiface.WithEventFactory[*Event](w),
		logiface.WithWriter[*Event](w),
		logiface.WithLevel[*Event](level),
	)
}

// NewWriter returns a Logger emitting JSON lines to w, or human readable
// lines when console is set.
func NewWriter(w io.Writer, level logiface.Level, console bool) *Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return New(zerolog.New(w).With().Timestamp().Logger(), level)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(zerolog.Nop(), logiface.LevelDisabled)
}

// ParseLevel maps a level name to a logiface level. Both syslog keywords
// ("err", "warning") and the common long forms ("error", "warn") are accepted.
func ParseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info", "informational":
		return logiface.LevelInformational, nil
	case "trace":
		return logiface.LevelTrace, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "notice":
		return logiface.LevelNotice, nil
	case "warn", "warning":
		return logiface.LevelWarning, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "crit", "critical":
		return logiface.LevelCritical, nil
	case "off", "none", "disabled":
		return logiface.LevelDisabled, nil
	}
	return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", s)
}

func (x *Event) Level() logiface.Level {
	if x != nil {
		return x.lvl
	}
	return logiface.LevelDisabled
}

func (x *Event) AddField(key string, val any) {
	x.z.Interface(key, val)
}

func (x *Event) AddMessage(msg string) bool {
	x.msg = msg
	return true
}

func (x *Event) AddError(err error) bool {
	x.z.Err(err)
	return true
}

func (x *Event) AddString(key string, val string) bool {
	x.z.Str(key, val)
	return true
}

func (x *Event) AddInt(key string, val int) bool {
	x.z.Int(key, val)
	return true
}

func (x *Event) AddInt64(key string, val int64) bool {
	x.z.Int64(key, val)
	return true
}

func (x *Event) AddFloat64(key string, val float64) bool {
	x.z.Float64(key, val)
	return true
}

func (x *Event) AddBool(key string, val bool) bool {
	x.z.Bool(key, val)
	return true
}

func (x *writer) NewEvent(level logiface.Level) *Event {
	if !level.Enabled() {
		return nil
	}
	r := Event{lvl: level}
	switch level {
	case logiface.LevelTrace:
		r.z = x.z.Trace()
	case logiface.LevelDebug:
		r.z = x.z.Debug()
	case logiface.LevelInformational:
		r.z = x.z.Info()
	case logiface.LevelNotice, logiface.LevelWarning:
		r.z = x.z.Warn()
	case logiface.LevelError:
		r.z = x.z.Error()
	default:
		// zerolog's Fatal and Panic events terminate; keep them at error
		r.z = x.z.WithLevel(zerolog.ErrorLevel)
	}
	return &r
}

func (x *writer) Write(event *Event) error {
	event.z.Msg(event.msg)
	return nil
}
