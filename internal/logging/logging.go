// Package logging holds the process-wide zerolog logger used by the library
// packages. It is silent until a logger is installed with Set.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	global atomic.Pointer[zerolog.Logger]

	// components caches the tagged child of the global logger per name.
	components sync.Map
)

type componentLogger struct {
	parent *zerolog.Logger
	l      zerolog.Logger
}

func init() {
	nop := zerolog.Nop()
	global.Store(&nop)
}

// Set installs l as the global logger.
func Set(l zerolog.Logger) {
	global.Store(&l)
}

// L returns the global logger.
func L() *zerolog.Logger {
	return global.Load()
}

// Component returns the global logger tagged with a component field.  The
// child logger is built once per name and rebuilt only after Set.
func Component(name string) *zerolog.Logger {
	parent := L()
	if v, ok := components.Load(name); ok {
		if c := v.(*componentLogger); c.parent == parent {
			return &c.l
		}
	}
	c := &componentLogger{
		parent: parent,
		l:      parent.With().Str("component", name).Logger(),
	}
	components.Store(name, c)
	return &c.l
}

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New builds a logger writing to w at the given level.
func New(w io.Writer, level string, format Format) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), err
	}
	if w == nil {
		w = os.Stderr
	}
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
