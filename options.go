package feathertk

import (
	"github.com/feather-lang/feathertk/config"
	"github.com/feather-lang/feathertk/internal/logging"
	"github.com/feather-lang/feathertk/tcl"
)

// Interpreter is the contract an App drives. *tcl.Session implements it
// against the native libraries and *tktest.Interp implements it in memory.
type Interpreter interface {
	// Eval evaluates a command string and returns the interpreter result.
	Eval(command string) (string, error)
	// GetVar reads a global variable, returning "" when it is unset.
	GetVar(name string) string
	// CreateCommand installs fn as a command, replacing any earlier one.
	CreateCommand(name string, fn tcl.CommandFunc) error
	// Close releases the interpreter.
	Close() error
}

var _ Interpreter = (*tcl.Session)(nil)

// Option configures an App.
type Option func(*options)

type options struct {
	log    *logging.Logger
	cfg    *config.Config
	load   *tcl.LoadOptions
	interp Interpreter
}

// WithLogger sets the logger for the App and, when New opens the native
// session, for the session too. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithConfig supplies the configuration. Without it New uses the defaults
// with FEATHERTK_* environment overrides applied.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.cfg = cfg
		}
	}
}

// WithLoadOptions overrides the library locations taken from the
// configuration.
func WithLoadOptions(lo tcl.LoadOptions) Option {
	return func(o *options) {
		o.load = &lo
	}
}

// WithInterpreter makes New use interp instead of loading the native
// libraries.
func WithInterpreter(interp Interpreter) Option {
	return func(o *options) {
		o.interp = interp
	}
}

func loadOptions(cfg *config.Config) tcl.LoadOptions {
	return tcl.LoadOptions{
		Dir: cfg.Library.Dir,
		Tcl: cfg.Library.Tcl,
		Tk:  cfg.Library.Tk,
	}
}
