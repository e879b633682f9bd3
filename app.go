package feathertk

import (
	"fmt"
	"os"
	"strconv"

	"github.com/feather-lang/feathertk/config"
	"github.com/feather-lang/feathertk/internal/logging"
	"github.com/feather-lang/feathertk/script"
	"github.com/feather-lang/feathertk/tcl"
)

// App owns one interpreter session with Tk loaded, the root window "." and
// every widget created through it. It must be used from a single goroutine.
type App struct {
	interp  Interpreter
	log     *logging.Logger
	cfg     *config.Config
	handles int
	closed  bool
}

// New loads the Tcl and Tk libraries, opens a session on them and returns
// an App bound to it. Load and initialisation failures are fatal and wrap
// *tcl.LoadError, *tcl.InitError or tcl.ErrUnsupported.
func New(opts ...Option) (*App, error) {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		o.cfg = config.Default()
		o.cfg.ApplyEnv(os.LookupEnv)
	}

	if o.interp == nil {
		lo := loadOptions(o.cfg)
		if o.load != nil {
			lo = *o.load
		}
		lib, err := tcl.Load(lo)
		if err != nil {
			return nil, fmt.Errorf("feathertk: load libraries: %w", err)
		}
		s, err := tcl.Open(lib, tcl.WithLogger(o.log))
		if err != nil {
			return nil, fmt.Errorf("feathertk: open session: %w", err)
		}
		o.interp = s
	}
	return newApp(o), nil
}

// NewWithInterpreter returns an App bound to interp. The App takes
// ownership: Close closes interp.
func NewWithInterpreter(interp Interpreter, opts ...Option) *App {
	o := options{log: logging.Discard(), cfg: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.interp = interp
	return newApp(o)
}

func newApp(o options) *App {
	a := &App{
		interp: o.interp,
		log:    o.log,
		cfg:    o.cfg,
	}
	if _, err := a.interp.Eval("package require Tk"); err != nil {
		a.log.Warning().Err(err).Log("error initializing Tk")
	}
	return a
}

// eval builds a command from words, evaluates it, and logs a failure under
// op before returning it unchanged.
func (a *App) eval(op string, words ...any) (string, error) {
	cmd := script.Command(words...)
	out, err := a.interp.Eval(cmd)
	if err != nil {
		a.log.Err().
			Str("op", op).
			Str("command", cmd).
			Err(err).
			Log("tk command failed")
		return "", err
	}
	return out, nil
}

// nextHandle returns a fresh widget path name.
func (a *App) nextHandle() string {
	a.handles++
	return ".w" + strconv.Itoa(a.handles)
}

// Eval evaluates a raw command string. Unlike the widget methods nothing is
// quoted.
func (a *App) Eval(command string) (string, error) {
	return a.interp.Eval(command)
}

// Command installs fn as the Tcl command name. fn receives the command's
// arguments, without the name, and its result becomes the command result.
// A command already registered under name is replaced.
func (a *App) Command(name string, fn tcl.CommandFunc) error {
	err := a.interp.CreateCommand(name, fn)
	if err != nil {
		a.log.Err().
			Str("op", "create command").
			Str("name", name).
			Err(err).
			Log("tk command failed")
	}
	return err
}

// Title sets the root window title.
func (a *App) Title(title string) error {
	_, err := a.eval("set title", "wm", "title", ".", title)
	return err
}

// Geometry sets the root window geometry, e.g. "300x200" or "300x200+10+10".
func (a *App) Geometry(geometry string) error {
	_, err := a.eval("set geometry", "wm", "geometry", ".", geometry)
	return err
}

// SetIcon loads path as a photo image and makes it the default icon of
// every toplevel window. It accepts the same formats as CreateImage.
func (a *App) SetIcon(path string) error {
	option, value, err := a.photoSource(path)
	if err != nil {
		return err
	}
	_, err = a.eval("set icon", "wm", "iconphoto", ".", "-default",
		script.Subst("image", "create", "photo", option, value))
	return err
}

// MainLoop blocks until the root window is destroyed.
func (a *App) MainLoop() error {
	_, err := a.eval("main loop", "tkwait", "window", ".")
	return err
}

// Close releases the session. Calling Close more than once is a no-op.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.interp.Close()
}

// GetVariable returns the value of a global variable by evaluating
// "set name". Unlike LookupVariable it fails when the variable is unset.
func (a *App) GetVariable(name string) (string, error) {
	return a.eval("get variable", "set", name)
}

// LookupVariable returns the value of a global variable, or "" when it is
// unset. It never fails.
func (a *App) LookupVariable(name string) string {
	return a.interp.GetVar(name)
}

// Config returns the configuration the App was created with.
func (a *App) Config() *config.Config {
	return a.cfg
}
