// Package tktest provides an in-memory stand-in for a Tcl interpreter with
// Tk loaded, for testing code that drives Tk through command strings.
//
// Interp parses and evaluates a useful subset of Tcl: words in braces,
// quotes and bare words; $variable, [command] and backslash substitution;
// multiple commands separated by newlines or semicolons. It simulates the
// widget classes, geometry, binding and image commands that feathertk
// issues, keeping their state in memory for inspection:
//
//	in := tktest.New()
//	in.Eval("label .l -text hello")
//	w, _ := in.Window(".l")
//	w.Options["-text"] // "hello"
//
// Nothing is drawn and no event loop runs. Button presses and bound events
// are triggered explicitly with [Interp.Invoke] and [Interp.Generate].
package tktest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/feather-lang/feathertk/tcl"
)

// Window is the simulated state of one widget.
type Window struct {
	Path    string
	Class   string
	Options map[string]string

	// Items holds listbox elements.
	Items []string
	// Content holds entry text, or text widget content without the
	// trailing newline Tk always keeps.
	Content string
	// Value holds the scale position.
	Value float64
	// Shapes holds canvas items in creation order.
	Shapes []Shape

	selected map[int]bool
	nextItem int
}

// Shape is one canvas item.
type Shape struct {
	ID      int
	Type    string
	Coords  []float64
	Options map[string]string
}

// Selection returns the selected listbox indices in ascending order.
func (w *Window) Selection() []int {
	var idx []int
	for i, ok := range w.selected {
		if ok {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}

// Interp is a fake Tcl/Tk interpreter. It is not safe for concurrent use.
type Interp struct {
	vars     map[string]string
	commands map[string]tcl.CommandFunc
	windows  map[string]*Window
	images   map[string]string
	data     map[string][]byte
	bindings map[string]map[string]string
	failures map[string]string
	packed   []string
	history  []string

	title    string
	geometry string
	icon     string

	nextImage  int
	closed     bool
	closeCalls int
	destroyed  bool

	// OnMainLoop runs when "tkwait window ." is evaluated, in place of the
	// Tk event loop. A nil hook returns immediately, as if the window had
	// been closed at once.
	OnMainLoop func(in *Interp) error
}

// New returns an interpreter with only the root window ".".
func New() *Interp {
	in := &Interp{
		vars:     make(map[string]string),
		commands: make(map[string]tcl.CommandFunc),
		windows:  make(map[string]*Window),
		images:   make(map[string]string),
		data:     make(map[string][]byte),
		bindings: make(map[string]map[string]string),
		failures: make(map[string]string),
	}
	in.windows["."] = &Window{Path: ".", Class: "Tk", Options: map[string]string{}}
	return in
}

// tclError is a Tcl-level error raised while evaluating a script.
type tclError struct {
	msg string
}

func (e *tclError) Error() string { return e.msg }

func errorf(format string, args ...any) error {
	return &tclError{msg: fmt.Sprintf(format, args...)}
}

// Eval evaluates command. Failures are reported as *tcl.EvalError, with
// errorInfo set as a real interpreter would.
func (in *Interp) Eval(command string) (string, error) {
	if in.closed {
		return "", tcl.ErrClosed
	}
	in.history = append(in.history, command)

	result, err := in.evalScript(command)
	if err != nil {
		msg := err.Error()
		info := msg + "\n    while executing\n\"" + command + "\""
		in.vars["errorInfo"] = info
		return "", &tcl.EvalError{Result: msg, ErrorInfo: info, Command: command}
	}
	return result, nil
}

// GetVar returns a global variable, or "" when it is unset.
func (in *Interp) GetVar(name string) string {
	if in.closed {
		return ""
	}
	return in.vars[name]
}

// CreateCommand registers fn under name, replacing any earlier command.
func (in *Interp) CreateCommand(name string, fn tcl.CommandFunc) error {
	if in.closed {
		return tcl.ErrClosed
	}
	in.commands[name] = fn
	return nil
}

// Close marks the interpreter deleted. Only the first call has an effect,
// but every call is counted.
func (in *Interp) Close() error {
	in.closeCalls++
	if in.closed {
		return nil
	}
	in.closed = true
	return nil
}

// Fail makes every later command whose leading words equal key fail with
// msg. key is either a command name ("pack") or a command name and its first
// argument (".w1 curselection").
func (in *Interp) Fail(key, msg string) {
	in.failures[key] = msg
}

// Invoke triggers a button press on path, running its -command.
func (in *Interp) Invoke(path string) error {
	_, err := in.Eval(path + " invoke")
	return err
}

// Generate fires event (without angle brackets) on path, running the script
// bound to it.
func (in *Interp) Generate(path, event string) error {
	_, err := in.Eval("event generate " + path + " <" + event + ">")
	return err
}

// Window returns the state of the widget at path.
func (in *Interp) Window(path string) (*Window, bool) {
	w, ok := in.windows[path]
	return w, ok
}

// Var reports the value of a global variable and whether it is set.
func (in *Interp) Var(name string) (string, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// HasCommand reports whether a Go command is registered under name.
func (in *Interp) HasCommand(name string) bool {
	_, ok := in.commands[name]
	return ok
}

// Binding returns the script bound to event ("<Button-1>") on path.
func (in *Interp) Binding(path, event string) (string, bool) {
	s, ok := in.bindings[path][event]
	return s, ok
}

// Image returns the file a photo image was loaded from.
func (in *Interp) Image(name string) (string, bool) {
	f, ok := in.images[name]
	return f, ok
}

// ImageData returns the decoded -data a photo image was created from.
func (in *Interp) ImageData(name string) ([]byte, bool) {
	d, ok := in.data[name]
	return d, ok
}

// History returns every command passed to Eval, in order.
func (in *Interp) History() []string { return append([]string(nil), in.history...) }

// Packed returns the packed window paths in packing order.
func (in *Interp) Packed() []string { return append([]string(nil), in.packed...) }

// Title returns the root window title.
func (in *Interp) Title() string { return in.title }

// Geometry returns the root window geometry.
func (in *Interp) Geometry() string { return in.geometry }

// Icon returns the image used as the default window icon.
func (in *Interp) Icon() string { return in.icon }

// Closed reports whether Close has been called.
func (in *Interp) Closed() bool { return in.closed }

// CloseCalls returns how many times Close has been called.
func (in *Interp) CloseCalls() int { return in.closeCalls }

// Destroyed reports whether the root window has been destroyed.
func (in *Interp) Destroyed() bool { return in.destroyed }

func (in *Interp) failure(words []string) (string, bool) {
	if msg, ok := in.failures[words[0]]; ok {
		return msg, true
	}
	if len(words) > 1 {
		if msg, ok := in.failures[words[0]+" "+words[1]]; ok {
			return msg, true
		}
	}
	return "", false
}

// invoke dispatches one substituted command. Widget commands shadow Go
// commands, which shadow builtins.
func (in *Interp) invoke(words []string) (string, error) {
	name := words[0]
	if msg, ok := in.failure(words); ok {
		return "", &tclError{msg: msg}
	}
	if w, ok := in.windows[name]; ok && name != "." {
		return in.widgetCommand(w, words[1:])
	}
	if fn, ok := in.commands[name]; ok {
		return in.callGo(name, fn, words[1:])
	}
	if fn, ok := in.builtin(name); ok {
		return fn(words[1:])
	}
	if _, ok := classDefaults[name]; ok {
		return in.createWidget(name, words[1:])
	}
	return "", errorf("invalid command name %q", name)
}

func (in *Interp) callGo(name string, fn tcl.CommandFunc, args []string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorf("panic in command %q: %v", name, r)
		}
	}()
	out, err := fn(args)
	if err != nil {
		var te *tclError
		if errors.As(err, &te) {
			return "", te
		}
		return "", &tclError{msg: err.Error()}
	}
	return out, nil
}

func (in *Interp) builtin(name string) (func([]string) (string, error), bool) {
	switch name {
	case "set":
		return in.cmdSet, true
	case "unset":
		return in.cmdUnset, true
	case "info":
		return in.cmdInfo, true
	case "package":
		return in.cmdPackage, true
	case "wm":
		return in.cmdWm, true
	case "image":
		return in.cmdImage, true
	case "pack":
		return in.cmdPack, true
	case "bind":
		return in.cmdBind, true
	case "event":
		return in.cmdEvent, true
	case "tkwait":
		return in.cmdTkwait, true
	case "destroy":
		return in.cmdDestroy, true
	case "update":
		return in.cmdUpdate, true
	case "winfo":
		return in.cmdWinfo, true
	case "puts":
		return in.cmdPuts, true
	}
	return nil, false
}

func wrongArgs(usage string) error {
	return errorf("wrong # args: should be %q", usage)
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}
