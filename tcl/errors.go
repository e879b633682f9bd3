package tcl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClosed is returned by operations on a session after Close.
	ErrClosed = errors.New("tcl: session is closed")

	// ErrUnsupported is returned by Load on builds that cannot open native
	// libraries (cgo disabled, or an unsupported platform).
	ErrUnsupported = errors.New("tcl: native libraries are not supported on this build")
)

// LoadError reports a library that could not be opened, or an entry point
// that could not be resolved in it.
type LoadError struct {
	Library string // "tcl" or "tk"
	Path    string // last path tried
	Symbol  string // unresolved symbol, empty when the library itself failed
	Reason  string
}

func (e *LoadError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("tcl: %s library %s: resolve %s: %s", e.Library, e.Path, e.Symbol, e.Reason)
	}
	return fmt.Sprintf("tcl: open %s library: %s", e.Library, e.Reason)
}

// InitStage identifies the step of interpreter start-up that failed.
type InitStage string

const (
	StageCreate InitStage = "create"
	StageTcl    InitStage = "tcl"
	StageTk     InitStage = "tk"
)

// InitError reports a failure to create or initialise an interpreter.
// A session that fails to initialise is never returned to the caller.
type InitError struct {
	Stage  InitStage
	Result string // interpreter result at the time of failure, if any
}

func (e *InitError) Error() string {
	var msg string
	switch e.Stage {
	case StageCreate:
		msg = "failed to create Tcl interpreter"
	case StageTcl:
		msg = "failed to initialize Tcl interpreter"
	case StageTk:
		msg = "failed to initialize Tk"
	default:
		msg = "failed to initialize interpreter"
	}
	if e.Result != "" {
		return "tcl: " + msg + ": " + e.Result
	}
	return "tcl: " + msg
}

// EvalError is returned when a command evaluates to a non-OK code.
type EvalError struct {
	// Result is the interpreter's string result (the error message).
	Result string
	// ErrorInfo is the value of the global errorInfo variable.
	ErrorInfo string
	// Command is the command text exactly as it was evaluated.
	Command string
}

func (e *EvalError) Error() string {
	var b strings.Builder
	b.WriteString("tcl evaluation error: ")
	b.WriteString(e.Result)
	b.WriteString("\nerror info: ")
	b.WriteString(e.ErrorInfo)
	b.WriteString("\ncommand: ")
	b.WriteString(e.Command)
	return b.String()
}
