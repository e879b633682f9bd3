// Package tcl embeds a native Tcl/Tk interpreter.
//
// [Load] opens the Tcl and Tk shared libraries with dlopen and resolves a
// fixed table of entry points. [Open] creates an interpreter on them:
//
//	lib, err := tcl.Load(tcl.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	s, err := tcl.Open(lib)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.CreateCommand("hello", func(args []string) (string, error) {
//	    return "hello " + strings.Join(args, " "), nil
//	})
//	out, err := s.Eval("hello world") // "hello world"
//
// A Session is bound to the OS thread that opened it, and must only be used
// from that goroutine. Commands registered with CreateCommand run
// synchronously inside Eval, on the same goroutine.
package tcl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/feather-lang/feathertk/internal/logging"
)

// Result codes and flags from tcl.h.
const (
	resultOK    = 0
	resultError = 1

	globalOnly = 0x1
	evalGlobal = 0x20000
)

type interpHandle = unsafe.Pointer

// CommandFunc implements a command installed with CreateCommand. args holds
// the words after the command name. A non-nil error becomes a Tcl error
// whose message is err.Error(); otherwise the string is the command result.
type CommandFunc func(args []string) (string, error)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for evaluation and callback diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session owns one interpreter with Tk loaded into it.
type Session struct {
	lib      *Library
	interp   interpHandle
	log      *logging.Logger
	commands map[string]*command
	closed   bool
}

type command struct {
	name    string
	fn      CommandFunc
	session *Session
}

// Open creates and initialises an interpreter, then loads Tk into it.
//
// The calling goroutine is locked to its OS thread until Close.
func Open(lib *Library, opts ...Option) (*Session, error) {
	s := &Session{
		lib:      lib,
		log:      logging.Discard(),
		commands: make(map[string]*command),
	}
	for _, opt := range opts {
		opt(s)
	}

	runtime.LockOSThread()
	lib.findExecutable()

	s.interp = lib.createInterp()
	if s.interp == nil {
		runtime.UnlockOSThread()
		return nil, &InitError{Stage: StageCreate}
	}
	if lib.initTcl(s.interp) != resultOK {
		return nil, s.abort(StageTcl)
	}
	if lib.initTk(s.interp) != resultOK {
		return nil, s.abort(StageTk)
	}

	tclPath, tkPath := lib.Paths()
	s.log.Debug().
		Str("tcl", tclPath).
		Str("tk", tkPath).
		Log("interpreter ready")
	return s, nil
}

func (s *Session) abort(stage InitStage) error {
	err := &InitError{Stage: stage, Result: s.lib.stringResult(s.interp)}
	s.lib.deleteInterp(s.interp)
	s.interp = nil
	s.closed = true
	runtime.UnlockOSThread()
	return err
}

// Eval evaluates command at global level and returns the interpreter result.
//
// On failure the returned *EvalError carries the result text, the errorInfo
// trace and the command text.
func (s *Session) Eval(command string) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	s.log.Trace().Str("command", command).Log("eval")

	code := s.lib.eval(s.interp, command)
	result := s.lib.stringResult(s.interp)
	if code != resultOK {
		errorInfo, _ := s.lib.getVar(s.interp, "errorInfo")
		err := &EvalError{
			Result:    result,
			ErrorInfo: errorInfo,
			Command:   command,
		}
		s.log.Debug().
			Str("command", command).
			Str("result", result).
			Int("code", code).
			Log("eval failed")
		return "", err
	}
	return result, nil
}

// GetVar returns the value of a global variable, or "" when it is unset.
// It never fails.
func (s *Session) GetVar(name string) string {
	if s.closed {
		return ""
	}
	v, _ := s.lib.getVar(s.interp, name)
	return v
}

// CreateCommand installs fn as the Tcl command name. A command already
// registered under that name, Go or Tcl, is silently replaced.
func (s *Session) CreateCommand(name string, fn CommandFunc) error {
	if s.closed {
		return ErrClosed
	}
	cmd := &command{name: name, fn: fn, session: s}
	s.lib.createCommand(s.interp, name, cmd)
	s.commands[name] = cmd
	return nil
}

// Commands returns the number of Go commands currently installed.
func (s *Session) Commands() int {
	return len(s.commands)
}

// Close deletes the interpreter, which also releases every Go command
// registered on it. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.lib.deleteInterp(s.interp)
	s.interp = nil
	runtime.UnlockOSThread()
	return nil
}

// forget drops cmd from the registry once Tcl has deleted it. A newer
// command registered under the same name is left alone.
func (s *Session) forget(cmd *command) {
	if s.commands[cmd.name] == cmd {
		delete(s.commands, cmd.name)
	}
}

// invoke runs the Go side of a command and maps the outcome to a Tcl result
// code. Panics are reported to Tcl as errors rather than unwinding through C.
func (c *command) invoke(args []string) (result string, code int) {
	defer func() {
		if r := recover(); r != nil {
			c.session.log.Err().
				Str("command", c.name).
				Str("panic", fmt.Sprint(r)).
				Log("command panicked")
			result = fmt.Sprintf("panic in command %q: %v", c.name, r)
			code = resultError
		}
	}()

	out, err := c.fn(args)
	if err != nil {
		c.session.log.Debug().
			Str("command", c.name).
			Err(err).
			Log("command failed")
		return err.Error(), resultError
	}
	return out, resultOK
}
