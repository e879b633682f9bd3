// Package feathertk drives the Tk GUI toolkit from Go through an embedded
// Tcl 8.6 interpreter.
//
// # Overview
//
// feathertk loads the native Tcl and Tk shared libraries at run time and
// keeps one interpreter session per App. Every widget and window operation
// is compiled to a Tcl command string and evaluated in that session; Tk
// calls back into Go through commands registered on the interpreter. It
// provides:
//
//   - An App owning the root window, with title, geometry, icon and the
//     blocking main loop
//   - Widget types for labels, buttons, entries, listboxes, text areas,
//     check and radio buttons, scales, frames, canvases and scrollbars
//   - Photo images from PNG, GIF and PPM files read by Tk, and from BMP,
//     TIFF and WebP files converted in Go
//   - Go functions as button commands, event bindings and Tcl commands
//     (App.Command)
//
// # Quick Start
//
//	import "github.com/feather-lang/feathertk"
//
//	func main() {
//	    app, err := feathertk.CreateApp("Hello", "300x200")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, _ := app.Label("Click the button!")
//	    label.Pack()
//
//	    button, _ := app.Button("Click me!", func() {
//	        label.SetText("Button was clicked!")
//	    })
//	    button.Pack("-pady", 10)
//
//	    if err := feathertk.Run(app); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Widget Handles
//
// Each widget gets a Tk path name of the form .w1, .w2, ... which is unique
// within its App. The same name is defined as a global variable holding
// itself, and is the prefix of the commands registered for the widget:
//
//	.w2_command            Button.SetCommand
//	.w2_Button-1_callback  Bind("Button-1", fn)
//	.w3_var                the Checkbutton state variable
//
// # Quoting
//
// Arguments are quoted with package script before they reach the
// interpreter, so text containing braces, brackets, dollar signs or quotes
// is passed through literally:
//
//	label.SetText(`say "hi" to [everyone]`) // shown exactly as written
//
// App.Eval is the one exception: it evaluates its argument as a script.
//
// # Errors
//
// Library loading and interpreter initialisation fail with *tcl.LoadError
// and *tcl.InitError, wrapped by New. Failing widget operations return a
// *tcl.EvalError carrying the interpreter result, the errorInfo trace and
// the command that failed:
//
//	var evalErr *tcl.EvalError
//	if errors.As(err, &evalErr) {
//	    fmt.Println(evalErr.Command)
//	}
//
// Listbox.Selection is the exception; it logs the failure and returns nil.
//
// # Threading
//
// Tcl interpreters are bound to the thread that created them. New locks the
// calling goroutine to its OS thread, and the App must only be used from
// that goroutine until Close. Command and binding callbacks run
// synchronously on it while MainLoop is blocked. On macOS Tk additionally
// requires the main thread; call New from main with runtime.LockOSThread in
// an init function.
//
// # Testing
//
// Package tktest implements the Interpreter contract in memory. Pass it to
// NewWithInterpreter to exercise widget code without the native libraries
// or a display:
//
//	in := tktest.New()
//	app := feathertk.NewWithInterpreter(in)
//	b, _ := app.Button("OK", func() { clicked = true })
//	in.Invoke(b.Name())
package feathertk
