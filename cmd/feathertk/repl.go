package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feather-lang/feathertk"
	"github.com/feather-lang/feathertk/script"
	"github.com/feather-lang/feathertk/tcl"
)

const (
	promptFirst = "% "
	promptMore  = "> "
)

func newReplCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate Tcl/Tk commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.appOptions()
			if err != nil {
				return err
			}
			app, err := feathertk.New(opts...)
			if err != nil {
				return err
			}
			defer app.Close()

			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return repl(app, newScannerReader(os.Stdin, io.Discard), cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			state, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer term.Restore(fd, state)

			t := term.NewTerminal(struct {
				io.Reader
				io.Writer
			}{os.Stdin, os.Stdout}, promptFirst)
			stop := followResize(fd, t)
			defer stop()
			return repl(app, t, t, t)
		},
	}
}

// lineReader is satisfied by *term.Terminal.
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// scannerReader reads lines from a non-terminal input.
type scannerReader struct {
	scanner *bufio.Scanner
	prompts io.Writer
	prompt  string
}

func newScannerReader(r io.Reader, prompts io.Writer) *scannerReader {
	return &scannerReader{scanner: bufio.NewScanner(r), prompts: prompts, prompt: promptFirst}
}

func (s *scannerReader) ReadLine() (string, error) {
	io.WriteString(s.prompts, s.prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scannerReader) SetPrompt(prompt string) { s.prompt = prompt }

// repl reads commands until EOF or until the root window is destroyed.
// Lines are joined until they form a complete command, and pending Tk events
// are processed after each one.
func repl(app *feathertk.App, in lineReader, out, errOut io.Writer) error {
	var buf string
	for {
		line, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if buf != "" {
			buf += "\n" + line
		} else {
			buf = line
		}

		complete, err := app.Eval(script.Command("info", "complete", buf))
		if err != nil {
			return err
		}
		if complete == "0" {
			in.SetPrompt(promptMore)
			continue
		}
		in.SetPrompt(promptFirst)

		result, err := app.Eval(buf)
		buf = ""
		switch {
		case err != nil:
			fmt.Fprintf(errOut, "error: %s\n", errorMessage(err))
		case result != "":
			fmt.Fprintln(out, result)
		}

		if _, err := app.Eval("update"); err != nil {
			return err
		}
		if exists, err := app.Eval("winfo exists ."); err != nil || exists != "1" {
			return nil
		}
	}
}

func errorMessage(err error) string {
	var evalErr *tcl.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Result
	}
	return err.Error()
}
