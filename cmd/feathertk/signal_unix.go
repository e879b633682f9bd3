//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// followResize keeps t's line editor as wide as the terminal on fd until
// the returned stop function is called.
func followResize(fd int, t *term.Terminal) (stop func()) {
	resize := func() {
		if w, h, err := term.GetSize(fd); err == nil {
			t.SetSize(w, h)
		}
	}
	resize()

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigwinch:
				resize()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigwinch)
		close(done)
	}
}
