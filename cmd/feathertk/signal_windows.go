//go:build windows

package main

import "golang.org/x/term"

// followResize sizes t once. Windows has no SIGWINCH.
func followResize(fd int, t *term.Terminal) (stop func()) {
	if w, h, err := term.GetSize(fd); err == nil {
		t.SetSize(w, h)
	}
	return func() {}
}
