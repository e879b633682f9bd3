//go:build !cgo || windows

package tcl

// Library is an opened pair of Tcl and Tk shared libraries. On this build it
// can never be obtained; Load always fails.
type Library struct{}

// Load returns ErrUnsupported: opening native libraries needs cgo and dlopen.
func Load(opts LoadOptions) (*Library, error) {
	return nil, ErrUnsupported
}

// Paths returns the files the Tcl and Tk libraries were opened from.
func (l *Library) Paths() (tcl, tk string) { return "", "" }

func (l *Library) findExecutable() {}
func (l *Library) createInterp() interpHandle { return nil }
func (l *Library) deleteInterp(interpHandle) {}
func (l *Library) initTcl(interpHandle) int { return resultError }
func (l *Library) initTk(interpHandle) int { return resultError }
func (l *Library) eval(interpHandle, string) int { return resultError }
func (l *Library) stringResult(interpHandle) string { return "" }
func (l *Library) getVar(interpHandle, string) (string, bool) { return "", false }
func (l *Library) setResult(interpHandle, string) {}
func (l *Library) createCommand(interpHandle, string, *command) {}
