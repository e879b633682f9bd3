package tcl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalErrorMessage(t *testing.T) {
	err := &EvalError{
		Result:    `invalid command name "foo"`,
		ErrorInfo: "invalid command name \"foo\"\n    while executing\n\"foo bar\"",
		Command:   "foo bar",
	}
	want := "tcl evaluation error: invalid command name \"foo\"\n" +
		"error info: invalid command name \"foo\"\n    while executing\n\"foo bar\"\n" +
		"command: foo bar"
	assert.Equal(t, want, err.Error())

	wrapped := fmt.Errorf("create label: %w", err)
	var evalErr *EvalError
	require.True(t, errors.As(wrapped, &evalErr))
	assert.Equal(t, "foo bar", evalErr.Command)
}

func TestInitErrorMessage(t *testing.T) {
	tests := []struct {
		err  *InitError
		want string
	}{
		{&InitError{Stage: StageCreate}, "tcl: failed to create Tcl interpreter"},
		{&InitError{Stage: StageTcl, Result: "can't find a usable init.tcl"}, "tcl: failed to initialize Tcl interpreter: can't find a usable init.tcl"},
		{&InitError{Stage: StageTk, Result: "no display name and no $DISPLAY environment variable"}, "tcl: failed to initialize Tk: no display name and no $DISPLAY environment variable"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestLoadErrorMessage(t *testing.T) {
	open := &LoadError{Library: "tk", Path: "libtk8.6.so", Reason: "cannot open shared object file"}
	assert.Equal(t, "tcl: open tk library: cannot open shared object file", open.Error())

	sym := &LoadError{Library: "tcl", Path: "/usr/lib/libtcl8.6.so", Symbol: "Tcl_EvalEx", Reason: "undefined symbol"}
	assert.Equal(t, "tcl: tcl library /usr/lib/libtcl8.6.so: resolve Tcl_EvalEx: undefined symbol", sym.Error())
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	ext := "." + Suffix()
	present := filepath.Join(dir, "libtcl8.6"+ext)
	require.NoError(t, os.WriteFile(present, nil, 0o644))

	opts := LoadOptions{Dir: dir}
	got := opts.candidates("", tclNames)
	want := []string{present}
	for _, n := range tclNames {
		want = append(want, n+ext)
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []string{"/opt/libtcl.so"}, opts.candidates("/opt/libtcl.so", tclNames))
}

func TestLoadOptionsDefaults(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	var opts LoadOptions
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "lib"), opts.dir())
	assert.Equal(t, exe, opts.argv0())

	opts = LoadOptions{Dir: "/x", Argv0: "/bin/app"}
	assert.Equal(t, "/x", opts.dir())
	assert.Equal(t, "/bin/app", opts.argv0())
}
