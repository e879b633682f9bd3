package tcl

import (
	"os"
	"path/filepath"
	"runtime"
)

// Versioned library base names, in the order they are tried. The first form
// is the threaded build shipped next to an application ("tcl86t.so"), the
// rest are the names distribution packages install.
var (
	tclNames = []string{"tcl86t", "libtcl8.6", "libtcl86t", "libtcl86"}
	tkNames  = []string{"tk86t", "libtk8.6", "libtk86t", "libtk86"}
)

// LoadOptions controls where the Tcl and Tk shared libraries are found.
type LoadOptions struct {
	// Dir is searched first. Empty means "lib" next to the running executable.
	Dir string
	// Tcl and Tk name an exact library file. When set, no search happens for
	// that library.
	Tcl string
	Tk  string
	// Argv0 is handed to Tcl_FindExecutable so Tcl can locate its script
	// library. Empty means os.Executable.
	Argv0 string
}

// Suffix is the shared library file extension for the running platform.
func Suffix() string {
	switch runtime.GOOS {
	case "darwin", "ios":
		return "dylib"
	case "windows":
		return "dll"
	default:
		return "so"
	}
}

func (o LoadOptions) dir() string {
	if o.Dir != "" {
		return o.Dir
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "lib")
}

func (o LoadOptions) argv0() string {
	if o.Argv0 != "" {
		return o.Argv0
	}
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exe
}

// candidates lists the paths tried for one library. Files present in the
// search directory come first, followed by bare names resolved by the
// system loader.
func (o LoadOptions) candidates(explicit string, names []string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	ext := "." + Suffix()
	var paths []string
	if dir := o.dir(); dir != "" {
		for _, n := range names {
			p := filepath.Join(dir, n+ext)
			if _, err := os.Stat(p); err == nil {
				paths = append(paths, p)
			}
		}
	}
	for _, n := range names {
		paths = append(paths, n+ext)
	}
	return paths
}
