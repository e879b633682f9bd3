//go:build cgo && !windows

package tcl

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

typedef void *ftk_interp;

static void *ftk_dlopen(const char *path) {
	return dlopen(path, RTLD_NOW | RTLD_GLOBAL);
}

static const char *ftk_dlerror(void) {
	return dlerror();
}

// Clear dlerror, call dlsym, and report the error (if any) alongside the symbol.
static void *ftk_dlsym(void *h, const char *name, const char **err) {
	dlerror();
	void *p = dlsym(h, name);
	const char *e = dlerror();
	if (err) *err = e;
	return e ? NULL : p;
}

// Every entry point is resolved at run time, so calls go through these shims
// rather than through tcl.h prototypes.

static void ftk_find_executable(void *fn, const char *argv0) {
	((void (*)(const char *))fn)(argv0);
}

static ftk_interp ftk_create_interp(void *fn) {
	return ((ftk_interp (*)(void))fn)();
}

static void ftk_delete_interp(void *fn, ftk_interp interp) {
	((void (*)(ftk_interp))fn)(interp);
}

static int ftk_init(void *fn, ftk_interp interp) {
	return ((int (*)(ftk_interp))fn)(interp);
}

static int ftk_eval_ex(void *fn, ftk_interp interp, const char *script, int n, int flags) {
	return ((int (*)(ftk_interp, const char *, int, int))fn)(interp, script, n, flags);
}

static const char *ftk_get_string_result(void *fn, ftk_interp interp) {
	return ((const char *(*)(ftk_interp))fn)(interp);
}

static const char *ftk_get_var2(void *fn, ftk_interp interp, const char *name, int flags) {
	return ((const char *(*)(ftk_interp, const char *, const char *, int))fn)(interp, name, NULL, flags);
}

static void ftk_reset_result(void *fn, ftk_interp interp) {
	((void (*)(ftk_interp))fn)(interp);
}

static void ftk_append_result(void *fn, ftk_interp interp, const char *s) {
	((void (*)(ftk_interp, ...))fn)(interp, s, (char *)NULL);
}

// Forward decls to Go; the trampolines below forward the cgo.Handle carried
// in clientData.
extern int goTclCommandInvoke(uintptr_t handle, ftk_interp interp, int argc, char **argv);
extern void goTclCommandDelete(uintptr_t handle);

static int ftk_command_proc(void *clientData, ftk_interp interp, int argc, const char **argv) {
	return goTclCommandInvoke((uintptr_t)clientData, interp, argc, (char **)argv);
}

static void ftk_command_delete(void *clientData) {
	goTclCommandDelete((uintptr_t)clientData);
}

typedef int (*ftk_cmd_proc)(void *, ftk_interp, int, const char **);
typedef void (*ftk_delete_proc)(void *);

static void *ftk_create_command(void *fn, ftk_interp interp, const char *name, uintptr_t handle) {
	return ((void *(*)(ftk_interp, const char *, ftk_cmd_proc, void *, ftk_delete_proc))fn)(
		interp, name, ftk_command_proc, (void *)handle, ftk_command_delete);
}
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"
)

// symbols is the fixed foreign-function table.
type symbols struct {
	findExecutable  unsafe.Pointer
	createInterp    unsafe.Pointer
	deleteInterp    unsafe.Pointer
	tclInit         unsafe.Pointer
	evalEx          unsafe.Pointer
	getStringResult unsafe.Pointer
	getVar2         unsafe.Pointer
	createCommand   unsafe.Pointer
	resetResult     unsafe.Pointer
	appendResult    unsafe.Pointer
	tkInit          unsafe.Pointer
}

// Library is an opened pair of Tcl and Tk shared libraries.
type Library struct {
	tcl     unsafe.Pointer
	tk      unsafe.Pointer
	tclPath string
	tkPath  string
	argv0   string
	sym     symbols
}

var findExecutableOnce sync.Once

// Load opens the Tcl and Tk shared libraries and resolves every entry point
// the session needs. A failure here is not retryable: the returned
// *LoadError names the library, and the symbol when one is missing.
func Load(opts LoadOptions) (*Library, error) {
	lib := &Library{argv0: opts.argv0()}

	var err error
	lib.tcl, lib.tclPath, err = openFirst("tcl", opts.candidates(opts.Tcl, tclNames))
	if err != nil {
		return nil, err
	}
	lib.tk, lib.tkPath, err = openFirst("tk", opts.candidates(opts.Tk, tkNames))
	if err != nil {
		return nil, err
	}

	tclSyms := []struct {
		name string
		dst  *unsafe.Pointer
	}{
		{"Tcl_FindExecutable", &lib.sym.findExecutable},
		{"Tcl_CreateInterp", &lib.sym.createInterp},
		{"Tcl_DeleteInterp", &lib.sym.deleteInterp},
		{"Tcl_Init", &lib.sym.tclInit},
		{"Tcl_EvalEx", &lib.sym.evalEx},
		{"Tcl_GetStringResult", &lib.sym.getStringResult},
		{"Tcl_GetVar2", &lib.sym.getVar2},
		{"Tcl_CreateCommand", &lib.sym.createCommand},
		{"Tcl_ResetResult", &lib.sym.resetResult},
		{"Tcl_AppendResult", &lib.sym.appendResult},
	}
	for _, s := range tclSyms {
		p, err := lookup(lib.tcl, "tcl", lib.tclPath, s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = p
	}
	if lib.sym.tkInit, err = lookup(lib.tk, "tk", lib.tkPath, "Tk_Init"); err != nil {
		return nil, err
	}
	return lib, nil
}

func openFirst(kind string, paths []string) (unsafe.Pointer, string, error) {
	lerr := &LoadError{Library: kind, Reason: "no candidate paths"}
	for _, p := range paths {
		cpath := C.CString(p)
		h := C.ftk_dlopen(cpath)
		C.free(unsafe.Pointer(cpath))
		if h != nil {
			return h, p, nil
		}
		lerr.Path = p
		if msg := C.ftk_dlerror(); msg != nil {
			lerr.Reason = C.GoString(msg)
		} else {
			lerr.Reason = "dlopen failed"
		}
	}
	return nil, "", lerr
}

func lookup(h unsafe.Pointer, kind, path, name string) (unsafe.Pointer, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var cerr *C.char
	p := C.ftk_dlsym(h, cname, &cerr)
	if cerr != nil || p == nil {
		reason := "symbol is NULL"
		if cerr != nil {
			reason = C.GoString(cerr)
		}
		return nil, &LoadError{Library: kind, Path: path, Symbol: name, Reason: reason}
	}
	return p, nil
}

// Paths returns the files the Tcl and Tk libraries were opened from.
func (l *Library) Paths() (tcl, tk string) {
	return l.tclPath, l.tkPath
}

func (l *Library) findExecutable() {
	findExecutableOnce.Do(func() {
		cargv0 := C.CString(l.argv0)
		defer C.free(unsafe.Pointer(cargv0))
		C.ftk_find_executable(l.sym.findExecutable, cargv0)
	})
}

func (l *Library) createInterp() interpHandle {
	return interpHandle(C.ftk_create_interp(l.sym.createInterp))
}

func (l *Library) deleteInterp(h interpHandle) {
	C.ftk_delete_interp(l.sym.deleteInterp, C.ftk_interp(h))
}

func (l *Library) initTcl(h interpHandle) int {
	return int(C.ftk_init(l.sym.tclInit, C.ftk_interp(h)))
}

func (l *Library) initTk(h interpHandle) int {
	return int(C.ftk_init(l.sym.tkInit, C.ftk_interp(h)))
}

func (l *Library) eval(h interpHandle, script string) int {
	cscript := C.CString(script)
	defer C.free(unsafe.Pointer(cscript))
	return int(C.ftk_eval_ex(l.sym.evalEx, C.ftk_interp(h), cscript, C.int(len(script)), evalGlobal))
}

func (l *Library) stringResult(h interpHandle) string {
	return C.GoString(C.ftk_get_string_result(l.sym.getStringResult, C.ftk_interp(h)))
}

func (l *Library) getVar(h interpHandle, name string) (string, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	v := C.ftk_get_var2(l.sym.getVar2, C.ftk_interp(h), cname, globalOnly)
	if v == nil {
		return "", false
	}
	return C.GoString(v), true
}

func (l *Library) setResult(h interpHandle, s string) {
	C.ftk_reset_result(l.sym.resetResult, C.ftk_interp(h))
	if s == "" {
		return
	}
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.ftk_append_result(l.sym.appendResult, C.ftk_interp(h), cs)
}

// createCommand installs the trampoline under name. The cgo handle is
// released by the delete proc, which Tcl runs when the command is replaced
// or the interpreter is deleted.
func (l *Library) createCommand(h interpHandle, name string, cmd *command) {
	handle := cgo.NewHandle(cmd)
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.ftk_create_command(l.sym.createCommand, C.ftk_interp(h), cname, C.uintptr_t(handle))
}

//export goTclCommandInvoke
func goTclCommandInvoke(handle C.uintptr_t, interp C.ftk_interp, argc C.int, argv **C.char) C.int {
	cmd, ok := cgo.Handle(handle).Value().(*command)
	if !ok {
		return resultError
	}
	n := int(argc)
	cargs := unsafe.Slice(argv, n)
	args := make([]string, 0, n)
	// argv[0] is the command name
	for i := 1; i < n; i++ {
		args = append(args, C.GoString(cargs[i]))
	}
	result, code := cmd.invoke(args)
	cmd.session.lib.setResult(interpHandle(interp), result)
	return C.int(code)
}

//export goTclCommandDelete
func goTclCommandDelete(handle C.uintptr_t) {
	h := cgo.Handle(handle)
	if cmd, ok := h.Value().(*command); ok {
		cmd.session.forget(cmd)
	}
	h.Delete()
}
