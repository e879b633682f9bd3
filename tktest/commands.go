package tktest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/feather-lang/feathertk/script"
)

func (in *Interp) cmdSet(args []string) (string, error) {
	switch len(args) {
	case 1:
		v, ok := in.vars[args[0]]
		if !ok {
			return "", errorf("can't read %q: no such variable", args[0])
		}
		return v, nil
	case 2:
		in.vars[args[0]] = args[1]
		return args[1], nil
	}
	return "", wrongArgs("set varName ?newValue?")
}

func (in *Interp) cmdUnset(args []string) (string, error) {
	for _, name := range args {
		delete(in.vars, name)
	}
	return "", nil
}

func (in *Interp) cmdInfo(args []string) (string, error) {
	if len(args) != 2 {
		return "", wrongArgs("info subcommand arg")
	}
	switch args[0] {
	case "exists":
		_, ok := in.vars[args[1]]
		return boolString(ok), nil
	case "complete":
		return boolString(complete(args[1])), nil
	}
	return "", errorf("unknown or ambiguous subcommand %q: must be complete or exists", args[0])
}

func (in *Interp) cmdPackage(args []string) (string, error) {
	if len(args) < 2 || args[0] != "require" {
		return "", wrongArgs("package require package ?version?")
	}
	if args[1] != "Tk" {
		return "", errorf("can't find package %s", args[1])
	}
	return "8.6.14", nil
}

func (in *Interp) cmdWm(args []string) (string, error) {
	if len(args) < 2 {
		return "", wrongArgs("wm option window ?arg ...?")
	}
	if args[1] != "." {
		if _, ok := in.windows[args[1]]; !ok {
			return "", errorf("bad window path name %q", args[1])
		}
	}
	switch args[0] {
	case "title":
		if len(args) == 3 {
			in.title = args[2]
			return "", nil
		}
		return in.title, nil
	case "geometry":
		if len(args) == 3 {
			in.geometry = args[2]
			return "", nil
		}
		return in.geometry, nil
	case "iconphoto":
		rest := args[2:]
		if len(rest) > 0 && rest[0] == "-default" {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return "", wrongArgs("wm iconphoto window ?-default? image1 ?image2 ...?")
		}
		for _, img := range rest {
			if _, ok := in.images[img]; !ok {
				return "", errorf("can't use %q as iconphoto: not a photo image", img)
			}
		}
		in.icon = rest[0]
		return "", nil
	}
	return "", errorf("bad option %q: must be geometry, iconphoto, or title", args[0])
}

// pngSignature starts every PNG stream. -data is only accepted as
// base64-encoded PNG.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func (in *Interp) cmdImage(args []string) (string, error) {
	if len(args) == 0 {
		return "", wrongArgs("image option ?args?")
	}
	switch args[0] {
	case "create":
		if len(args) < 2 || args[1] != "photo" {
			return "", errorf("image type %q doesn't exist", strings.Join(args[1:], " "))
		}
		rest := args[2:]
		var name string
		if len(rest)%2 == 1 {
			name, rest = rest[0], rest[1:]
		} else {
			in.nextImage++
			name = fmt.Sprintf("image%d", in.nextImage)
		}
		opts, err := parseOptions(rest)
		if err != nil {
			return "", err
		}
		file := opts["-file"]
		if file != "" {
			if _, err := os.Stat(file); err != nil {
				return "", errorf("couldn't open %q: no such file or directory", file)
			}
		}
		if data, ok := opts["-data"]; ok {
			raw, err := base64.StdEncoding.DecodeString(data)
			if err != nil || !bytes.HasPrefix(raw, pngSignature) {
				return "", errorf("couldn't recognize image data")
			}
			in.data[name] = raw
		}
		in.images[name] = file
		return name, nil
	case "delete":
		for _, name := range args[1:] {
			delete(in.images, name)
			delete(in.data, name)
		}
		return "", nil
	case "names":
		names := make([]string, 0, len(in.images))
		for name := range in.images {
			names = append(names, name)
		}
		return script.List(names...), nil
	}
	return "", errorf("bad option %q: must be create, delete, or names", args[0])
}

func (in *Interp) cmdPack(args []string) (string, error) {
	if len(args) == 0 {
		return "", wrongArgs("pack option arg ?arg ...?")
	}
	if args[0] == "forget" {
		for _, path := range args[1:] {
			in.unpack(path)
		}
		return "", nil
	}
	if args[0] == "configure" {
		args = args[1:]
	}
	var paths []string
	for len(args) > 0 && strings.HasPrefix(args[0], ".") {
		paths, args = append(paths, args[0]), args[1:]
	}
	if _, err := parseOptions(args); err != nil {
		return "", err
	}
	for _, path := range paths {
		if _, ok := in.windows[path]; !ok || path == "." {
			return "", errorf("bad window path name %q", path)
		}
		in.unpack(path)
		in.packed = append(in.packed, path)
	}
	return "", nil
}

func (in *Interp) unpack(path string) {
	for i, p := range in.packed {
		if p == path {
			in.packed = append(in.packed[:i], in.packed[i+1:]...)
			return
		}
	}
}

func (in *Interp) cmdBind(args []string) (string, error) {
	if len(args) < 1 || len(args) > 3 {
		return "", wrongArgs("bind window ?pattern? ?command?")
	}
	path := args[0]
	if _, ok := in.windows[path]; !ok {
		return "", errorf("bad window path name %q", path)
	}
	if len(args) == 1 {
		events := make([]string, 0, len(in.bindings[path]))
		for ev := range in.bindings[path] {
			events = append(events, ev)
		}
		return script.List(events...), nil
	}
	event := args[1]
	if !strings.HasPrefix(event, "<") || !strings.HasSuffix(event, ">") {
		return "", errorf("bad event pattern %q", event)
	}
	if len(args) == 2 {
		return in.bindings[path][event], nil
	}
	if in.bindings[path] == nil {
		in.bindings[path] = make(map[string]string)
	}
	in.bindings[path][event] = args[2]
	return "", nil
}

func (in *Interp) cmdEvent(args []string) (string, error) {
	if len(args) < 3 || args[0] != "generate" {
		return "", wrongArgs("event generate window event ?option value ...?")
	}
	path, event := args[1], args[2]
	if _, ok := in.windows[path]; !ok {
		return "", errorf("bad window path name %q", path)
	}
	body, ok := in.bindings[path][event]
	if !ok {
		return "", nil
	}
	_, err := in.evalScript(body)
	return "", err
}

func (in *Interp) cmdTkwait(args []string) (string, error) {
	if len(args) != 2 || args[0] != "window" {
		return "", wrongArgs("tkwait variable|visibility|window name")
	}
	if _, ok := in.windows[args[1]]; !ok {
		return "", errorf("bad window path name %q", args[1])
	}
	if in.OnMainLoop != nil {
		if err := in.OnMainLoop(in); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (in *Interp) cmdDestroy(args []string) (string, error) {
	for _, path := range args {
		if path == "." {
			in.destroyed = true
			for p := range in.windows {
				if p != "." {
					delete(in.windows, p)
				}
			}
			in.packed = nil
			continue
		}
		for p := range in.windows {
			if p == path || strings.HasPrefix(p, path+".") {
				delete(in.windows, p)
				in.unpack(p)
			}
		}
	}
	return "", nil
}

func (in *Interp) cmdUpdate(args []string) (string, error) {
	if len(args) > 1 {
		return "", wrongArgs("update ?idletasks?")
	}
	return "", nil
}

func (in *Interp) cmdWinfo(args []string) (string, error) {
	if len(args) != 2 {
		return "", wrongArgs("winfo option window")
	}
	switch args[0] {
	case "exists":
		_, ok := in.windows[args[1]]
		if args[1] == "." {
			ok = !in.destroyed
		}
		return boolString(ok), nil
	case "class":
		w, ok := in.windows[args[1]]
		if !ok {
			return "", errorf("bad window path name %q", args[1])
		}
		return className(w.Class), nil
	}
	return "", errorf("bad option %q: must be class or exists", args[0])
}

func (in *Interp) cmdPuts(args []string) (string, error) {
	if len(args) == 0 {
		return "", wrongArgs("puts ?-nonewline? ?channelId? string")
	}
	fmt.Fprintln(os.Stdout, args[len(args)-1])
	return "", nil
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func className(class string) string {
	if class == "" {
		return ""
	}
	return strings.ToUpper(class[:1]) + class[1:]
}
