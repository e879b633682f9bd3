package tktest

import (
	"math"
	"strconv"
	"strings"

	"github.com/feather-lang/feathertk/script"
)

// classDefaults holds the option defaults of each simulated widget class.
// "%name" is replaced with the last component of the widget path.
var classDefaults = map[string]map[string]string{
	"label":  {"-text": "", "-image": ""},
	"button": {"-text": "", "-command": ""},
	"entry":  {"-width": "20"},
	"listbox": {
		"-height":     "10",
		"-selectmode": "browse",
	},
	"text": {"-width": "80", "-height": "24"},
	"checkbutton": {
		"-text":     "",
		"-command":  "",
		"-variable": "%name",
		"-onvalue":  "1",
		"-offvalue": "0",
	},
	"radiobutton": {
		"-text":     "",
		"-command":  "",
		"-variable": "selectedButton",
		"-value":    "",
	},
	"scale": {
		"-from":       "0",
		"-to":         "100",
		"-resolution": "1",
		"-orient":     "vertical",
		"-variable":   "",
	},
	"frame":     {},
	"canvas":    {"-width": "378", "-height": "265"},
	"scrollbar": {"-orient": "vertical", "-command": ""},
}

// parseOptions reads "-option value" pairs.
func parseOptions(args []string) (map[string]string, error) {
	opts := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if !strings.HasPrefix(args[i], "-") {
			return nil, errorf("bad option %q", args[i])
		}
		if i+1 >= len(args) {
			return nil, errorf("value for %q missing", args[i])
		}
		opts[args[i]] = args[i+1]
	}
	return opts, nil
}

func (in *Interp) createWidget(class string, args []string) (string, error) {
	if len(args) == 0 {
		return "", wrongArgs(class + " pathName ?-option value ...?")
	}
	path := args[0]
	if !strings.HasPrefix(path, ".") || path == "." || strings.HasSuffix(path, ".") {
		return "", errorf("bad window path name %q", path)
	}
	parent := path[:strings.LastIndexByte(path, '.')]
	if parent == "" {
		parent = "."
	}
	if _, ok := in.windows[parent]; !ok {
		return "", errorf("bad window path name %q", path)
	}
	if _, ok := in.windows[path]; ok {
		return "", errorf("window name %q already exists in parent", path[strings.LastIndexByte(path, '.')+1:])
	}
	opts, err := parseOptions(args[1:])
	if err != nil {
		return "", err
	}

	w := &Window{
		Path:     path,
		Class:    class,
		Options:  make(map[string]string),
		selected: make(map[int]bool),
	}
	for k, v := range classDefaults[class] {
		if v == "%name" {
			v = path[strings.LastIndexByte(path, '.')+1:]
		}
		w.Options[k] = v
	}
	for k, v := range opts {
		w.Options[k] = v
	}

	switch class {
	case "checkbutton":
		name := w.Options["-variable"]
		if _, ok := in.vars[name]; !ok {
			in.vars[name] = w.Options["-offvalue"]
		}
	case "scale":
		from, err := w.float("-from")
		if err != nil {
			return "", err
		}
		if _, err := w.float("-to"); err != nil {
			return "", err
		}
		if _, err := w.float("-resolution"); err != nil {
			return "", err
		}
		w.Value = from
		if name := w.Options["-variable"]; name != "" {
			in.vars[name] = formatNumber(from)
		}
	}
	in.windows[path] = w
	return path, nil
}

func (w *Window) float(option string) (float64, error) {
	f, err := strconv.ParseFloat(w.Options[option], 64)
	if err != nil {
		return 0, errorf("expected floating-point number but got %q", w.Options[option])
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (in *Interp) widgetCommand(w *Window, args []string) (string, error) {
	if len(args) == 0 {
		return "", wrongArgs(w.Path + " option ?arg ...?")
	}
	switch args[0] {
	case "configure":
		return in.configure(w, args[1:])
	case "cget":
		if len(args) != 2 {
			return "", wrongArgs(w.Path + " cget option")
		}
		v, ok := w.Options[args[1]]
		if !ok {
			return "", errorf("unknown option %q", args[1])
		}
		return v, nil
	}

	switch w.Class {
	case "button":
		if args[0] == "invoke" {
			return in.runCommand(w)
		}
	case "checkbutton":
		return in.checkbutton(w, args)
	case "radiobutton":
		return in.radiobutton(w, args)
	case "scale":
		return in.scale(w, args)
	case "entry":
		return in.entry(w, args)
	case "listbox":
		return in.listbox(w, args)
	case "text":
		return in.text(w, args)
	case "scrollbar":
		return in.scrollbar(w, args)
	case "canvas":
		return in.canvas(w, args)
	}
	return "", errorf("bad option %q: must be cget or configure", args[0])
}

func (in *Interp) configure(w *Window, args []string) (string, error) {
	if len(args) == 1 {
		v, ok := w.Options[args[0]]
		if !ok {
			return "", errorf("unknown option %q", args[0])
		}
		return script.List(args[0], v), nil
	}
	opts, err := parseOptions(args)
	if err != nil {
		return "", err
	}
	for k, v := range opts {
		if k == "-image" && v != "" {
			if _, ok := in.images[v]; !ok {
				return "", errorf("image %q doesn't exist", v)
			}
		}
		w.Options[k] = v
	}
	return "", nil
}

func (in *Interp) runCommand(w *Window) (string, error) {
	cmd := w.Options["-command"]
	if cmd == "" {
		return "", nil
	}
	return in.evalScript(cmd)
}

func (in *Interp) checkbutton(w *Window, args []string) (string, error) {
	name := w.Options["-variable"]
	on, off := w.Options["-onvalue"], w.Options["-offvalue"]
	switch args[0] {
	case "select":
		in.vars[name] = on
	case "deselect":
		in.vars[name] = off
	case "toggle":
		in.toggle(name, on, off)
	case "invoke":
		in.toggle(name, on, off)
		return in.runCommand(w)
	default:
		return "", errorf("bad option %q: must be cget, configure, deselect, invoke, select, or toggle", args[0])
	}
	return "", nil
}

func (in *Interp) toggle(name, on, off string) {
	if in.vars[name] == on {
		in.vars[name] = off
		return
	}
	in.vars[name] = on
}

func (in *Interp) radiobutton(w *Window, args []string) (string, error) {
	name, value := w.Options["-variable"], w.Options["-value"]
	switch args[0] {
	case "select":
		in.vars[name] = value
	case "deselect":
		if in.vars[name] == value {
			in.vars[name] = ""
		}
	case "invoke":
		in.vars[name] = value
		return in.runCommand(w)
	default:
		return "", errorf("bad option %q: must be cget, configure, deselect, invoke, or select", args[0])
	}
	return "", nil
}

func (in *Interp) scale(w *Window, args []string) (string, error) {
	switch args[0] {
	case "get":
		return formatNumber(w.Value), nil
	case "set":
		if len(args) != 2 {
			return "", wrongArgs(w.Path + " set value")
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", errorf("expected floating-point number but got %q", args[1])
		}
		from, _ := w.float("-from")
		to, _ := w.float("-to")
		res, _ := w.float("-resolution")
		lo, hi := math.Min(from, to), math.Max(from, to)
		v = math.Max(lo, math.Min(hi, v))
		if res > 0 {
			v = math.Round(v/res) * res
		}
		w.Value = v
		if name := w.Options["-variable"]; name != "" {
			in.vars[name] = formatNumber(v)
		}
		return "", nil
	}
	return "", errorf("bad option %q: must be cget, configure, get, or set", args[0])
}

func (in *Interp) entry(w *Window, args []string) (string, error) {
	text := []rune(w.Content)
	switch args[0] {
	case "get":
		return w.Content, nil
	case "insert":
		if len(args) != 3 {
			return "", wrongArgs(w.Path + " insert index text")
		}
		i, err := entryIndex(args[1], len(text))
		if err != nil {
			return "", err
		}
		w.Content = string(text[:i]) + args[2] + string(text[i:])
		return "", nil
	case "delete":
		if len(args) < 2 || len(args) > 3 {
			return "", wrongArgs(w.Path + " delete firstIndex ?lastIndex?")
		}
		first, err := entryIndex(args[1], len(text))
		if err != nil {
			return "", err
		}
		last := first + 1
		if len(args) == 3 {
			if last, err = entryIndex(args[2], len(text)); err != nil {
				return "", err
			}
		}
		last = min(last, len(text))
		if first < last {
			w.Content = string(text[:first]) + string(text[last:])
		}
		return "", nil
	}
	return "", errorf("bad option %q: must be cget, configure, delete, get, or insert", args[0])
}

func (in *Interp) listbox(w *Window, args []string) (string, error) {
	size := len(w.Items)
	switch args[0] {
	case "size":
		return strconv.Itoa(size), nil
	case "insert":
		if len(args) < 2 {
			return "", wrongArgs(w.Path + " insert index ?element ...?")
		}
		i, err := listIndex(args[1], size, true)
		if err != nil {
			return "", err
		}
		items := append([]string(nil), w.Items[:i]...)
		items = append(items, args[2:]...)
		w.Items = append(items, w.Items[i:]...)
		w.shiftSelection(i, len(args)-2)
		return "", nil
	case "delete":
		first, last, err := listRange(w.Path+" delete", args[1:], size)
		if err != nil {
			return "", err
		}
		if first <= last {
			w.Items = append(w.Items[:first], w.Items[last+1:]...)
			for i := first; i <= last; i++ {
				delete(w.selected, i)
			}
			w.shiftSelection(last+1, first-last-1)
		}
		return "", nil
	case "get":
		first, last, err := listRange(w.Path+" get", args[1:], size)
		if err != nil {
			return "", err
		}
		if len(args) == 2 {
			if first >= size {
				return "", nil
			}
			return w.Items[first], nil
		}
		if first > last {
			return "", nil
		}
		return script.List(w.Items[first : last+1]...), nil
	case "curselection":
		sel := w.Selection()
		words := make([]string, len(sel))
		for i, idx := range sel {
			words[i] = strconv.Itoa(idx)
		}
		return strings.Join(words, " "), nil
	case "selection":
		if len(args) < 3 {
			return "", wrongArgs(w.Path + " selection option index ?index?")
		}
		first, last, err := listRange(w.Path+" selection "+args[1], args[2:], size)
		if err != nil {
			return "", err
		}
		switch args[1] {
		case "set", "clear":
			for i := first; i <= last; i++ {
				if args[1] == "set" {
					w.selected[i] = true
				} else {
					delete(w.selected, i)
				}
			}
			return "", nil
		case "includes":
			return boolString(w.selected[first]), nil
		}
		return "", errorf("bad selection option %q: must be clear, includes, or set", args[1])
	}
	return "", errorf("bad option %q: must be cget, configure, curselection, delete, get, insert, selection, or size", args[0])
}

// shiftSelection moves selected indices at or after from by delta.
func (w *Window) shiftSelection(from, delta int) {
	if delta == 0 {
		return
	}
	moved := make(map[int]bool, len(w.selected))
	for i, ok := range w.selected {
		switch {
		case !ok:
		case i < from:
			moved[i] = true
		case i+delta >= 0 && i+delta < len(w.Items):
			moved[i+delta] = true
		}
	}
	w.selected = moved
}

func listRange(usage string, args []string, size int) (first, last int, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, wrongArgs(usage + " first ?last?")
	}
	if first, err = listIndex(args[0], size, false); err != nil {
		return 0, 0, err
	}
	last = first
	if len(args) == 2 {
		if last, err = listIndex(args[1], size, false); err != nil {
			return 0, 0, err
		}
	}
	first = max(first, 0)
	last = min(last, size-1)
	return first, last, nil
}

func (in *Interp) text(w *Window, args []string) (string, error) {
	buf := []rune(w.Content + "\n")
	switch args[0] {
	case "insert":
		if len(args) != 3 {
			return "", wrongArgs(w.Path + " insert index chars")
		}
		i, err := textIndex(args[1], buf)
		if err != nil {
			return "", err
		}
		i = min(i, len(buf)-1)
		w.Content = string(buf[:i]) + args[2] + string(buf[i:len(buf)-1])
		return "", nil
	case "delete":
		if len(args) < 2 || len(args) > 3 {
			return "", wrongArgs(w.Path + " delete index1 ?index2?")
		}
		first, last, err := textRange(args[1:], buf)
		if err != nil {
			return "", err
		}
		last = min(last, len(buf)-1)
		if first < last {
			w.Content = string(buf[:first]) + string(buf[last:len(buf)-1])
		}
		return "", nil
	case "get":
		if len(args) < 2 || len(args) > 3 {
			return "", wrongArgs(w.Path + " get index1 ?index2?")
		}
		first, last, err := textRange(args[1:], buf)
		if err != nil {
			return "", err
		}
		if first >= last {
			return "", nil
		}
		return string(buf[first:last]), nil
	}
	return "", errorf("bad option %q: must be cget, configure, delete, get, or insert", args[0])
}

func textRange(args []string, buf []rune) (first, last int, err error) {
	if first, err = textIndex(args[0], buf); err != nil {
		return 0, 0, err
	}
	last = min(first+1, len(buf))
	if len(args) == 2 {
		if last, err = textIndex(args[1], buf); err != nil {
			return 0, 0, err
		}
	}
	return first, last, nil
}

func (in *Interp) scrollbar(w *Window, args []string) (string, error) {
	switch args[0] {
	case "set":
		if len(args) != 3 {
			return "", wrongArgs(w.Path + " set first last")
		}
		w.Content = args[1] + " " + args[2]
		return "", nil
	case "get":
		if w.Content == "" {
			return "0.0 0.0", nil
		}
		return w.Content, nil
	}
	return "", errorf("bad option %q: must be cget, configure, get, or set", args[0])
}

func (in *Interp) canvas(w *Window, args []string) (string, error) {
	switch args[0] {
	case "create":
		if len(args) < 2 {
			return "", wrongArgs(w.Path + " create type coords ?arg ...?")
		}
		if args[1] != "line" {
			return "", errorf("unknown or ambiguous item type %q", args[1])
		}
		var coords []float64
		rest := args[2:]
		for len(rest) > 0 {
			f, err := strconv.ParseFloat(rest[0], 64)
			if err != nil {
				if strings.HasPrefix(rest[0], "-") {
					break
				}
				return "", errorf("expected floating-point number but got %q", rest[0])
			}
			coords = append(coords, f)
			rest = rest[1:]
		}
		if len(coords) < 4 || len(coords)%2 != 0 {
			return "", errorf("wrong # coordinates: expected an even number, got %d", len(coords))
		}
		opts, err := parseOptions(rest)
		if err != nil {
			return "", err
		}
		w.nextItem++
		w.Shapes = append(w.Shapes, Shape{ID: w.nextItem, Type: args[1], Coords: coords, Options: opts})
		return strconv.Itoa(w.nextItem), nil
	case "delete":
		for _, tag := range args[1:] {
			if tag == "all" {
				w.Shapes = nil
				continue
			}
			id, err := strconv.Atoi(tag)
			if err != nil {
				continue
			}
			kept := w.Shapes[:0]
			for _, s := range w.Shapes {
				if s.ID != id {
					kept = append(kept, s)
				}
			}
			w.Shapes = kept
		}
		return "", nil
	case "find":
		if len(args) != 2 || args[1] != "all" {
			return "", wrongArgs(w.Path + " find all")
		}
		ids := make([]string, len(w.Shapes))
		for i, s := range w.Shapes {
			ids[i] = strconv.Itoa(s.ID)
		}
		return script.List(ids...), nil
	}
	return "", errorf("bad option %q: must be cget, configure, create, delete, or find", args[0])
}
