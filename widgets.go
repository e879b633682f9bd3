package feathertk

import (
	"fmt"

	"github.com/feather-lang/feathertk/script"
)

// Orient is the orientation of a scale or scrollbar.
type Orient string

const (
	Horizontal Orient = "horizontal"
	Vertical   Orient = "vertical"
)

// Label displays a line of text or an image.
type Label struct{ *widget }

// Label creates a label showing text.
func (a *App) Label(text string) (*Label, error) {
	w, err := a.newWidget("label", "-text", text)
	if err != nil {
		return nil, err
	}
	return &Label{w}, nil
}

func (l *Label) SetText(text string) error {
	return l.configure("-text", text)
}

// SetImage shows img in place of the text.
func (l *Label) SetImage(img *Image) error {
	return l.configure("-image", img.Name())
}

// Button runs a Go function when pressed.
type Button struct{ *widget }

// Button creates a button labelled text. command may be nil.
func (a *App) Button(text string, command func()) (*Button, error) {
	w, err := a.newWidget("button", "-text", text)
	if err != nil {
		return nil, err
	}
	b := &Button{w}
	if command != nil {
		if err := b.SetCommand(command); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SetCommand registers fn as the command <name>_command and makes the
// button invoke it. A later call replaces the earlier function.
func (b *Button) SetCommand(fn func()) error {
	name := b.name + "_command"
	if err := b.app.createCommand(name, fn); err != nil {
		return err
	}
	return b.configure("-command", name)
}

func (b *Button) SetText(text string) error {
	return b.configure("-text", text)
}

// Entry is a single-line text field. Indices count characters from 0.
type Entry struct{ *widget }

func (a *App) Entry() (*Entry, error) {
	w, err := a.newWidget("entry")
	if err != nil {
		return nil, err
	}
	return &Entry{w}, nil
}

// Get returns the entry's text.
func (e *Entry) Get() (string, error) {
	return e.call("entry get", "get")
}

// Insert inserts s before the character at index.
func (e *Entry) Insert(index int, s string) error {
	_, err := e.call("entry insert", "insert", index, s)
	return err
}

// Delete removes the character at first, or the characters from first up to
// but not including last.
func (e *Entry) Delete(first int, last ...int) error {
	_, err := e.call("entry delete", rangeWords("delete", first, last)...)
	return err
}

// Listbox shows a list of strings, one per line.
type Listbox struct{ *widget }

func (a *App) Listbox() (*Listbox, error) {
	w, err := a.newWidget("listbox")
	if err != nil {
		return nil, err
	}
	return &Listbox{w}, nil
}

// Insert inserts items before the element at index.
func (l *Listbox) Insert(index int, items ...string) error {
	words := []any{"insert", index}
	for _, item := range items {
		words = append(words, item)
	}
	_, err := l.call("listbox insert", words...)
	return err
}

// Delete removes the element at first, or the elements from first to last
// inclusive.
func (l *Listbox) Delete(first int, last ...int) error {
	_, err := l.call("listbox delete", rangeWords("delete", first, last)...)
	return err
}

// Get returns the element at first, or the elements from first to last
// inclusive as a Tcl list.
func (l *Listbox) Get(first int, last ...int) (string, error) {
	return l.call("listbox get", rangeWords("get", first, last)...)
}

// Selection returns the selected elements. It returns nil when nothing is
// selected, and also when the selection cannot be read; that failure is
// logged as a warning and not returned.
func (l *Listbox) Selection() []string {
	items, err := l.selection()
	if err != nil {
		l.app.log.Warning().
			Str("widget", l.name).
			Err(err).
			Log("error getting listbox selection")
		return nil
	}
	return items
}

func (l *Listbox) selection() ([]string, error) {
	out, err := l.app.interp.Eval(script.Command(l.name, "curselection"))
	if err != nil {
		return nil, err
	}
	indices, err := script.SplitList(out)
	if err != nil {
		return nil, err
	}
	var items []string
	for _, idx := range indices {
		item, err := l.app.interp.Eval(script.Command(l.name, "get", idx))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Text is a multi-line text area. Indices are Tk text indices such as
// "1.0", "2.end" or "end".
type Text struct{ *widget }

func (a *App) Text() (*Text, error) {
	w, err := a.newWidget("text")
	if err != nil {
		return nil, err
	}
	return &Text{w}, nil
}

func (t *Text) Insert(index, chars string) error {
	_, err := t.call("text insert", "insert", index, chars)
	return err
}

// Delete removes the character at index1, or the range up to index2.
func (t *Text) Delete(index1 string, index2 ...string) error {
	words := []any{"delete", index1}
	if len(index2) > 0 {
		words = append(words, index2[0])
	}
	_, err := t.call("text delete", words...)
	return err
}

// Get returns the character at index1, or the range up to index2. The range
// "1.0" to "end" includes the newline Tk keeps after the last line.
func (t *Text) Get(index1 string, index2 ...string) (string, error) {
	words := []any{"get", index1}
	if len(index2) > 0 {
		words = append(words, index2[0])
	}
	return t.call("text get", words...)
}

// Checkbutton is an on/off toggle backed by the global variable
// <name>_var, which holds "1" when checked and "0" otherwise.
type Checkbutton struct {
	*widget
	variable string
}

// Checkbutton creates an unchecked checkbutton labelled text.
func (a *App) Checkbutton(text string) (*Checkbutton, error) {
	w, err := a.newHandle()
	if err != nil {
		return nil, err
	}
	variable := w.name + "_var"
	if _, err := a.eval("init checkbutton variable", "set", variable, 0); err != nil {
		return nil, err
	}
	if _, err := a.eval("create checkbutton", "checkbutton", w.name, "-text", text, "-variable", variable); err != nil {
		return nil, err
	}
	return &Checkbutton{widget: w, variable: variable}, nil
}

// Variable returns the name of the backing variable.
func (c *Checkbutton) Variable() string { return c.variable }

// Get reports whether the checkbutton is checked.
func (c *Checkbutton) Get() (bool, error) {
	v, err := c.app.eval("checkbutton get", "set", c.variable)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func (c *Checkbutton) Select() error {
	_, err := c.call("checkbutton select", "select")
	return err
}

func (c *Checkbutton) Deselect() error {
	_, err := c.call("checkbutton deselect", "deselect")
	return err
}

// Radiobutton sets a shared variable to its value when selected.
// Radiobuttons sharing a variable form an exclusive group.
type Radiobutton struct {
	*widget
	variable string
	value    string
}

// Radiobutton creates a radiobutton labelled text that stores value into
// the global variable named variable.
func (a *App) Radiobutton(text, variable, value string) (*Radiobutton, error) {
	w, err := a.newWidget("radiobutton", "-text", text, "-variable", variable, "-value", value)
	if err != nil {
		return nil, err
	}
	return &Radiobutton{widget: w, variable: variable, value: value}, nil
}

func (r *Radiobutton) Variable() string { return r.variable }

func (r *Radiobutton) Value() string { return r.value }

func (r *Radiobutton) Select() error {
	_, err := r.call("radiobutton select", "select")
	return err
}

// Deselect clears the shared variable if this radiobutton is selected.
func (r *Radiobutton) Deselect() error {
	_, err := r.call("radiobutton deselect", "deselect")
	return err
}

// Scale is a slider over a numeric range.
type Scale struct{ *widget }

// Scale creates a slider from from to to.
func (a *App) Scale(from, to float64, orient Orient) (*Scale, error) {
	w, err := a.newWidget("scale", "-from", from, "-to", to, "-orient", string(orient))
	if err != nil {
		return nil, err
	}
	return &Scale{w}, nil
}

func (s *Scale) Get() (float64, error) {
	out, err := s.call("scale get", "get")
	if err != nil {
		return 0, err
	}
	return script.Value(out).Float()
}

// Set moves the slider. Tk clamps v to the range and rounds it to the
// scale's resolution.
func (s *Scale) Set(v float64) error {
	_, err := s.call("scale set", "set", v)
	return err
}

// Frame is a container for other widgets.
type Frame struct{ *widget }

func (a *App) Frame() (*Frame, error) {
	w, err := a.newWidget("frame")
	if err != nil {
		return nil, err
	}
	return &Frame{w}, nil
}

// Canvas is a drawing surface.
type Canvas struct{ *widget }

func (a *App) Canvas() (*Canvas, error) {
	w, err := a.newWidget("canvas")
	if err != nil {
		return nil, err
	}
	return &Canvas{w}, nil
}

// SetSize sets the canvas width and height in pixels.
func (c *Canvas) SetSize(width, height int) error {
	_, err := c.call("set canvas size", "configure", "-width", width, "-height", height)
	return err
}

// CreateLine draws a line through the points x0 y0 x1 y1 ... and returns the
// new item id. Options are item option/value pairs such as "-fill", "red".
func (c *Canvas) CreateLine(points []float64, options ...any) (int, error) {
	if len(points) < 4 || len(points)%2 != 0 {
		return 0, fmt.Errorf("feathertk: a line needs an even number of coordinates, at least 4, got %d", len(points))
	}
	words := []any{"create", "line"}
	for _, p := range points {
		words = append(words, p)
	}
	out, err := c.call("create line", append(words, options...)...)
	if err != nil {
		return 0, err
	}
	id, err := script.Value(out).Int()
	return int(id), err
}

// Delete removes the items matching each tag or id. "all" clears the canvas.
func (c *Canvas) Delete(tags ...any) error {
	_, err := c.call("delete items", append([]any{"delete"}, tags...)...)
	return err
}

// Scrollbar scrolls another widget through a Tcl command prefix.
type Scrollbar struct{ *widget }

func (a *App) Scrollbar(orient Orient) (*Scrollbar, error) {
	w, err := a.newWidget("scrollbar", "-orient", string(orient))
	if err != nil {
		return nil, err
	}
	return &Scrollbar{w}, nil
}

// SetCommand sets the Tcl command prefix the scrollbar calls when moved,
// e.g. ".w3 yview".
func (s *Scrollbar) SetCommand(command string) error {
	return s.configure("-command", command)
}

// Image is a photo image loaded from a file. It is not a widget; show it
// with Label.SetImage.
type Image struct {
	name string
	path string
}

// CreateImage loads the image file at path. PNG, GIF and PPM files are read
// by Tk. BMP, TIFF and WebP files are decoded in Go and passed as PNG data.
func (a *App) CreateImage(path string) (*Image, error) {
	option, value, err := a.photoSource(path)
	if err != nil {
		return nil, err
	}
	w, err := a.newHandle()
	if err != nil {
		return nil, err
	}
	if _, err := a.eval("create image", "image", "create", "photo", w.name, option, value); err != nil {
		return nil, err
	}
	return &Image{name: w.name, path: path}, nil
}

// Name returns the image handle.
func (i *Image) Name() string { return i.name }

// Path returns the file the image was loaded from.
func (i *Image) Path() string { return i.path }

func rangeWords(sub string, first int, last []int) []any {
	words := []any{sub, first}
	if len(last) > 0 {
		words = append(words, last[0])
	}
	return words
}
