package feathertk

import (
	"strings"
)

// Widget is implemented by every widget type created through an App.
type Widget interface {
	// Name returns the widget's Tk path name, which is also its handle.
	Name() string
	// Pack arranges the widget in its parent with the pack geometry
	// manager. Options are pack option/value pairs such as "-side", "left".
	Pack(options ...any) error
	// Bind runs fn whenever event (e.g. "Button-1" or "<Enter>") fires on
	// the widget.
	Bind(event string, fn func()) error

	base() *widget
}

type widget struct {
	app  *App
	name string
}

func (w *widget) base() *widget { return w }

func (w *widget) Name() string { return w.name }

func (w *widget) Pack(options ...any) error {
	_, err := w.app.eval("pack widget", append([]any{"pack", w.name}, options...)...)
	return err
}

// SetVerticalPadding packs the widget with n pixels of padding above and
// below.
func (w *widget) SetVerticalPadding(n int) error {
	return w.Pack("-pady", n)
}

func (w *widget) Bind(event string, fn func()) error {
	event = strings.TrimSuffix(strings.TrimPrefix(event, "<"), ">")
	name := w.name + "_" + event + "_callback"
	if err := w.app.createCommand(name, fn); err != nil {
		return err
	}
	_, err := w.app.eval("bind event", "bind", w.name, "<"+event+">", name)
	return err
}

// configure sets one widget option.
func (w *widget) configure(option string, value any) error {
	_, err := w.app.eval("configure "+option, w.name, "configure", option, value)
	return err
}

// call evaluates a widget subcommand.
func (w *widget) call(op string, words ...any) (string, error) {
	return w.app.eval(op, append([]any{w.name}, words...)...)
}

// newWidget generates a handle, defines the same-named global variable, then
// creates a widget of kind with options.
func (a *App) newWidget(kind string, options ...any) (*widget, error) {
	w, err := a.newHandle()
	if err != nil {
		return nil, err
	}
	if _, err := a.eval("create "+kind, append([]any{kind, w.name}, options...)...); err != nil {
		return nil, err
	}
	return w, nil
}

func (a *App) newHandle() (*widget, error) {
	w := &widget{app: a, name: a.nextHandle()}
	if _, err := a.eval("define handle", "set", w.name, w.name); err != nil {
		return nil, err
	}
	return w, nil
}

// createCommand installs fn, which ignores its arguments, as a command.
func (a *App) createCommand(name string, fn func()) error {
	return a.Command(name, func([]string) (string, error) {
		fn()
		return "", nil
	})
}
