package feathertk_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feather-lang/feathertk"
	"github.com/feather-lang/feathertk/internal/logging"
	"github.com/feather-lang/feathertk/tktest"
)

var handleRE = regexp.MustCompile(`^\.w[1-9][0-9]*$`)

func TestHandlesUnique(t *testing.T) {
	app, in := newApp(t)

	var widgets []feathertk.Widget
	add := func(w feathertk.Widget, err error) {
		t.Helper()
		require.NoError(t, err)
		widgets = append(widgets, w)
	}
	for i := 0; i < 3; i++ {
		add(app.Label("l"))
		add(app.Button("b", nil))
		add(app.Entry())
		add(app.Listbox())
		add(app.Text())
		add(app.Checkbutton("c"))
		add(app.Radiobutton("r", "group", "v"))
		add(app.Scale(0, 10, feathertk.Horizontal))
		add(app.Frame())
		add(app.Canvas())
		add(app.Scrollbar(feathertk.Vertical))
	}
	img, err := app.CreateImage(writeImage(t, "a.png"))
	require.NoError(t, err)

	seen := map[string]bool{img.Name(): true}
	for _, w := range widgets {
		name := w.Name()
		assert.Regexp(t, handleRE, name)
		assert.False(t, seen[name], "duplicate handle %s", name)
		seen[name] = true

		v, ok := in.Var(name)
		assert.True(t, ok, "variable %s not defined", name)
		assert.Equal(t, name, v)

		_, ok = in.Window(name)
		assert.True(t, ok, "window %s not created", name)
	}
	assert.Len(t, seen, len(widgets)+1)
}

func TestConstructionOrder(t *testing.T) {
	app, in := newApp(t)

	_, err := app.Label(`a "quoted" [label] $here`)
	require.NoError(t, err)
	_, err = app.Checkbutton("check")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"package require Tk",
		"set .w1 .w1",
		`label .w1 -text {a "quoted" [label] $here}`,
		"set .w2 .w2",
		"set .w2_var 0",
		"checkbutton .w2 -text check -variable .w2_var",
	}, in.History())

	w, _ := in.Window(".w1")
	assert.Equal(t, `a "quoted" [label] $here`, w.Options["-text"])
}

func TestPackAndPadding(t *testing.T) {
	app, in := newApp(t)

	a, err := app.Label("a")
	require.NoError(t, err)
	b, err := app.Label("b")
	require.NoError(t, err)

	require.NoError(t, a.Pack())
	require.NoError(t, b.Pack("-side", "left", "-padx", 4))
	require.NoError(t, a.SetVerticalPadding(10))

	assert.Equal(t, []string{b.Name(), a.Name()}, in.Packed())
	history := in.History()
	assert.Equal(t, "pack .w1 -pady 10", history[len(history)-1])

	err = a.Pack("-side")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	app, in := newApp(t)

	l, err := app.Label("")
	require.NoError(t, err)
	require.NoError(t, l.SetText("Button was clicked!"))
	w, _ := in.Window(l.Name())
	assert.Equal(t, "Button was clicked!", w.Options["-text"])

	img, err := app.CreateImage(writeImage(t, "logo.png"))
	require.NoError(t, err)
	require.NoError(t, l.SetImage(img))
	assert.Equal(t, img.Name(), w.Options["-image"])

	file, ok := in.Image(img.Name())
	require.True(t, ok)
	assert.Equal(t, img.Path(), file)
}

func TestButtonCommand(t *testing.T) {
	app, in := newApp(t)

	label, err := app.Label("Click the button!")
	require.NoError(t, err)
	button, err := app.Button("Click me!", func() {
		label.SetText("Button was clicked!")
	})
	require.NoError(t, err)

	assert.True(t, in.HasCommand(button.Name()+"_command"))
	require.NoError(t, in.Invoke(button.Name()))

	w, _ := in.Window(label.Name())
	assert.Equal(t, "Button was clicked!", w.Options["-text"])

	clicks := 0
	require.NoError(t, button.SetCommand(func() { clicks++ }))
	require.NoError(t, in.Invoke(button.Name()))
	require.NoError(t, in.Invoke(button.Name()))
	assert.Equal(t, 2, clicks)

	require.NoError(t, button.SetText("Again"))
	bw, _ := in.Window(button.Name())
	assert.Equal(t, "Again", bw.Options["-text"])
}

func TestBind(t *testing.T) {
	app, in := newApp(t)

	f, err := app.Frame()
	require.NoError(t, err)

	entered := 0
	require.NoError(t, f.Bind("Enter", func() { entered++ }))
	require.NoError(t, f.Bind("<Button-1>", func() {}))

	script, ok := in.Binding(f.Name(), "<Enter>")
	require.True(t, ok)
	assert.Equal(t, f.Name()+"_Enter_callback", script)
	assert.True(t, in.HasCommand(f.Name()+"_Button-1_callback"))

	require.NoError(t, in.Generate(f.Name(), "Enter"))
	require.NoError(t, in.Generate(f.Name(), "Enter"))
	assert.Equal(t, 2, entered)
}

func TestEntry(t *testing.T) {
	app, _ := newApp(t)

	e, err := app.Entry()
	require.NoError(t, err)
	require.NoError(t, e.Insert(0, "Type something here"))

	got, err := e.Get()
	require.NoError(t, err)
	assert.Equal(t, "Type something here", got)

	require.NoError(t, e.Delete(0))
	require.NoError(t, e.Delete(4, 14))
	got, err = e.Get()
	require.NoError(t, err)
	assert.Equal(t, "ype here", got)
}

func TestListboxSelection(t *testing.T) {
	app, in := newApp(t)

	l, err := app.Listbox()
	require.NoError(t, err)
	require.NoError(t, l.Insert(0, "a", "b", "c"))

	assert.Empty(t, l.Selection())

	_, err = in.Eval(l.Name() + " selection set 0; " + l.Name() + " selection set 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, l.Selection())

	item, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", item)
	items, err := l.Get(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "a b c", items)

	require.NoError(t, l.Delete(0, 1))
	assert.Equal(t, []string{"c"}, l.Selection())
}

func TestListboxSelectionFailure(t *testing.T) {
	var buf bytes.Buffer
	in := tktest.New()
	app := feathertk.NewWithInterpreter(in,
		feathertk.WithLogger(logging.NewWriter(&buf, logiface.LevelWarning, false)))
	defer app.Close()

	l, err := app.Listbox()
	require.NoError(t, err)
	require.NoError(t, l.Insert(0, "a"))
	in.Fail(l.Name()+" curselection", "selection unavailable")

	assert.Nil(t, l.Selection())
	assert.Contains(t, buf.String(), "error getting listbox selection")
}

func TestText(t *testing.T) {
	app, _ := newApp(t)

	text, err := app.Text()
	require.NoError(t, err)
	require.NoError(t, text.Insert("1.0", "This is a text widget.\nYou can add multiple lines."))

	got, err := text.Get("1.0", "end")
	require.NoError(t, err)
	assert.Equal(t, "This is a text widget.\nYou can add multiple lines.\n", got)

	got, err = text.Get("2.0", "2.7")
	require.NoError(t, err)
	assert.Equal(t, "You can", got)

	require.NoError(t, text.Delete("1.0", "2.0"))
	require.NoError(t, text.Delete("1.0"))
	got, err = text.Get("1.0", "1.end")
	require.NoError(t, err)
	assert.Equal(t, "ou can add multiple lines.", got)
}

func TestCheckbutton(t *testing.T) {
	app, in := newApp(t)

	c, err := app.Checkbutton("Check me")
	require.NoError(t, err)
	assert.Equal(t, c.Name()+"_var", c.Variable())

	checked, err := c.Get()
	require.NoError(t, err)
	assert.False(t, checked)

	require.NoError(t, c.Select())
	checked, err = c.Get()
	require.NoError(t, err)
	assert.True(t, checked)

	// a click toggles back through the same variable
	_, err = in.Eval(c.Name() + " invoke")
	require.NoError(t, err)
	checked, err = c.Get()
	require.NoError(t, err)
	assert.False(t, checked)

	require.NoError(t, c.Select())
	require.NoError(t, c.Deselect())
	checked, err = c.Get()
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestRadiobuttonExclusive(t *testing.T) {
	app, _ := newApp(t)

	r1, err := app.Radiobutton("Option 1", "radioVar", "1")
	require.NoError(t, err)
	r2, err := app.Radiobutton("Option 2", "radioVar", "2")
	require.NoError(t, err)
	assert.Equal(t, "radioVar", r1.Variable())
	assert.Equal(t, "2", r2.Value())

	for _, order := range [][]*feathertk.Radiobutton{{r1, r2}, {r2, r1}, {r1, r1}, {r2, r2}} {
		for _, r := range order {
			require.NoError(t, r.Select())
			v, err := app.GetVariable("radioVar")
			require.NoError(t, err)
			assert.Equal(t, r.Value(), v)
		}
	}

	require.NoError(t, r1.Deselect())
	assert.Equal(t, "2", app.LookupVariable("radioVar"))
	require.NoError(t, r2.Deselect())
	assert.Equal(t, "", app.LookupVariable("radioVar"))
}

func TestScaleRoundTrip(t *testing.T) {
	app, in := newApp(t)

	s, err := app.Scale(0, 100, feathertk.Horizontal)
	require.NoError(t, err)
	w, _ := in.Window(s.Name())
	assert.Equal(t, "horizontal", w.Options["-orient"])

	v, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	require.NoError(t, s.Set(42))
	v, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestScrollbarCommand(t *testing.T) {
	app, in := newApp(t)

	text, err := app.Text()
	require.NoError(t, err)
	sb, err := app.Scrollbar(feathertk.Vertical)
	require.NoError(t, err)

	require.NoError(t, sb.SetCommand(text.Name()+" yview"))
	w, _ := in.Window(sb.Name())
	assert.Equal(t, text.Name()+" yview", w.Options["-command"])
	assert.Equal(t, "vertical", w.Options["-orient"])
}

func TestContainers(t *testing.T) {
	app, in := newApp(t)

	f, err := app.Frame()
	require.NoError(t, err)
	c, err := app.Canvas()
	require.NoError(t, err)

	fw, _ := in.Window(f.Name())
	cw, _ := in.Window(c.Name())
	assert.Equal(t, "frame", fw.Class)
	assert.Equal(t, "canvas", cw.Class)
}

func TestCanvasLines(t *testing.T) {
	app, in := newApp(t)
	c, err := app.Canvas()
	require.NoError(t, err)
	require.NoError(t, c.SetSize(200, 100))

	id, err := c.CreateLine([]float64{0, 0, 10.5, -4}, "-fill", "dark red")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	id, err = c.CreateLine([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	hist := in.History()
	assert.Equal(t, c.Name()+" create line 0 0 10.5 -4 -fill {dark red}", hist[len(hist)-2])

	w, _ := in.Window(c.Name())
	assert.Equal(t, "200", w.Options["-width"])
	require.Len(t, w.Shapes, 2)
	assert.Equal(t, "dark red", w.Shapes[0].Options["-fill"])

	_, err = c.CreateLine([]float64{1, 2, 3})
	assert.ErrorContains(t, err, "got 3")

	require.NoError(t, c.Delete(1))
	require.Len(t, w.Shapes, 1)
	assert.Equal(t, 2, w.Shapes[0].ID)
	require.NoError(t, c.Delete("all"))
	assert.Empty(t, w.Shapes)
}

func TestCommandReceivesArgs(t *testing.T) {
	app, _ := newApp(t)
	require.NoError(t, app.Command("greet", func(args []string) (string, error) {
		return "hello " + strings.Join(args, ","), nil
	}))
	out, err := app.Eval("greet a {b c}")
	require.NoError(t, err)
	assert.Equal(t, "hello a,b c", out)
}
