package tktest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feather-lang/feathertk/tcl"
	"github.com/feather-lang/feathertk/tktest"
)

func TestEvalSubstitution(t *testing.T) {
	in := tktest.New()

	if _, err := in.Eval("set name World"); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	result, err := in.Eval(`set greeting "Hello, $name! [set name]"`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result != "Hello, World! World" {
		t.Errorf("expected 'Hello, World! World', got %q", result)
	}

	result, err = in.Eval("set a {x $name [y]}; set b \\{")
	require.NoError(t, err)
	assert.Equal(t, "{", result)
	v, _ := in.Var("a")
	assert.Equal(t, "x $name [y]", v)
}

func TestEvalError(t *testing.T) {
	in := tktest.New()

	_, err := in.Eval("set missing")
	var evalErr *tcl.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, `can't read "missing": no such variable`, evalErr.Result)
	assert.Equal(t, "set missing", evalErr.Command)
	assert.Contains(t, evalErr.ErrorInfo, "while executing")
	assert.Equal(t, evalErr.ErrorInfo, in.GetVar("errorInfo"))

	_, err = in.Eval("nosuchcommand")
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, `invalid command name "nosuchcommand"`, evalErr.Result)
}

func TestGetVarLenient(t *testing.T) {
	in := tktest.New()
	assert.Equal(t, "", in.GetVar("unset"))
}

func TestCreateCommand(t *testing.T) {
	in := tktest.New()

	var got []string
	require.NoError(t, in.CreateCommand("hello", func(args []string) (string, error) {
		got = args
		return "hi", nil
	}))
	result, err := in.Eval("hello a {b c}")
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
	if diff := cmp.Diff([]string{"a", "b c"}, got); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, in.CreateCommand("hello", func([]string) (string, error) {
		return "", errors.New("boom")
	}))
	_, err = in.Eval("hello")
	var evalErr *tcl.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "boom", evalErr.Result)

	require.NoError(t, in.CreateCommand("crash", func([]string) (string, error) {
		panic("oops")
	}))
	_, err = in.Eval("crash")
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, evalErr.Result, "oops")
}

func TestClose(t *testing.T) {
	in := tktest.New()
	require.NoError(t, in.Close())
	require.NoError(t, in.Close())
	assert.Equal(t, 2, in.CloseCalls())
	assert.True(t, in.Closed())

	_, err := in.Eval("set x 1")
	assert.ErrorIs(t, err, tcl.ErrClosed)
	assert.ErrorIs(t, in.CreateCommand("x", nil), tcl.ErrClosed)
}

func TestFail(t *testing.T) {
	in := tktest.New()
	in.Fail(".l configure", "injected")

	_, err := in.Eval("label .l")
	require.NoError(t, err)
	_, err = in.Eval(".l configure -text x")
	var evalErr *tcl.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "injected", evalErr.Result)

	_, err = in.Eval(".l cget -text")
	assert.NoError(t, err)
}

func TestWidgetCreation(t *testing.T) {
	in := tktest.New()

	_, err := in.Eval(`label .w1 -text "hello world"`)
	require.NoError(t, err)
	w, ok := in.Window(".w1")
	require.True(t, ok)
	assert.Equal(t, "label", w.Class)
	assert.Equal(t, "hello world", w.Options["-text"])

	_, err = in.Eval("label .w1")
	assert.ErrorContains(t, err, `window name "w1" already exists in parent`)

	_, err = in.Eval("button .missing.b")
	assert.ErrorContains(t, err, "bad window path name")

	_, err = in.Eval("button .b -text")
	assert.ErrorContains(t, err, `value for "-text" missing`)
}

func TestButtonInvoke(t *testing.T) {
	in := tktest.New()
	clicks := 0
	require.NoError(t, in.CreateCommand("clicked", func([]string) (string, error) {
		clicks++
		return "", nil
	}))
	_, err := in.Eval("button .b -command clicked")
	require.NoError(t, err)

	require.NoError(t, in.Invoke(".b"))
	require.NoError(t, in.Invoke(".b"))
	assert.Equal(t, 2, clicks)
}

func TestCheckbutton(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("checkbutton .c -variable cv")
	require.NoError(t, err)

	v, _ := in.Var("cv")
	assert.Equal(t, "0", v)

	for _, step := range []struct{ cmd, want string }{
		{".c select", "1"},
		{".c deselect", "0"},
		{".c toggle", "1"},
		{".c invoke", "0"},
	} {
		_, err := in.Eval(step.cmd)
		require.NoError(t, err, step.cmd)
		v, _ := in.Var("cv")
		assert.Equal(t, step.want, v, step.cmd)
	}
}

func TestRadiobuttonGroup(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("radiobutton .a -variable choice -value 1; radiobutton .b -variable choice -value 2")
	require.NoError(t, err)

	_, err = in.Eval(".a select")
	require.NoError(t, err)
	assert.Equal(t, "1", in.GetVar("choice"))

	_, err = in.Eval(".b select")
	require.NoError(t, err)
	assert.Equal(t, "2", in.GetVar("choice"))

	// deselecting the unselected button leaves the variable alone
	_, err = in.Eval(".a deselect")
	require.NoError(t, err)
	assert.Equal(t, "2", in.GetVar("choice"))

	_, err = in.Eval(".b deselect")
	require.NoError(t, err)
	assert.Equal(t, "", in.GetVar("choice"))
}

func TestScale(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("scale .s -from 0 -to 100 -orient horizontal")
	require.NoError(t, err)

	for _, tc := range []struct{ set, want string }{
		{"42", "42"},
		{"42.4", "42"},
		{"150", "100"},
		{"-3", "0"},
	} {
		_, err := in.Eval(".s set " + tc.set)
		require.NoError(t, err)
		got, err := in.Eval(".s get")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "set %s", tc.set)
	}

	_, err = in.Eval(".s set abc")
	assert.ErrorContains(t, err, "expected floating-point number")
}

func TestEntry(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("entry .e")
	require.NoError(t, err)

	steps := []struct{ cmd, want string }{
		{".e insert 0 {Type here}", "Type here"},
		{".e insert end !", "Type here!"},
		{".e insert 4 {s}", "Types here!"},
		{".e delete 0", "ypes here!"},
		{".e delete 4 end", "ypes"},
	}
	for _, step := range steps {
		_, err := in.Eval(step.cmd)
		require.NoError(t, err, step.cmd)
		got, err := in.Eval(".e get")
		require.NoError(t, err)
		assert.Equal(t, step.want, got, step.cmd)
	}
}

func TestListbox(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("listbox .l; .l insert 0 a b c")
	require.NoError(t, err)

	sel, err := in.Eval(".l curselection")
	require.NoError(t, err)
	assert.Equal(t, "", sel)

	_, err = in.Eval(".l selection set 1 2")
	require.NoError(t, err)
	sel, err = in.Eval(".l curselection")
	require.NoError(t, err)
	assert.Equal(t, "1 2", sel)

	_, err = in.Eval(".l insert 0 z")
	require.NoError(t, err)
	w, _ := in.Window(".l")
	if diff := cmp.Diff([]string{"z", "a", "b", "c"}, w.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, w.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	got, err := in.Eval(".l get 0 end")
	require.NoError(t, err)
	assert.Equal(t, "z a b c", got)

	_, err = in.Eval(".l delete 0 1")
	require.NoError(t, err)
	got, err = in.Eval(".l get 0")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	sel, err = in.Eval(".l curselection")
	require.NoError(t, err)
	assert.Equal(t, "0 1", sel)
}

func TestText(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("text .t")
	require.NoError(t, err)

	_, err = in.Eval(`.t insert 1.0 "first line\nsecond"`)
	require.NoError(t, err)

	got, err := in.Eval(".t get 1.0 end")
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond\n", got)

	got, err = in.Eval(".t get 2.0 2.end")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = in.Eval(".t get 1.6")
	require.NoError(t, err)
	assert.Equal(t, "l", got)

	_, err = in.Eval(".t insert end { line}")
	require.NoError(t, err)
	_, err = in.Eval(".t delete 1.0 2.0")
	require.NoError(t, err)
	got, err = in.Eval(".t get 1.0 end-1c")
	require.NoError(t, err)
	assert.Equal(t, "second line", got)

	// the trailing newline survives deleting everything
	_, err = in.Eval(".t delete 1.0 end")
	require.NoError(t, err)
	got, err = in.Eval(".t get 1.0 end")
	require.NoError(t, err)
	assert.Equal(t, "\n", got)
}

func TestBindAndGenerate(t *testing.T) {
	in := tktest.New()
	fired := 0
	require.NoError(t, in.CreateCommand("onclick", func([]string) (string, error) {
		fired++
		return "", nil
	}))
	_, err := in.Eval("frame .f; bind .f <Button-1> onclick")
	require.NoError(t, err)

	script, ok := in.Binding(".f", "<Button-1>")
	require.True(t, ok)
	assert.Equal(t, "onclick", script)

	require.NoError(t, in.Generate(".f", "Button-1"))
	require.NoError(t, in.Generate(".f", "Enter"))
	assert.Equal(t, 1, fired)

	_, err = in.Eval("bind .f Button-1 x")
	assert.ErrorContains(t, err, "bad event pattern")
}

func TestPack(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("label .a; label .b")
	require.NoError(t, err)

	_, err = in.Eval("pack .b -pady 10; pack .a; pack .b")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{".a", ".b"}, in.Packed()); diff != "" {
		t.Errorf("packed mismatch (-want +got):\n%s", diff)
	}

	_, err = in.Eval("pack .nope")
	assert.ErrorContains(t, err, `bad window path name ".nope"`)

	_, err = in.Eval("pack .a -side")
	assert.ErrorContains(t, err, `value for "-side" missing`)
}

func TestWindowManagerAndImages(t *testing.T) {
	in := tktest.New()
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("png"), 0o644))

	_, err := in.Eval("wm title . {Hello Tk}; wm geometry . 300x200")
	require.NoError(t, err)
	assert.Equal(t, "Hello Tk", in.Title())
	assert.Equal(t, "300x200", in.Geometry())

	_, err = in.Eval("wm iconphoto . -default [image create photo -file {" + logo + "}]")
	require.NoError(t, err)
	assert.Equal(t, "image1", in.Icon())
	file, ok := in.Image("image1")
	require.True(t, ok)
	assert.Equal(t, logo, file)

	_, err = in.Eval("image create photo .w9 -file {" + filepath.Join(dir, "missing.png") + "}")
	assert.ErrorContains(t, err, "couldn't open")

	_, err = in.Eval("label .l; .l configure -image nosuch")
	assert.ErrorContains(t, err, `image "nosuch" doesn't exist`)
}

func TestMainLoop(t *testing.T) {
	in := tktest.New()
	calls := 0
	in.OnMainLoop = func(in *tktest.Interp) error {
		calls++
		_, err := in.Eval("destroy .")
		return err
	}

	_, err := in.Eval("tkwait window .")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, in.Destroyed())

	got, err := in.Eval("winfo exists .")
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestInfoComplete(t *testing.T) {
	in := tktest.New()
	for src, want := range map[string]string{
		"set x 1":      "1",
		"set x {":      "0",
		"set x [foo":   "0",
		`set x "abc`:   "0",
		"set x {a} b":  "1",
		`set x \{`:     "1",
		"proc p {} {}": "1",
	} {
		_, err := in.Eval("set src " + quoteBraces(src))
		require.NoError(t, err)
		got, err := in.Eval("info complete $src")
		require.NoError(t, err)
		assert.Equal(t, want, got, src)
	}
}

// quoteBraces escapes every Tcl metacharacter with a backslash.
func quoteBraces(s string) string {
	out := make([]byte, 0, 2*len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '{', '}', '[', ']', '"', '$', '\\', ' ', ';':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func TestCanvas(t *testing.T) {
	in := tktest.New()
	_, err := in.Eval("canvas .c")
	require.NoError(t, err)

	id, err := in.Eval("set x 5; .c create line 0 0 $x -5 10 10 -fill blue -width 2")
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	id, err = in.Eval(".c create line 1 1 2 2")
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	w, _ := in.Window(".c")
	want := []tktest.Shape{
		{ID: 1, Type: "line", Coords: []float64{0, 0, 5, -5, 10, 10}, Options: map[string]string{"-fill": "blue", "-width": "2"}},
		{ID: 2, Type: "line", Coords: []float64{1, 1, 2, 2}, Options: map[string]string{}},
	}
	if diff := cmp.Diff(want, w.Shapes); diff != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{
		".c create line 0 0 1",
		".c create line 0 0 1 x",
		".c create oval 0 0 1 1",
		".c create line 0 0 1 1 -fill",
	} {
		_, err := in.Eval(bad)
		assert.Error(t, err, bad)
	}

	ids, err := in.Eval(".c find all")
	require.NoError(t, err)
	assert.Equal(t, "1 2", ids)

	_, err = in.Eval(".c delete 1 nosuchtag")
	require.NoError(t, err)
	ids, _ = in.Eval(".c find all")
	assert.Equal(t, "2", ids)

	// ids are not reused after delete
	id, _ = in.Eval(".c create line 0 0 1 1")
	assert.Equal(t, "3", id)
	_, err = in.Eval(".c delete all")
	require.NoError(t, err)
	assert.Empty(t, w.Shapes)
}
