package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/feather-lang/feathertk"
)

type demo struct {
	summary  string
	title    string
	geometry string
	build    func(app *feathertk.App, out io.Writer) error
}

var demos = map[string]demo{
	"basic": {
		summary:  "a window with a label",
		title:    "Basic Window",
		geometry: "300x200",
		build:    basicDemo,
	},
	"button": {
		summary:  "a button that changes a label",
		title:    "Button and Label",
		geometry: "300x200",
		build:    buttonDemo,
	},
	"entry": {
		summary:  "a text entry read back by a button",
		title:    "Entry Example",
		geometry: "300x200",
		build:    entryDemo,
	},
	"listbox": {
		summary:  "a listbox and its selection",
		title:    "Listbox Example",
		geometry: "300x200",
		build:    listboxDemo,
	},
	"radio": {
		summary:  "two radiobuttons sharing a variable",
		title:    "Radio Button Example",
		geometry: "300x200",
		build:    radioDemo,
	},
	"scale": {
		summary:  "a horizontal scale",
		title:    "Scale Example",
		geometry: "300x200",
		build:    scaleDemo,
	},
	"text": {
		summary:  "a multi-line text area",
		title:    "Text Widget Example",
		geometry: "500x450",
		build:    textDemo,
	},
	"checkbox": {
		summary:  "a checkbutton and its state",
		title:    "Checkbox Example",
		geometry: "300x200",
		build:    checkboxDemo,
	},
	"image": {
		summary:  "photo images shown in a label",
		title:    "Image Example",
		geometry: "400x400",
		build:    imageDemo,
	},
	"turtle": {
		summary:  "turtle graphics on a canvas",
		title:    "Turtle Graphics",
		geometry: "420x380",
		build:    turtleDemo,
	},
}

// Images used by the image demo, relative to the working directory.
const (
	demoImage    = "assets/logo.png"
	demoAltImage = "assets/heart.png"
)

func newDemoCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [name]",
		Short: "Run one of the bundled examples, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listDemos(cmd.OutOrStdout())
			}
			opts, err := flags.appOptions()
			if err != nil {
				return err
			}
			return runDemo(args[0], cmd.OutOrStdout(), opts...)
		},
	}
}

func listDemos(w io.Writer) error {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, demos[name].summary)
	}
	return tw.Flush()
}

func runDemo(name string, out io.Writer, opts ...feathertk.Option) error {
	d, ok := demos[name]
	if !ok {
		return fmt.Errorf("unknown demo %q (run \"feathertk demo\" for a list)", name)
	}
	app, err := feathertk.CreateApp(d.title, d.geometry, opts...)
	if err != nil {
		return err
	}
	if err := d.build(app, out); err != nil {
		app.Close()
		return fmt.Errorf("demo %s: %w", name, err)
	}
	return feathertk.Run(app)
}

func basicDemo(app *feathertk.App, _ io.Writer) error {
	label, err := app.Label("Welcome to Tk with Go!")
	if err != nil {
		return err
	}
	return label.Pack()
}

func buttonDemo(app *feathertk.App, _ io.Writer) error {
	label, err := app.Label("Click the button!")
	if err != nil {
		return err
	}
	if err := label.Pack(); err != nil {
		return err
	}
	button, err := app.Button("Click me!", func() {
		label.SetText("Button was clicked!")
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func entryDemo(app *feathertk.App, out io.Writer) error {
	entry, err := app.Entry()
	if err != nil {
		return err
	}
	if err := entry.Pack(); err != nil {
		return err
	}
	if err := entry.Insert(0, "Type something here"); err != nil {
		return err
	}
	button, err := app.Button("Get Entry Text", func() {
		text, err := entry.Get()
		if err != nil {
			return
		}
		fmt.Fprintln(out, "Entry text:", text)
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func listboxDemo(app *feathertk.App, out io.Writer) error {
	listbox, err := app.Listbox()
	if err != nil {
		return err
	}
	if err := listbox.Pack(); err != nil {
		return err
	}
	if err := listbox.Insert(0, "Item 1", "Item 2", "Item 3"); err != nil {
		return err
	}
	button, err := app.Button("Get Selected Item", func() {
		fmt.Fprintf(out, "Selected item: %q\n", listbox.Selection())
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func radioDemo(app *feathertk.App, out io.Writer) error {
	const radioVar = "radioVar"
	for _, opt := range []struct{ text, value string }{
		{"Option 1", "1"},
		{"Option 2", "2"},
	} {
		r, err := app.Radiobutton(opt.text, radioVar, opt.value)
		if err != nil {
			return err
		}
		if err := r.Pack(); err != nil {
			return err
		}
	}
	button, err := app.Button("Get Radio Selection", func() {
		fmt.Fprintln(out, "Radio selection:", app.LookupVariable(radioVar))
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func scaleDemo(app *feathertk.App, out io.Writer) error {
	scale, err := app.Scale(0, 100, feathertk.Horizontal)
	if err != nil {
		return err
	}
	if err := scale.Pack(); err != nil {
		return err
	}
	button, err := app.Button("Get Scale Value", func() {
		v, err := scale.Get()
		if err != nil {
			return
		}
		fmt.Fprintln(out, "Scale value:", v)
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func textDemo(app *feathertk.App, out io.Writer) error {
	text, err := app.Text()
	if err != nil {
		return err
	}
	if err := text.Pack(); err != nil {
		return err
	}
	if err := text.Insert("1.0", "This is a text widget.\nYou can add multiple lines."); err != nil {
		return err
	}
	button, err := app.Button("Get Text Content", func() {
		content, err := text.Get("1.0", "end")
		if err != nil {
			return
		}
		fmt.Fprint(out, "Text content: ", content)
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func checkboxDemo(app *feathertk.App, out io.Writer) error {
	check, err := app.Checkbutton("Check me")
	if err != nil {
		return err
	}
	if err := check.Pack(); err != nil {
		return err
	}
	button, err := app.Button("Get Checkbox State", func() {
		checked, err := check.Get()
		if err != nil {
			return
		}
		fmt.Fprintln(out, "Checkbox state:", checked)
	})
	if err != nil {
		return err
	}
	return button.Pack()
}

func imageDemo(app *feathertk.App, _ io.Writer) error {
	label, err := app.Label("")
	if err != nil {
		return err
	}
	if err := label.Pack(); err != nil {
		return err
	}
	img, err := app.CreateImage(demoImage)
	if err != nil {
		return err
	}
	if err := label.SetImage(img); err != nil {
		return err
	}
	button, err := app.Button("Change Image", func() {
		alt, err := app.CreateImage(demoAltImage)
		if err != nil {
			return
		}
		label.SetImage(alt)
	})
	if err != nil {
		return err
	}
	return button.Pack()
}
