package main

import (
	"fmt"
	"io"
	"math"

	"github.com/feather-lang/feathertk"
	"github.com/feather-lang/feathertk/script"
)

const (
	turtleWidth  = 400
	turtleHeight = 300
	turtleScript = "forward 100; right 90; forward 100; right 90; forward 100; right 90; forward 100"
)

// turtle draws line segments on a canvas as it moves.
type turtle struct {
	canvas  *feathertk.Canvas
	x, y    float64
	angle   float64 // degrees, 0 = right, 90 = up
	penDown bool
	color   string
}

func newTurtle(canvas *feathertk.Canvas) *turtle {
	t := &turtle{canvas: canvas, color: "black"}
	t.home()
	return t
}

func (t *turtle) home() {
	t.x, t.y = turtleWidth/2, turtleHeight/2
	t.angle = 90
	t.penDown = true
}

func (t *turtle) forward(dist float64) error {
	rad := t.angle * math.Pi / 180
	x := t.x + dist*math.Cos(rad)
	y := t.y - dist*math.Sin(rad) // canvas y grows downwards
	if t.penDown {
		if _, err := t.canvas.CreateLine([]float64{round(t.x), round(t.y), round(x), round(y)}, "-fill", t.color); err != nil {
			return err
		}
	}
	t.x, t.y = x, y
	return nil
}

func (t *turtle) clear() error {
	t.home()
	return t.canvas.Delete("all")
}

// round drops float noise from the trigonometry so whole-pixel moves draw
// whole-pixel lines.
func round(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// register installs the turtle commands in app.
func (t *turtle) register(app *feathertk.App) error {
	move := func(sign float64, apply func(float64) error) func([]string) (string, error) {
		return func(args []string) (string, error) {
			if len(args) != 1 {
				return "", fmt.Errorf("wrong # args: expected a number")
			}
			n, err := script.Value(args[0]).Float()
			if err != nil {
				return "", fmt.Errorf("expected number but got %q", args[0])
			}
			return "", apply(sign * n)
		}
	}
	turn := func(deg float64) error {
		t.angle += deg
		return nil
	}
	noArgs := func(fn func() error) func([]string) (string, error) {
		return func([]string) (string, error) { return "", fn() }
	}

	cmds := map[string]func([]string) (string, error){
		"forward": move(1, t.forward),
		"back":    move(-1, t.forward),
		"left":    move(1, turn),
		"right":   move(-1, turn),
		"penup": noArgs(func() error {
			t.penDown = false
			return nil
		}),
		"pendown": noArgs(func() error {
			t.penDown = true
			return nil
		}),
		"color": func(args []string) (string, error) {
			if len(args) != 1 {
				return "", fmt.Errorf("wrong # args: should be \"color name\"")
			}
			t.color = args[0]
			return "", nil
		},
		"clear": noArgs(t.clear),
	}
	for name, fn := range cmds {
		if err := app.Command(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func turtleDemo(app *feathertk.App, out io.Writer) error {
	canvas, err := app.Canvas()
	if err != nil {
		return err
	}
	if err := canvas.SetSize(turtleWidth, turtleHeight); err != nil {
		return err
	}
	if err := canvas.Pack(); err != nil {
		return err
	}
	t := newTurtle(canvas)
	if err := t.register(app); err != nil {
		return err
	}

	entry, err := app.Entry()
	if err != nil {
		return err
	}
	if err := entry.Pack("-fill", "x"); err != nil {
		return err
	}
	if err := entry.Insert(0, turtleScript); err != nil {
		return err
	}
	draw, err := app.Button("Draw", func() {
		src, err := entry.Get()
		if err != nil {
			return
		}
		if _, err := app.Eval(src); err != nil {
			fmt.Fprintln(out, "error:", errorMessage(err))
		}
	})
	if err != nil {
		return err
	}
	if err := draw.Pack("-side", "left"); err != nil {
		return err
	}
	reset, err := app.Button("Clear", func() {
		if err := t.clear(); err != nil {
			fmt.Fprintln(out, "error:", errorMessage(err))
		}
	})
	if err != nil {
		return err
	}
	return reset.Pack("-side", "left")
}
