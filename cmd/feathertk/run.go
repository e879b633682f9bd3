package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/feather-lang/feathertk"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var title, geometry string

	cmd := &cobra.Command{
		Use:   "run <file.tcl>",
		Short: "Evaluate a Tcl/Tk script, then run the event loop until the window closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.appOptions()
			if err != nil {
				return err
			}
			if title == "" {
				title = filepath.Base(args[0])
			}
			return runScript(args[0], title, geometry, opts...)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "window title (default: the script file name)")
	cmd.Flags().StringVar(&geometry, "geometry", "", "window geometry, e.g. 400x300")
	return cmd
}

func runScript(path, title, geometry string, opts ...feathertk.Option) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	app, err := feathertk.CreateApp(title, geometry, opts...)
	if err != nil {
		return err
	}
	if _, err := app.Eval(string(src)); err != nil {
		app.Close()
		return err
	}
	return feathertk.Run(app)
}
