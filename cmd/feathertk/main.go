// feathertk runs Tk demos, Tcl/Tk scripts and an interactive shell on the
// native Tcl and Tk libraries.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feather-lang/feathertk"
	"github.com/feather-lang/feathertk/config"
	"github.com/feather-lang/feathertk/internal/logging"
)

// Tk must run on the main thread on macOS; keep main on the thread it
// started on.
func init() {
	runtime.LockOSThread()
}

type globalFlags struct {
	configPath string
	logLevel   string
	libDir     string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "feathertk",
		Short:         "Tk GUIs driven from Go through an embedded Tcl interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to feathertk.yaml (default: ./feathertk.yaml if present)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or off")
	root.PersistentFlags().StringVar(&flags.libDir, "lib-dir", "", "directory holding the Tcl and Tk shared libraries")

	root.AddCommand(
		newDemoCommand(&flags),
		newRunCommand(&flags),
		newReplCommand(&flags),
	)
	return root
}

// appOptions resolves configuration from the file, the environment and the
// command line, in increasing precedence, and returns the App options for it.
func (f *globalFlags) appOptions() ([]feathertk.Option, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadOptional(".")
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.libDir != "" {
		cfg.Library.Dir = f.libDir
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return []feathertk.Option{
		feathertk.WithConfig(cfg),
		feathertk.WithLogger(log),
	}, nil
}

func newLogger(c config.LogConfig) (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if level >= logiface.LevelTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	var console bool
	switch strings.ToLower(c.Format) {
	case config.FormatConsole:
		console = true
	case config.FormatJSON:
		console = false
	default:
		console = term.IsTerminal(int(os.Stderr.Fd()))
	}
	return logging.NewWriter(os.Stderr, level, console), nil
}
