package feathertk

// CreateApp returns a new App with the root window titled and sized. An
// empty geometry keeps the window's natural size. The icon named by the
// configuration is applied, falling back to assets/logo.png when that file
// exists.
func CreateApp(title, geometry string, opts ...Option) (_ *App, err error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := a.Title(title); err != nil {
		return nil, err
	}
	if geometry != "" {
		if err := a.Geometry(geometry); err != nil {
			return nil, err
		}
	}
	if icon := a.cfg.IconPath(); icon != "" {
		if err := a.SetIcon(icon); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Run enters the main loop of app and closes it on the way out, whether the
// loop returns normally, fails or panics. A MainLoop error takes precedence
// over a Close error.
func Run(app *App) (err error) {
	defer func() {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()
	return app.MainLoop()
}
