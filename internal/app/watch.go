package app

import (
	"context"
	"errors"

	"github.com/dshills/sideways/internal/config"
)

// Watch reloads the application whenever the configuration file, a
// profile file or a plugin script changes. It blocks until ctx is done.
// Files added by a reload are watched from then on.
func (app *Application) Watch(ctx context.Context, opts ...config.WatcherOption) error {
	log := app.Logger().WithComponent("watch")

	w, err := config.NewWatcher(nil, opts...)
	if err != nil {
		return NewOperationError("watch", "", err)
	}
	defer w.Close()

	app.watchFiles(w, log)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			log.Debug("%s changed", ev.Path)
			if err := app.Reload(ctx); err != nil {
				if errors.Is(err, ErrClosed) {
					return nil
				}
				log.Error("reload failed, keeping previous configuration: %v", err)
				continue
			}
			app.watchFiles(w, log)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("%v", err)
		}
	}
}

func (app *Application) watchFiles(w *config.Watcher, log *Logger) {
	cfg := app.Config()

	var files []string
	if p := cfg.Path(); p != "" {
		files = append(files, p)
	}
	files = append(files, cfg.ProfileFiles()...)
	files = append(files, cfg.Scripts()...)

	for _, f := range files {
		if err := w.Add(f); err != nil {
			log.Warn("cannot watch %s: %v", f, err)
		}
	}
}
