package config

import (
	"github.com/dshills/framekit/internal/config/watcher"
)

// Watch reloads the file at path each time it changes and passes the
// reloaded configuration, or the load error, to fn. Removing or renaming
// the file away is ignored. The returned function stops watching.
func Watch(path string, fn func(*Config, error)) (stop func() error, err error) {
	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Close()
		return nil, err
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		fn(Load(path))
	})
	w.Start()

	return w.Close, nil
}
