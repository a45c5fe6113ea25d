package patternpack

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Registry whenever a pack file in dir changes on disk,
// generalizing the config-file watch cobra.OnInitialize sets up for
// ~/.cyro.yaml in the teacher CLI to a whole directory of pattern packs.
//
// The reload callback receives the freshly loaded Registry; it is the
// caller's responsibility to swap it into whatever holds the active
// registry (e.g. atomically via atomic.Pointer), since Registry itself is
// immutable once built.
type Watcher struct {
	fsw      *fsnotify.Watcher
	packs    []string
	dir      string
	onReload func(*Registry, error)
	logger   *slog.Logger
	done     chan struct{}
}

// WatchDir starts watching dir and, on every write, create or rename event
// for any file in it, reloads the given pack names and invokes onReload
// with the freshly-built Registry (or the load error). Events are not
// debounced. Call Close to stop watching.
func WatchDir(dir string, packNames []string, logger *slog.Logger, onReload func(*Registry, error)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		packs:    packNames,
		dir:      dir,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Info("pattern pack directory changed, reloading", "path", event.Name)
			reg, err := Load(w.packs, w.dir)
			if err != nil {
				w.logger.Warn("pattern pack reload failed, keeping previous registry", "error", err)
			}
			w.onReload(reg, err)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("pattern pack watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
