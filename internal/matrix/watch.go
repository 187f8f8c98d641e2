package matrix

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates cached matrices when their files change on disk
// and reports the changed paths so an interactive caller can refresh
// its view. Each watched file's parent directory is watched, which
// survives the rename-and-replace dance editors and sync tools do.
type Watcher struct {
	fw      *fsnotify.Watcher
	acc     *Accessor
	watched map[string]bool
	events  chan string
	done    chan struct{}
	logger  *zap.Logger
}

// Watch starts watching the given files for changes.
func (a *Accessor) Watch(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting file watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		acc:     a,
		watched: make(map[string]bool),
		events:  make(chan string, 8),
		done:    make(chan struct{}),
		logger:  a.logger,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

// Events delivers paths whose matrix was invalidated. The channel is
// closed when the watcher shuts down; slow consumers lose events rather
// than blocking the watch loop.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.watched[abs] {
				continue
			}
			w.logger.Debug("matrix file changed", zap.String("path", abs))
			w.acc.Invalidate(abs)
			select {
			case w.events <- abs:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}
