package chart

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
	"go.uber.org/zap"
)

// ReloadCallback receives the freshly loaded chart.
type ReloadCallback func(*Chart) error

// Watcher re-loads a chart file whenever it changes on disk.
type Watcher struct {
	path           string
	provider       Provider
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	logger         *zap.SugaredLogger
}

// NewWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place.
func NewWatcher(path string, provider Provider, log *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch chart file %s", abs)
	}

	return &Watcher{
		path:           abs,
		provider:       provider,
		watcher:        fw,
		debouncePeriod: 300 * time.Millisecond,
		logger:         logger.OrNop(log).Named("chart.watcher"),
	}, nil
}

// OnReload registers a callback to be called when the chart is reloaded
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// SetDebounce sets how long the watcher waits for writes to settle before
// reloading. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debouncePeriod = d
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Infow("Chart file changed",
				logger.FieldChart, event.Name,
				"op", event.Op.String())
			w.scheduleReload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Chart watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers reload
func (w *Watcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(ctx); err != nil {
			w.logger.Errorw("Chart reload failed", logger.FieldError, err)
		}
	})
}

func (w *Watcher) reload(ctx context.Context) error {
	c, err := w.provider.Load(ctx, w.path)
	if err != nil {
		return err
	}

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(c); err != nil {
			// Continue calling other callbacks even if one fails
			w.logger.Warnw("Chart reload callback error", logger.FieldError, err)
		}
	}
	return nil
}
