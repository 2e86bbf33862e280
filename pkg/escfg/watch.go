package escfg

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jg-phare/esl/pkg/esllog"
)

// reloadDebounce coalesces the burst of fsnotify events a single save
// typically produces (write, then chmod) into one reload.
const reloadDebounce = 250 * time.Millisecond

// Watcher watches one config file for changes and invokes onChange
// with the freshly reloaded Config each time it is saved.
type Watcher struct {
	path     string
	onChange func(*Config)
	logger   esllog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWatcher builds a Watcher for path. Call Start to begin watching. A
// nil logger defaults to a no-op sink (spec.md §1.1: logging is an
// externally injected, non-global concern).
func NewWatcher(path string, onChange func(*Config), logger esllog.Logger) *Watcher {
	return &Watcher{path: path, onChange: onChange, logger: esllog.OrNop(logger)}
}

// Start begins watching the config file in a background goroutine.
// Canceling ctx, or calling Stop, ends the watch.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.path); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(ctx, fsw)
	return nil
}

// Stop ends the watch started by Start. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, w.reload)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("escfg: watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Errorf("escfg: reload of %s failed: %v", w.path, err)
		return
	}
	w.onChange(cfg)
}
