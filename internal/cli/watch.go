package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Watcher re-runs a callback whenever the watched config file changes.
// Events are debounced so editors that write in several steps trigger a
// single regeneration, and a rate limiter absorbs event floods.
type Watcher struct {
	Path string
	Log  zerolog.Logger
	Run  func()

	// Debounce delays the rerun after the last event; zero defaults to
	// 250ms.
	Debounce time.Duration
}

// Watch blocks until ctx is done, rerunning on file changes. The parent
// directory is watched rather than the file itself so atomic
// rename-into-place saves keep working.
func (w *Watcher) Watch(ctx context.Context) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.Path)
	file := filepath.Base(w.Path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	lim := rate.NewLimiter(rate.Every(time.Second), 3)

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	schedule := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		w.Log.Debug().Str("path", w.Path).Msg("config change detected; scheduling rerun")
		timer = time.AfterFunc(debounce, w.Run)
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !lim.Allow() {
				w.Log.Debug().Str("path", w.Path).Msg("change burst; dropping event")
				continue
			}
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("watch error")
		}
	}
}
