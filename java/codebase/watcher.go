package codebase

import (
	"io/fs"
	"time"
)

// FileWatcher polls the codebase for .jexpr files that appeared, changed
// or disappeared since the previous poll. Changed files are rescanned and
// deleted ones removed before the change callback runs.
type FileWatcher struct {
	codebase *Codebase
	interval time.Duration
	onChange func(paths []string)
	seen     map[string]time.Time
	stop     chan struct{}
	done     chan struct{}
}

type WatchOption func(*FileWatcher)

// WithInterval sets the time between polls. The default is one second.
func WithInterval(d time.Duration) WatchOption {
	return func(w *FileWatcher) {
		w.interval = d
	}
}

// OnChange registers fn to receive the paths touched by each poll.
func OnChange(fn func(paths []string)) WatchOption {
	return func(w *FileWatcher) {
		w.onChange = fn
	}
}

func NewFileWatcher(c *Codebase, opts ...WatchOption) *FileWatcher {
	w := &FileWatcher{
		codebase: c,
		interval: time.Second,
		seen:     make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start polls once right away and then every interval until Stop.
func (w *FileWatcher) Start() {
	go w.loop()
}

// Stop ends polling and waits for a poll in progress to finish.
func (w *FileWatcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *FileWatcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if changed := w.scan(); len(changed) > 0 && w.onChange != nil {
			w.onChange(changed)
		}
		select {
		case <-w.stop:
			return
		case <-ticker.C:
		}
	}
}

// scan reports the paths it rescanned or removed.
func (w *FileWatcher) scan() []string {
	var changed []string
	present := make(map[string]bool)

	w.codebase.walk(func(path string, d fs.DirEntry) {
		info, err := d.Info()
		if err != nil {
			return
		}
		present[path] = true
		if last, ok := w.seen[path]; ok && !info.ModTime().After(last) {
			return
		}
		w.seen[path] = info.ModTime()
		if err := w.codebase.ScanFile(path); err != nil {
			w.codebase.log.Warningf("rescan %s: %v", path, err)
		}
		changed = append(changed, path)
	})

	for path := range w.seen {
		if !present[path] {
			delete(w.seen, path)
			w.codebase.RemoveFile(path)
			changed = append(changed, path)
		}
	}
	return changed
}
