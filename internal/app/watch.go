package app

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls a file's modification time and triggers a callback when
// it changes. The viewer uses it to reload a drawing that an external CAD
// program rewrites while the viewer has it open.
type FileWatcher struct {
	mu            sync.Mutex
	path          string
	lastModTime   time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChange      func(path string)
}

// NewFileWatcher creates a watcher polling at the given interval.
func NewFileWatcher(checkInterval time.Duration) *FileWatcher {
	return &FileWatcher{checkInterval: checkInterval}
}

// OnChange sets the callback to invoke when the watched file changes.
// The callback is called from a background goroutine - use appropriate
// synchronization if updating UI.
func (w *FileWatcher) OnChange(callback func(path string)) {
	w.onChange = callback
}

// Watch switches the watcher to a new file, replacing any previous target.
// A missing file is tolerated; the change fires once it appears.
func (w *FileWatcher) Watch(path string) {
	w.mu.Lock()
	w.path = path
	w.lastModTime = time.Time{}
	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
	}
	w.mu.Unlock()
}

// Start begins watching in a background goroutine.
func (w *FileWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if path, changed := w.checkForUpdate(); changed && w.onChange != nil {
				w.onChange(path)
			}
		}
	}
}

// checkForUpdate reports whether the watched file's mtime moved forward.
func (w *FileWatcher) checkForUpdate() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.path == "" {
		return "", false
	}
	info, err := os.Stat(w.path)
	if err != nil {
		return "", false
	}
	if info.ModTime().After(w.lastModTime) && !w.lastModTime.IsZero() {
		w.lastModTime = info.ModTime()
		return w.path, true
	}
	if w.lastModTime.IsZero() {
		w.lastModTime = info.ModTime()
		return w.path, true
	}
	return "", false
}
