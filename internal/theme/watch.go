package theme

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrInvalidPreference is returned by SetTheme for unknown values.
var ErrInvalidPreference = errors.New("invalid theme preference")

// Watcher re-resolves the theme when the config file changes underneath the
// process, e.g. when another flowtask invocation ran `theme set`.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching path and feeds change events into m. The parent
// directory is watched rather than the file itself: config saves replace the
// file by rename, which would orphan a watch on the old inode. Close the
// returned Watcher on shutdown.
func Watch(m *Manager, path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.loop(m, filepath.Clean(path))
	return w, nil
}

func (w *Watcher) loop(m *Manager, path string) {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				m.reload()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warnf("theme watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
