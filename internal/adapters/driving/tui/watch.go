package tui

import (
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// ConfigWatcher reports edits to the config file.
//
// The parent directory is watched rather than the file itself, since editors
// often replace the file on save. Bursts of events collapse into one change.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	changes chan struct{}
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher starts watching path.
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &ConfigWatcher{
		watcher: watcher,
		path:    path,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *ConfigWatcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Config file event: %s", event)
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// Wait returns a command that blocks until the next change or error.
// It yields nil once the watcher is closed.
func (w *ConfigWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changes:
			return messages.ConfigChanged{}
		case err := <-w.errs:
			return messages.ConfigChanged{Err: fmt.Errorf("watching config: %w", err)}
		case <-w.done:
			return nil
		}
	}
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Close stops watching. It is safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
