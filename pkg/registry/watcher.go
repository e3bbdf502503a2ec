package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a Registry whenever its model map file changes. A reload
// that fails to parse keeps the previous tables.
type Watcher struct {
	registry *Registry
	path     string
	logger   zerolog.Logger
	inflect  bool

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu       sync.Mutex
	onReload []func(File, error)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithInflectionDefault keeps inflection enabled across reloads even when the
// file does not set it. The file can only turn inflection on.
func WithInflectionDefault(enabled bool) WatcherOption {
	return func(w *Watcher) {
		w.inflect = enabled
	}
}

// NewWatcher loads path into registry once and prepares a watcher for it.
func NewWatcher(registry *Registry, path string, logger zerolog.Logger, opts ...WatcherOption) (*Watcher, error) {
	if registry == nil {
		return nil, errors.New("registry: registry is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("registry: absolute path: %w", err)
	}

	w := &Watcher{
		registry: registry,
		path:     absPath,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// OnReload registers a callback invoked after every reload attempt. err is
// non-nil when the file could not be loaded.
func (w *Watcher) OnReload(fn func(File, error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, fn)
}

// Reload re-reads the model map file.
func (w *Watcher) Reload() error {
	file, err := LoadFile(w.path)
	if err == nil {
		w.registry.Replace(file.Models, file.Inflect || w.inflect)
	}

	w.mu.Lock()
	callbacks := append([]func(File, error){}, w.onReload...)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(file, err)
	}

	if err != nil {
		w.logger.Error().Err(err).Str("path", w.path).Msg("model map reload failed, keeping previous tables")
		return err
	}
	w.logger.Info().Str("path", w.path).Int("models", len(file.Models)).Msg("model map loaded")
	return nil
}

// Start begins watching. The directory is watched rather than the file so
// editors that save by rename are picked up.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("registry: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("registry: watch directory: %w", err)
	}
	w.watcher = watcher

	w.wg.Add(1)
	go w.loop()

	w.logger.Info().Str("path", w.path).Msg("watching model map for changes")
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			w.watcher.Close()
		}
		w.wg.Wait()
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("model map changed")
				_ = w.Reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("model map watcher error")

		case <-w.stopCh:
			return
		}
	}
}
