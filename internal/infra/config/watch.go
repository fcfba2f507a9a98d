package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher recarga config.json cuando cambia en disco.
type Watcher struct {
	store     *Store
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	onChange  func(Config)
	normalize func(*Config)

	mu      sync.Mutex
	pending *time.Timer
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type WatchOption func(*Watcher)

// WithNormalize aplica los mismos ajustes que el arranque (arma, puerto) a cada recarga.
func WithNormalize(fn func(*Config)) WatchOption {
	return func(w *Watcher) { w.normalize = fn }
}

func NewWatcher(store *Store, onChange func(Config), opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:    store,
		watcher:  fw,
		debounce: 300 * time.Millisecond,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Start vigila el directorio (los editores reemplazan el archivo con rename).
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	go w.run(ctx)
	return nil
}

func (w *Watcher) Stop() {
	select {
	case <-w.stopCh:
		return
	default:
	}
	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("config watcher")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	// un archivo a medio escribir no pisa la config vigente
	cfg, err := Parse(w.store.Path())
	if err != nil {
		log.Warn().Err(err).Msg("config reload, keeping previous")
		return
	}
	if w.normalize != nil {
		w.normalize(&cfg)
	}
	w.store.Set(cfg)
	log.Info().Str("theme", cfg.Theme).Msg("config reloaded")
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
