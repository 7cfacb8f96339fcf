// Package watch rebuilds site metadata when content files change. It
// combines fsnotify events (debounced, with content fingerprinting to drop
// no-op writes) with an optional fixed-interval rebuild schedule.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitemeta/internal/loader"
	"git.home.luguber.info/inful/sitemeta/internal/logfields"
	"git.home.luguber.info/inful/sitemeta/internal/pipeline"
)

const defaultDebounce = 2 * time.Second

// RebuildFunc runs one full metadata build pass.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a content directory and triggers rebuilds.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Interval time.Duration
	Logger   *slog.Logger

	rebuild   RebuildFunc
	fsw       *fsnotify.Watcher
	scheduler gocron.Scheduler

	mu           sync.Mutex
	fingerprints map[string]string

	triggerChan chan struct{}
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func New(dir string, rebuild RebuildFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		Dir:          dir,
		Debounce:     defaultDebounce,
		Logger:       slog.Default(),
		rebuild:      rebuild,
		fsw:          fsw,
		fingerprints: make(map[string]string),
		triggerChan:  make(chan struct{}, 1),
		stopChan:     make(chan struct{}),
	}, nil
}

// Start watches the content tree and begins the rebuild loops. When Interval
// is set, a periodic rebuild is scheduled in addition to event-driven ones.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.Dir); err != nil {
		return err
	}

	log := w.logger()
	log.Info("watching content directory", logfields.Path(w.Dir))

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)

	if w.Interval > 0 {
		s, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = s.NewJob(
			gocron.DurationJob(w.Interval),
			gocron.NewTask(w.trigger),
			gocron.WithName("interval-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("schedule interval rebuild: %w", err)
		}
		s.Start()
		w.scheduler = s
		log.Info("interval rebuild scheduled", slog.Duration("interval", w.Interval))
	}
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if w.scheduler != nil {
			err = w.scheduler.Shutdown()
		}
		if cerr := w.fsw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

// addTree watches dir and every non-hidden subdirectory.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	log := w.logger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(log, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(log *slog.Logger, event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				_ = w.addTree(event.Name)
			}
			return
		}
	}

	if pipeline.ClassifyPath(event.Name) == pipeline.KindOther {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		if !w.changed(event.Name) {
			log.Debug("content unchanged, skipping rebuild", logfields.Path(event.Name))
			return
		}
		log.Debug("content changed", logfields.Path(event.Name))
		w.trigger()
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.forget(event.Name)
		w.trigger()
	}
}

// changed reports whether the file's content fingerprint differs from the
// last one seen. Editors often touch files without changing content; the
// fingerprint keeps those writes from triggering rebuilds.
func (w *Watcher) changed(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return true
	}

	fmRaw, body, _, err := loader.SplitFrontMatter(content)
	if err != nil {
		fmRaw, body = nil, content
	}
	fp := mdfp.CalculateFingerprintFromParts(string(fmRaw), string(body))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fingerprints[path] == fp {
		return false
	}
	w.fingerprints[path] = fp
	return true
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.fingerprints, path)
}

func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
	default:
	}
}

// rebuildLoop debounces triggers and runs the rebuild callback.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	log := w.logger()
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.triggerChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce(), func() {
				start := time.Now()
				if err := w.rebuild(ctx); err != nil {
					log.Error("rebuild failed", logfields.Error(err))
					return
				}
				log.Info("rebuild complete",
					logfields.DurationMS(float64(time.Since(start).Milliseconds())))
			})
		}
	}
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return defaultDebounce
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
