// Package watch automates the pipeline over a drop folder: new data
// files trigger report generation, and a periodic rescan catches files
// the filesystem notifications missed.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"datasuite/app"
	"datasuite/internal"
	"datasuite/ports"
)

// settleDelay gives the writer time to finish the file after the create
// event fires.
const settleDelay = 500 * time.Millisecond

// Pipeline is the slice of the report service the watcher drives.
type Pipeline interface {
	Generate(ctx context.Context, req app.GenerateRequest) (*app.GenerateResult, error)
	Notify(result *app.GenerateResult, recipientsRaw, subject string) (ports.DeliveryResult, error)
}

// Watcher runs the pipeline for every data file dropped into a
// directory.
type Watcher struct {
	dir        string
	pipeline   Pipeline
	recipients string
	interval   time.Duration
	logger     *internal.Logger

	mu        sync.Mutex
	processed map[string]time.Time // path -> modtime at last successful run
}

// NewWatcher creates a drop-folder watcher. recipients may be empty, in
// which case reports are rendered but not emailed.
func NewWatcher(dir string, pipeline Pipeline, recipients string, interval time.Duration) *Watcher {
	return &Watcher{
		dir:        dir,
		pipeline:   pipeline,
		recipients: recipients,
		interval:   interval,
		logger:     internal.DefaultLogger,
		processed:  make(map[string]time.Time),
	}
}

// Run watches the drop folder until the context is cancelled. An initial
// scan picks up files that were already present.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch directory %s: %w", w.dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start filesystem watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() { w.Scan(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule rescan: %w", err)
	}
	c.Start()
	defer c.Stop()

	w.logger.Info("watching %s (rescan every %s)", w.dir, w.interval)
	w.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isDataFile(event.Name) {
				continue
			}
			time.Sleep(settleDelay)
			w.process(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// Scan processes every unprocessed data file currently in the folder.
func (w *Watcher) Scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("rescan of %s failed: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDataFile(entry.Name()) {
			continue
		}
		w.process(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return // deleted or still being written
	}

	w.mu.Lock()
	if last, ok := w.processed[path]; ok && !info.ModTime().After(last) {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	result, err := w.pipeline.Generate(ctx, app.GenerateRequest{FilePath: path})
	if err != nil {
		w.logger.Error("processing %s failed: %v", path, err)
		return
	}

	w.mu.Lock()
	w.processed[path] = info.ModTime()
	w.mu.Unlock()
	w.logger.Info("processed %s in %dms", filepath.Base(path), result.RuntimeMs)

	if w.recipients == "" {
		return
	}
	if _, err := w.pipeline.Notify(result, w.recipients, ""); err != nil {
		w.logger.Error("notification for %s failed: %v", path, err)
	}
}

func isDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}
