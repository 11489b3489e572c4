package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay lets a burst of writes to one file land before it is re-read.
const settleDelay = 100 * time.Millisecond

// StartWatching re-runs the engine whenever a source file below one of dirs
// is written, passing each result to onReport.
func (e *Engine) StartWatching(dirs []string, onReport func(*Report, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.watcher != nil {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.done = make(chan struct{})
	e.onReport = onReport
	go e.watchLoop(watcher, e.done)
	return nil
}

// StopWatching stops a watch started by StartWatching.
func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.watcher == nil {
		e.logger.Warn("not watching")
		return nil
	}

	close(e.done)
	err := e.watcher.Close()
	e.watcher = nil
	return err
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) || filepath.Ext(event.Name) != SourceExtension {
		return
	}

	time.Sleep(settleDelay)
	report, err := e.runChanged(event.Name)
	if err == nil && report == nil {
		return
	}
	if err != nil {
		e.logger.Error("error processing changed file", zap.String("file", event.Name), zap.Error(err))
	} else {
		e.logger.Info("processed changed file",
			zap.String("file", event.Name),
			zap.Int("issues", len(report.Issues)),
		)
	}
	if e.onReport != nil {
		e.onReport(report, err)
	}
}

// runChanged processes filename unless its content matches the last
// successful run, in which case it returns a nil report and no error.
func (e *Engine) runChanged(filename string) (*Report, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		e.cache.Invalidate(filename)
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	if _, ok := e.cache.Get(filename, source); ok {
		e.logger.Debug("skipping unchanged file", zap.String("file", filename))
		return nil, nil
	}

	report, err := e.RunSource(filename, source)
	if err != nil {
		e.cache.Invalidate(filename)
		return nil, err
	}
	e.cache.Set(filename, source, report)
	return report, nil
}
