// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor produces on save
const reloadDelay = 200 * time.Millisecond

// WatchPrompts reloads the prompts file at path whenever it changes and
// passes the result to apply. A file that fails to load is logged and the
// previous prompts stay in use. It blocks until ctx is cancelled.
func WatchPrompts(ctx context.Context, path string, apply func(Prompts)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so files replaced by rename are still seen
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch prompts file %s: %w", path, err)
	}

	slog.Info("watching IVR prompts", "path", path)

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C

		case <-reload:
			reload = nil
			p, err := LoadPrompts(path)
			if err != nil {
				slog.Warn("keeping previous IVR prompts", "error", err)
				continue
			}
			apply(p)
			slog.Info("IVR prompts reloaded", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("prompts watcher error", "error", err)
		}
	}
}
