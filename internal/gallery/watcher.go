// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce is the quiet period after a filesystem event before the
// index is rebuilt. Bulk copies into the patterns directory trigger many
// events; one rescan at the end is enough.
const watchDebounce = 500 * time.Millisecond

// Watcher keeps the store's filename index in sync with the patterns
// directory. It implements suture.Service; restarts after failures are the
// supervisor's job.
type Watcher struct {
	store  *Store
	logger zerolog.Logger
}

// NewWatcher creates a watcher over the store's patterns directory.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatcher(store *Store, logger zerolog.Logger) *Watcher {
	return &Watcher{
		store:  store,
		logger: logger.With().Str("component", "gallery-watcher").Logger(),
	}
}

// String implements suture's naming hook.
func (w *Watcher) String() string { return "gallery-watcher" }

// Serve watches the patterns directory until the context is canceled,
// rescanning the store after a debounce window. A missing directory is
// created first so the watch can attach.
func (w *Watcher) Serve(ctx context.Context) error {
	if err := os.MkdirAll(w.store.PatternsDir(), 0o750); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.store.PatternsDir()); err != nil {
		return err
	}

	// Catch anything that appeared before the watch attached.
	if _, err := w.store.Rescan(); err != nil {
		w.logger.Warn().Err(err).Msg("Initial gallery scan failed")
	}

	var timer *time.Timer
	var timerCh <-chan time.Time

	w.logger.Info().Str("dir", w.store.PatternsDir()).Msg("Gallery watcher started")
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Gallery watch error")

		case <-timerCh:
			if _, err := w.store.Rescan(); err != nil {
				w.logger.Warn().Err(err).Msg("Gallery rescan failed")
			}
		}
	}
}
