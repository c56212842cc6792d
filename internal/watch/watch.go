package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Rename

// Source calls onChange once per burst of changes to the file at path.
// The parent directory is watched so atomic replaces are seen too.
// Blocks until ctx is done.
func Source(ctx context.Context, logger zerolog.Logger, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	target := filepath.Base(path)

	logger.Info().Str("path", path).Dur("debounce", debounce).Msg("watching source")

	// Stopped timer whose channel is drained; armed on the first relevant event
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if filepath.Base(event.Name) != target || event.Op&relevant == 0 {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("source event")
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			armed = true
		case <-timer.C:
			armed = false
			logger.Info().Str("path", path).Msg("source changed")
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			logger.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}
