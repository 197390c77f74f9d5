package renderer

import (
	"PowerOutage/internal/logger"
	"fmt"
	"sort"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ShaderWatcher tracks edits in a shader override directory. fsnotify delivers
// events on its own goroutine; Drain is called from the render thread and never blocks,
// so recompiling stays on the thread that owns the GL context.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	dirty   map[ShaderKind]bool
}

func NewShaderWatcher(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch shader dir %s: %w", dir, err)
	}
	logger.Log.Info("Watching shader directory", zap.String("dir", dir))
	return &ShaderWatcher{watcher: w, dirty: map[ShaderKind]bool{}}, nil
}

// Drain consumes queued events and reports whether any program is now dirty.
func (sw *ShaderWatcher) Drain() bool {
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return len(sw.dirty) > 0
			}
			for _, k := range kindsForEvent(ev) {
				sw.dirty[k] = true
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return len(sw.dirty) > 0
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		default:
			return len(sw.dirty) > 0
		}
	}
}

// Take returns the dirty kinds in order and clears them.
func (sw *ShaderWatcher) Take() []ShaderKind {
	kinds := make([]ShaderKind, 0, len(sw.dirty))
	for k := range sw.dirty {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	sw.dirty = map[ShaderKind]bool{}
	return kinds
}

func (sw *ShaderWatcher) Close() error {
	return sw.watcher.Close()
}

func kindsForEvent(ev fsnotify.Event) []ShaderKind {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return nil
	}
	return ShaderKindsUsing(ev.Name)
}
