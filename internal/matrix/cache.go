package matrix

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Accessor memoizes parsed matrices per file path. A cached entry is
// reused as long as the file's modification time and size are
// unchanged, so an unchanged file is parsed once per process. Only
// successful loads are cached; a failing path is re-attempted on every
// Get. Safe for concurrent use.
type Accessor struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	logger  *zap.Logger
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	matrix  *Matrix
}

// NewAccessor creates the process-wide matrix accessor. logger may be nil.
func NewAccessor(logger *zap.Logger) *Accessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{
		entries: make(map[string]*cacheEntry),
		logger:  logger,
	}
}

// Get returns the matrix for path, loading it on first access or after
// the file changed on disk. Cache keys are absolute paths so Get and
// the watcher agree on identity regardless of how callers spell them.
func (a *Accessor) Get(path string) (*Matrix, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFoundAt(path)
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	a.mu.RLock()
	entry, ok := a.entries[path]
	a.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.matrix, nil
	}

	m, err := Load(path, a.logger)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.entries[path] = &cacheEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		matrix:  m,
	}
	a.mu.Unlock()

	if ok {
		a.logger.Info("matrix reloaded", zap.String("path", path))
	}
	return m, nil
}

// Invalidate drops the cached entry for path, forcing the next Get to
// re-parse the file.
func (a *Accessor) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.mu.Lock()
	delete(a.entries, path)
	a.mu.Unlock()
}
