package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"github.com/folio/portfolio/internal/infrastructure/logger"
)

const (
	dataFileExt  = ".json"
	lockFileExt  = ".lock"
	dataFileMode = 0o644
	lockTimeout  = 10 * time.Second
	lockRetry    = 25 * time.Millisecond
)

// FileBackend stores each collection as <dir>/<name>.json.
//
// Writes go through a temp file and rename, so readers never see a partial
// document. A mutation holds both a process-local mutex and an advisory file
// lock, which keeps a second server process (or the seed command) from
// interleaving its read-modify-write with ours.
type FileBackend struct {
	dir    string
	logger *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	cacheMu sync.RWMutex
	cache   map[string][]byte
	gens    map[string]uint64
	caching bool

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileBackend creates the data directory if needed.
func NewFileBackend(dir string, appLogger *logger.Logger) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileBackend{
		dir:    dir,
		logger: appLogger.WithComponent("file_backend"),
		locks:  make(map[string]*sync.Mutex),
		cache:  make(map[string][]byte),
		gens:   make(map[string]uint64),
	}, nil
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+dataFileExt)
}

func (b *FileBackend) lockFor(name string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.locks[name]
	if !ok {
		l = &sync.Mutex{}
		b.locks[name] = l
	}
	return l
}

// Read returns the stored bytes for name.
func (b *FileBackend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, gen, ok := b.cached(name)
	if ok {
		return data, nil
	}

	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	b.remember(name, data, gen)
	return data, nil
}

// Mutate performs an exclusive read-modify-write of name.
func (b *FileBackend) Mutate(ctx context.Context, name string, fn MutateFunc) error {
	local := b.lockFor(name)
	local.Lock()
	defer local.Unlock()

	fileLock := flock.New(filepath.Join(b.dir, name+lockFileExt))
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, lockRetry)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", name, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock for %s", name)
	}
	defer func() { _ = fileLock.Unlock() }()

	current, err := os.ReadFile(b.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		if errors.Is(err, ErrSkipWrite) {
			return nil
		}
		return err
	}

	if err := atomic.WriteFile(b.path(name), bytes.NewReader(next)); err != nil {
		b.forget(name)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(b.path(name), dataFileMode); err != nil {
		b.logger.Warnw("Failed to set data file permissions", "collection", name, "error", err)
	}

	b.replace(name, next)
	return nil
}

// HealthCheck verifies the data directory is still writable.
func (b *FileBackend) HealthCheck(ctx context.Context) error {
	probe, err := os.CreateTemp(b.dir, ".health-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// cached returns the cached bytes for name, or the generation a fresh read
// must still match for remember to keep it.
func (b *FileBackend) cached(name string) ([]byte, uint64, bool) {
	b.cacheMu.RLock()
	defer b.cacheMu.RUnlock()
	if !b.caching {
		return nil, b.gens[name], false
	}
	data, ok := b.cache[name]
	return data, b.gens[name], ok
}

// remember caches data read at generation gen. A write or invalidation since
// then means data may be stale, so it is dropped.
func (b *FileBackend) remember(name string, data []byte, gen uint64) {
	b.cacheMu.Lock()
	defer b.cacheMu.Unlock()
	if b.caching && b.gens[name] == gen {
		b.cache[name] = data
	}
}

func (b *FileBackend) replace(name string, data []byte) {
	b.cacheMu.Lock()
	defer b.cacheMu.Unlock()
	b.gens[name]++
	if b.caching {
		b.cache[name] = data
	}
}

func (b *FileBackend) forget(name string) {
	b.cacheMu.Lock()
	b.gens[name]++
	delete(b.cache, name)
	b.cacheMu.Unlock()
}

// Watch enables the read cache and drops cached collections whenever their
// file changes on disk, so hand edits of the data directory show up without
// a restart. It must be called before the backend is shared.
func (b *FileBackend) Watch() error {
	if b.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", b.dir, err)
	}

	b.watcher = watcher
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})

	b.cacheMu.Lock()
	b.caching = true
	b.cacheMu.Unlock()

	go b.watchLoop()
	return nil
}

func (b *FileBackend) watchLoop() {
	defer close(b.doneCh)

	for {
		select {
		case <-b.stopCh:
			return
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			base := filepath.Base(event.Name)
			if !strings.HasSuffix(base, dataFileExt) {
				continue
			}
			name := strings.TrimSuffix(base, dataFileExt)
			b.forget(name)
			b.logger.Debugw("Collection changed on disk", "collection", name, "op", event.Op.String())
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.logger.Warnw("Data directory watcher error", "error", err)
		}
	}
}

// Close stops the watcher, if any.
func (b *FileBackend) Close() error {
	if b.watcher == nil {
		return nil
	}
	b.cacheMu.Lock()
	b.caching = false
	b.cache = make(map[string][]byte)
	b.cacheMu.Unlock()

	close(b.stopCh)
	err := b.watcher.Close()
	<-b.doneCh
	b.watcher = nil
	return err
}
