package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/source"
	"github.com/fundex/despesas/internal/store"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// ProgressFunc is called during loading to report progress.
// For a single file current counts parsed rows; for a directory it counts
// files.
type ProgressFunc func(current, total int)

// Loader reads ledger files into tables, consulting an in-memory cache and
// an optional SQLite mirror. Every method returns a non-nil table; on
// failure it is empty and the error matches one of the source sentinels.
type Loader struct {
	cache *Cache       // nil disables in-memory caching
	store *store.Cache // nil disables the disk mirror
	log   *log.Logger
	group singleflight.Group
}

// NewLoader wires a loader. Any argument may be nil.
func NewLoader(cache *Cache, persistent *store.Cache, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{cache: cache, store: persistent, log: logger}
}

// Load reads one .xlsx or .csv ledger.
func (l *Loader) Load(path string) (*model.Table, error) {
	return l.LoadWithProgress(path, nil)
}

// LoadWithProgress is Load with row-level progress reporting. Progress is
// only reported when the file is actually parsed.
func (l *Loader) LoadWithProgress(path string, progressFn ProgressFunc) (*model.Table, error) {
	key, err := l.keyFor(path)
	if err != nil {
		return model.EmptyTable(), err
	}

	if t, ok := l.cache.Get(key); ok {
		l.log.Debug("cache hit", "file", key.Path, "rows", t.Len())
		return t, nil
	}
	l.log.Debug("cache miss", "file", key.Path)

	v, err, shared := l.group.Do(key.String(), func() (any, error) {
		return l.loadKey(key, progressFn)
	})
	if err != nil {
		return model.EmptyTable(), err
	}
	if shared {
		l.log.Debug("shared in-flight load", "file", key.Path)
	}
	return v.(*model.Table), nil
}

// LoadPath loads a single ledger, or every ledger in path when it is a
// directory.
func (l *Loader) LoadPath(path string, progressFn ProgressFunc) (*model.Table, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return l.LoadDir(path, progressFn)
	}
	return l.LoadWithProgress(path, progressFn)
}

// LoadDir loads every ledger directly inside dir and concatenates them in
// file-name order. One bad file fails the whole load.
func (l *Loader) LoadDir(dir string, progressFn ProgressFunc) (*model.Table, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return model.EmptyTable(), fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return model.EmptyTable(), fmt.Errorf("%w: no .xlsx or .csv ledgers in %s", source.ErrFileNotFound, dir)
	}

	// Parallel loading with bounded worker pool
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	tables := make([]*model.Table, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				tables[idx], errs[idx] = l.Load(files[idx].Path)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			l.log.Warn("directory load failed", "file", files[i].Name, "err", err)
			return model.EmptyTable(), err
		}
	}
	return model.Concat(tables...), nil
}

// keyFor resolves path and checks it exists and has a supported extension.
func (l *Loader) keyFor(path string) (CacheKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return CacheKey{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CacheKey{}, fmt.Errorf("%w: %s", source.ErrFileNotFound, path)
		}
		return CacheKey{}, &source.ParseError{Path: abs, Err: err}
	}
	if info.IsDir() {
		return CacheKey{}, fmt.Errorf("%w: %s is a directory", source.ErrUnsupportedFormat, path)
	}
	if _, err := source.DetectFormat(abs); err != nil {
		return CacheKey{}, err
	}

	return CacheKey{Path: abs, MtimeNs: info.ModTime().UnixNano(), Size: info.Size()}, nil
}

// loadKey runs once per in-flight key. A table is cached only after it is
// fully built; failures are never cached.
func (l *Loader) loadKey(key CacheKey, progressFn ProgressFunc) (*model.Table, error) {
	if t, ok := l.cache.Get(key); ok {
		return t, nil
	}

	if rows, ok := l.fromStore(key); ok {
		t := model.NewTable(rows)
		l.remember(key, t)
		l.log.Info("loaded ledger from disk cache", "file", key.Path, "rows", t.Len())
		return t, nil
	}

	rows, err := source.ParseFile(key.Path, progressFn)
	if err != nil {
		l.log.Debug("parse failed", "file", key.Path, "err", err)
		return nil, err
	}

	t := model.NewTable(rows)
	l.remember(key, t)
	l.toStore(key, rows)
	l.log.Info("loaded ledger", "file", key.Path, "rows", t.Len())
	return t, nil
}

func (l *Loader) remember(key CacheKey, t *model.Table) {
	if n := l.cache.Put(key, t); n > 0 {
		l.log.Debug("evicted stale cache entries", "file", key.Path, "count", n)
	}
}
