package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/symbols"
	"ember/internal/version"
)

// ExportsCacheSchema is the on-disk payload version; bump it when ExportsPayload changes.
const ExportsCacheSchema uint16 = 1

// ExportsCache хранит экспорты скомпилированных файлов на диске, по ключу
// из хеша содержимого и версии компилятора.
// Thread-safe for concurrent access.
type ExportsCache struct {
	mu  sync.RWMutex
	dir string
}

// ExportsPayload is what the cache stores for one compiled file.
type ExportsPayload struct {
	Schema      uint16                     `msgpack:"schema"`
	Path        string                     `msgpack:"path"`
	ContentHash project.Digest             `msgpack:"content_hash"`
	Functions   []symbols.ExportedFunction `msgpack:"functions"`
}

// OpenExportsCache opens the cache at dir, or at $XDG_CACHE_HOME/app
// (falling back to ~/.cache/app) when dir is empty.
func OpenExportsCache(dir, app string) (*ExportsCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ExportsCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ExportsCache) Dir() string { return c.dir }

// ExportsKey derives the cache key of a file from its content hash.
func ExportsKey(content project.Digest) project.Digest {
	return project.Combine(content, []byte(version.Version))
}

func (c *ExportsCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "exports", key.Hex()+".mp")
}

// Put serializes payload and atomically replaces the entry for key.
func (c *ExportsCache) Put(key project.Digest, payload *ExportsPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = ExportsCacheSchema
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(tmp, p)
	return err
}

// Get reads the entry for key. A missing entry or one written by another
// schema version is reported as a miss.
func (c *ExportsCache) Get(key project.Digest) (*ExportsPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out ExportsPayload
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("corrupt exports cache entry %s: %w", key.Hex(), err)
	}
	if out.Schema != ExportsCacheSchema {
		return nil, false, nil
	}
	return &out, true, nil
}

// StoreExports records the exports of a successfully compiled result.
func (c *ExportsCache) StoreExports(res *Result) (project.Digest, error) {
	if res == nil || res.Meta == nil || res.Failed() {
		return project.Digest{}, fmt.Errorf("cannot cache exports of a failed compilation")
	}
	file := res.FileSet.Get(res.FileID)
	content := project.Digest(file.Hash)
	key := ExportsKey(content)
	err := c.Put(key, &ExportsPayload{
		Path:        res.Path,
		ContentHash: content,
		Functions:   res.Meta.Mem.Exports().Signatures(),
	})
	return key, err
}

// LookupExports returns the cached exports for the current content of path.
func (c *ExportsCache) LookupExports(path string) (*ExportsPayload, bool, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, false, err
	}
	return c.Get(ExportsKey(project.Digest(fs.Get(id).Hash)))
}
