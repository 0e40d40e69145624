package loader

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/toniju98/AirBnbAnalyzer/internal/adapters/observability"
)

// FileCache memoizes parsed file contents keyed by file identity
// (path, size, mtime). Entries live for the whole process; a changed
// file gets a new key and is re-read on the next access.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]fileEntry
}

type fileEntry struct {
	key string
	val any
}

func NewFileCache() *FileCache {
	return &FileCache{entries: map[string]fileEntry{}}
}

// fileKey is the identity of one on-disk file. Missing files get a
// distinct key so "absent" is cacheable too.
func fileKey(path string) string {
	st, err := os.Stat(path)
	if err != nil {
		return path + "|absent"
	}
	return fmt.Sprintf("%s|%d|%d", path, st.Size(), st.ModTime().UnixNano())
}

// load runs parse over the file's CSV rows, memoizing the result.
// Gzip is unwrapped when the path ends in .gz.
func (c *FileCache) load(path string, parse func([][]string) (any, error)) (any, error) {
	key := fileKey(path)

	c.mu.Lock()
	if e, ok := c.entries[path]; ok && e.key == key {
		c.mu.Unlock()
		observability.ObserveLoad(path, "hit")
		return e.val, nil
	}
	c.mu.Unlock()

	rows, err := readCSVFile(path)
	if err != nil {
		observability.ObserveLoad(path, "error")
		return nil, err
	}
	val, err := parse(rows)
	if err != nil {
		observability.ObserveLoad(path, "error")
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = fileEntry{key: key, val: val}
	c.mu.Unlock()
	observability.ObserveLoad(path, "miss")
	return val, nil
}

// readCSVFile reads all records of a CSV or gzip-compressed CSV file,
// header row included. Ragged rows are tolerated.
func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return rows, nil
}
