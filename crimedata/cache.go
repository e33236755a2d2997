package crimedata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// Cache stores fetched responses as gzip-compressed files so repeated runs
// of an exploration do not hammer the open-data API. Entries are keyed by
// the xxhash of the request URL; there is no expiry, callers clear the
// directory to refresh.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir, creating the directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "crimedata: creating cache dir %q", dir)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.json.gz", xxhash.Sum64String(url)))
}

// Get returns the cached body for url, or ok=false on a miss.
func (c *Cache) Get(url string) (body []byte, ok bool) {
	f, err := os.Open(c.path(url))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer zr.Close()

	body, err = io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores body for url. Writes go through a temp file and rename so a
// crashed run never leaves a truncated entry behind.
func (c *Cache) Put(url string, body []byte) error {
	target := c.path(url)
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return errors.Wrap(err, "crimedata: creating cache temp file")
	}
	defer os.Remove(tmp.Name())

	zw := gzip.NewWriter(tmp)
	if _, err := zw.Write(body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "crimedata: writing cache entry")
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "crimedata: finalizing cache entry")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "crimedata: closing cache temp file")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return errors.Wrap(err, "crimedata: installing cache entry")
	}
	return nil
}
