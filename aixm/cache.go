// aixm/cache.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/util"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache stores fetched dataset files zstd-compressed under a local
// directory, keyed by download URL, with a manifest recording what each
// file is. Datasets run to tens of megabytes of XML, so skipping
// re-downloads within an amendment cycle is worthwhile. The cache is
// strictly best-effort: all failures are logged and treated as misses.
// A nil *Cache is valid and never hits.
type Cache struct {
	dir string
	lg  *log.Logger

	mu       sync.Mutex            // datasets are fetched concurrently
	manifest map[string]cacheEntry // URL -> entry
}

type cacheEntry struct {
	URL     string    `msgpack:"url"`
	Dataset string    `msgpack:"dataset"`
	Fetched time.Time `msgpack:"fetched"`
	File    string    `msgpack:"file"`
}

const cacheManifestName = "manifest.msgpack"

// OpenCache opens (creating if necessary) the dataset cache in dir; if
// dir is empty, a directory under the user config dir is used.
func OpenCache(dir string, lg *log.Logger) *Cache {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			lg.Warnf("unable to find user config dir: %v", err)
			return nil
		}
		dir = filepath.Join(configDir, "airac-updater", "datasets")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		lg.Warnf("%s: unable to create dataset cache: %v", dir, err)
		return nil
	}

	c := &Cache{dir: dir, manifest: make(map[string]cacheEntry), lg: lg}

	mpath := filepath.Join(dir, cacheManifestName)
	if raw, err := os.ReadFile(mpath); err == nil {
		if err := msgpack.Unmarshal(raw, &c.manifest); err != nil {
			// A corrupt manifest just means starting over.
			lg.Warnf("%s: unable to decode cache manifest: %v", mpath, err)
			c.manifest = make(map[string]cacheEntry)
		}
	}

	return c
}

// Get returns the cached bytes for the given URL, if present.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	entry, ok := c.manifest[url]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	raw, err := os.ReadFile(filepath.Join(c.dir, entry.File))
	if err != nil {
		c.lg.Warnf("%s: unable to read cached dataset: %v", entry.File, err)
		return nil, false
	}

	zr, err := zstd.NewReader(nil)
	if err != nil {
		c.lg.Warnf("unable to initialize zstd: %v", err)
		return nil, false
	}
	defer zr.Close()

	data, err := zr.DecodeAll(raw, nil)
	if err != nil {
		c.lg.Warnf("%s: unable to decompress cached dataset: %v", entry.File, err)
		return nil, false
	}
	return data, true
}

// Put stores the bytes fetched from the given URL in the cache and
// updates the manifest.
func (c *Cache) Put(url, dataset string, data []byte) {
	if c == nil {
		return
	}

	zw, err := zstd.NewWriter(nil)
	if err != nil {
		c.lg.Warnf("unable to initialize zstd: %v", err)
		return
	}
	compressed := zw.EncodeAll(data, nil)
	zw.Close()

	hash := sha256.Sum256([]byte(url))
	file := hex.EncodeToString(hash[:8]) + ".xml.zst"
	if err := os.WriteFile(filepath.Join(c.dir, file), compressed, 0o644); err != nil {
		c.lg.Warnf("%s: unable to write cached dataset: %v", file, err)
		return
	}

	c.mu.Lock()
	c.manifest[url] = cacheEntry{
		URL:     url,
		Dataset: dataset,
		Fetched: time.Now(),
		File:    file,
	}
	c.writeManifest()
	c.mu.Unlock()
}

func (c *Cache) writeManifest() {
	raw, err := msgpack.Marshal(c.manifest)
	if err != nil {
		c.lg.Warnf("unable to encode cache manifest: %v", err)
		return
	}
	mpath := filepath.Join(c.dir, cacheManifestName)
	if err := os.WriteFile(mpath, raw, 0o644); err != nil {
		c.lg.Warnf("%s: unable to write cache manifest: %v", mpath, err)
	}
}

// Contents returns a description of the cached datasets, ordered by
// URL, for logging at startup.
func (c *Cache) Contents() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var desc []string
	for _, url := range util.SortedMapKeys(c.manifest) {
		entry := c.manifest[url]
		desc = append(desc, entry.Dataset+" fetched "+entry.Fetched.Format(time.RFC3339))
	}
	return desc
}
