// updater/ingest.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package updater ties the pieces together: it loads the sector files
// and the AIXM datasets concurrently, folds the AIXM records into each
// sector file and writes the results back with the originals kept as
// backups.
package updater

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/globin/airac-aixm-updater/aixm"
	"github.com/globin/airac-aixm-updater/log"
)

// DefaultDatasets are the DFS datasets folded into the sector files.
var DefaultDatasets = []string{
	"ED AirportHeliport",
	"ED Navaids",
	"ED Routes",
	"ED Runway",
	"ED Waypoints",
}

// DatasetRequest names one AIXM dataset to ingest. Either URL or Path
// is set: URL for a catalog-resolved download, Path for a local file
// that replaces the network fetch.
type DatasetRequest struct {
	Name string
	URL  string
	Path string
}

// IngestAll fetches and decodes all requested datasets, each in its own
// goroutine. A dataset that fails produces one error-level message and
// contributes no records; the others are unaffected. The returned slice
// holds the records of the successful datasets in request order.
func IngestAll(requests []DatasetRequest, cache *aixm.Cache, ch chan<- log.Message, lg *log.Logger) []aixm.Record {
	records := make([][]aixm.Record, len(requests))
	errs := make([]error, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		i, req := i, req
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i], errs[i] = ingest(req, cache, ch)
		}()
	}
	wg.Wait()

	var all []aixm.Record
	for i := range requests {
		if errs[i] != nil {
			ch <- log.ErrorMessage(errs[i].Error())
			lg.Errorf("%s: %v", requests[i].Name, errs[i])
			continue
		}
		all = append(all, records[i]...)
	}
	return all
}

func ingest(req DatasetRequest, cache *aixm.Cache, ch chan<- log.Message) ([]aixm.Record, error) {
	data, err := fetch(req, cache, ch)
	if err != nil {
		return nil, err
	}

	ch <- log.InfoMessage(fmt.Sprintf("Loading AIXM: %s", req.Name))
	records, err := aixm.DecodeRecords(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", req.Name, aixm.ErrDecodeDataset, err)
	}
	ch <- log.InfoMessage(fmt.Sprintf("Loaded AIXM: %s", req.Name))

	return records, nil
}

func fetch(req DatasetRequest, cache *aixm.Cache, ch chan<- log.Message) ([]byte, error) {
	if req.Path != "" {
		ch <- log.InfoMessage(fmt.Sprintf("Reading AIXM: %s", req.Path))
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", req.Name, aixm.ErrFetchDataset, err)
		}
		return data, nil
	}

	if data, ok := cache.Get(req.URL); ok {
		ch <- log.InfoMessage(fmt.Sprintf("Cached AIXM: %s", req.Name))
		return data, nil
	}

	ch <- log.InfoMessage(fmt.Sprintf("Fetching AIXM: %s", req.Name))
	resp, err := http.Get(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", req.Name, aixm.ErrFetchDataset, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %s", req.Name, aixm.ErrFetchDataset, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", req.Name, aixm.ErrFetchDataset, err)
	}
	ch <- log.InfoMessage(fmt.Sprintf("Fetched AIXM: %s", req.Name))

	cache.Put(req.URL, req.Name, data)
	return data, nil
}
