// updater/run.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package updater

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/globin/airac-aixm-updater/aixm"
	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/sector"

	"golang.org/x/sync/errgroup"
)

// Options configures one updater run.
type Options struct {
	Dir         string   // directory holding the sector files
	Amendment   uint     // catalog amendment id; 0 is the current cycle
	ReleaseType string   // dataset release to resolve, e.g. "AIXM 5.1"
	Datasets    []string // dataset names; nil means DefaultDatasets
	LocalFiles  []string // local AIXM files used instead of the catalog
	Cache       *aixm.Cache
}

// Run performs a full update: sector files and AIXM datasets are loaded
// concurrently, every sector file is folded with the AIXM records, and
// the results are written back with the originals renamed to
// timestamped backups. An unresolvable dataset or an unreadable sector
// directory aborts the run; a single failing sector file or dataset
// does not.
func Run(opts Options, ch chan<- log.Message, lg *log.Logger) error {
	var (
		files   []*sector.File
		records []aixm.Record
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		files, err = sector.LoadDir(opts.Dir, ch, lg)
		return err
	})
	g.Go(func() error {
		requests, err := resolveRequests(opts, lg)
		if err != nil {
			return err
		}
		records = IngestAll(requests, opts.Cache, ch, lg)
		return nil
	})
	if err := g.Wait(); err != nil {
		ch <- log.ErrorMessage(err.Error())
		return err
	}

	reconciled := make([]*sector.File, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		i, f := i, f
		wg.Add(1)
		go func() {
			defer wg.Done()
			reconciled[i] = reconcileFile(f, records, ch, lg)
		}()
	}
	wg.Wait()

	runTime := time.Now()
	var errs []error
	for _, f := range reconciled {
		if err := f.WriteBack(runTime, ch); err != nil {
			ch <- log.ErrorMessage(err.Error())
			lg.Errorf("%s: %v", f.Path, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func resolveRequests(opts Options, lg *log.Logger) ([]DatasetRequest, error) {
	if len(opts.LocalFiles) > 0 {
		var requests []DatasetRequest
		for _, path := range opts.LocalFiles {
			requests = append(requests, DatasetRequest{Name: path, Path: path})
		}
		return requests, nil
	}

	catalog, err := aixm.FetchDatasets(lg)
	if err != nil {
		return nil, err
	}

	datasets := opts.Datasets
	if datasets == nil {
		datasets = DefaultDatasets
	}
	var requests []DatasetRequest
	for _, name := range datasets {
		url, ok := catalog.DatasetURL(opts.Amendment, name, opts.ReleaseType)
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, aixm.ErrDatasetNotFound)
		}
		requests = append(requests, DatasetRequest{Name: name, URL: url})
	}
	return requests, nil
}

func reconcileFile(f *sector.File, records []aixm.Record, ch chan<- log.Message, lg *log.Logger) *sector.File {
	switch {
	case f.Sct != nil:
		return &sector.File{Path: f.Path, Sct: ReconcileSct(f.Sct, records, ch, lg)}
	case f.Isec != nil:
		return &sector.File{Path: f.Path, Isec: ReconcileIsec(f.Isec, records, ch, lg)}
	}
	return f
}
