// aixm/errors.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import "errors"

var (
	ErrFetchDatasetList  = errors.New("unable to fetch DFS dataset list")
	ErrDecodeDatasetList = errors.New("unable to decode DFS dataset list")
	ErrDatasetNotFound   = errors.New("AIXM dataset not found in catalog")
	ErrFetchDataset      = errors.New("unable to fetch AIXM dataset")
	ErrDecodeDataset     = errors.New("unable to decode AIXM dataset")
)
