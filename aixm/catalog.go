// aixm/catalog.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/globin/airac-aixm-updater/log"
)

const DatasetsBaseURL = "https://aip.dfs.de/datasets/rest/"

// DatasetRoot is the decoded DFS dataset catalog: the list of published
// amendment cycles, each with a tree of the datasets available for it.
type DatasetRoot struct {
	Amdts []Amendment `json:"Amdts"`
}

type Amendment struct {
	Amdt     uint              `json:"Amdt"`
	Metadata AmendmentMetadata `json:"Metadata"`
}

type AmendmentMetadata struct {
	Datasets []DatasetNode `json:"datasets"`
}

// DatasetNode is a node of the dataset tree; Type is "group" (Items is
// populated) or "leaf" (Releases is populated).
type DatasetNode struct {
	Type     string        `json:"type"`
	Name     string        `json:"name"`
	Items    []DatasetNode `json:"items"`
	Releases []Release     `json:"releases"`
}

// Release is one downloadable encoding of a leaf dataset, identified by
// a type label like "AIXM 5.1".
type Release struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

// find returns the first node in a depth-first traversal for which pred
// returns true.
func (n *DatasetNode) find(pred func(*DatasetNode) bool) *DatasetNode {
	if pred(n) {
		return n
	}
	for i := range n.Items {
		if found := n.Items[i].find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FetchDatasets retrieves and decodes the DFS dataset catalog.
func FetchDatasets(lg *log.Logger) (*DatasetRoot, error) {
	resp, err := http.Get(DatasetsBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchDatasetList, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchDatasetList, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchDatasetList, err)
	}
	lg.Debugf("dataset catalog: %s", raw)

	var root DatasetRoot
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeDatasetList, err)
	}
	return &root, nil
}

// DatasetURL resolves a dataset leaf name to the download URL of its
// release with the given type label within the given amendment. The
// tree is searched depth-first and the first leaf with a matching name
// wins. The second return value is false if the amendment, dataset, or
// release type is not present in the catalog; callers are expected to
// surface that as ErrDatasetNotFound.
func (d *DatasetRoot) DatasetURL(amdt uint, dataset, releaseType string) (string, bool) {
	for _, a := range d.Amdts {
		if a.Amdt != amdt {
			continue
		}
		for i := range a.Metadata.Datasets {
			leaf := a.Metadata.Datasets[i].find(func(n *DatasetNode) bool {
				return n.Type == "leaf" && n.Name == dataset
			})
			if leaf == nil {
				continue
			}
			for _, r := range leaf.Releases {
				if r.Type == releaseType {
					return fmt.Sprintf("%s%d/%s", DatasetsBaseURL, amdt, r.Filename), true
				}
			}
		}
	}
	return "", false
}
