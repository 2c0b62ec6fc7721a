// aixm/catalog_test.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import (
	"encoding/json"
	"testing"
)

const catalogJSON = `{
  "Amdts": [
    {
      "Amdt": 7,
      "Metadata": {
        "datasets": [
          {
            "type": "group",
            "name": "AIP data sets",
            "items": [
              {
                "type": "group",
                "name": "Flight information",
                "items": [
                  {
                    "type": "leaf",
                    "name": "ED Navaids",
                    "releases": [
                      {"type": "AIXM 5.1", "filename": "ED_Navaids.xml"},
                      {"type": "CSV", "filename": "ED_Navaids.csv"}
                    ]
                  },
                  {
                    "type": "leaf",
                    "name": "ED Waypoints",
                    "releases": [
                      {"type": "AIXM 5.1", "filename": "ED_Waypoints.xml"}
                    ]
                  }
                ]
              }
            ]
          }
        ]
      }
    },
    {
      "Amdt": 8,
      "Metadata": {
        "datasets": [
          {
            "type": "leaf",
            "name": "ED Navaids",
            "releases": [
              {"type": "AIXM 5.1", "filename": "ED_Navaids_8.xml"}
            ]
          }
        ]
      }
    }
  ]
}`

func decodeCatalog(t *testing.T) *DatasetRoot {
	t.Helper()
	var root DatasetRoot
	if err := json.Unmarshal([]byte(catalogJSON), &root); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	return &root
}

func TestDatasetURL(t *testing.T) {
	root := decodeCatalog(t)

	url, ok := root.DatasetURL(7, "ED Navaids", "AIXM 5.1")
	if !ok {
		t.Fatalf("expected to resolve ED Navaids")
	}
	if want := DatasetsBaseURL + "7/ED_Navaids.xml"; url != want {
		t.Errorf("got %q, expected %q", url, want)
	}

	// The same dataset resolves to a different file in a different amendment.
	url, ok = root.DatasetURL(8, "ED Navaids", "AIXM 5.1")
	if !ok || url != DatasetsBaseURL+"8/ED_Navaids_8.xml" {
		t.Errorf("amendment 8: got %q, %v", url, ok)
	}

	// Alternate release type of the same leaf.
	url, ok = root.DatasetURL(7, "ED Navaids", "CSV")
	if !ok || url != DatasetsBaseURL+"7/ED_Navaids.csv" {
		t.Errorf("CSV release: got %q, %v", url, ok)
	}
}

func TestDatasetURLNotFound(t *testing.T) {
	root := decodeCatalog(t)

	if url, ok := root.DatasetURL(7, "ED Navaids", "AIXM 5.2"); ok {
		t.Errorf("unexpected resolution for absent release type: %q", url)
	}
	if url, ok := root.DatasetURL(7, "ED Runway", "AIXM 5.1"); ok {
		t.Errorf("unexpected resolution for unknown dataset: %q", url)
	}
	if url, ok := root.DatasetURL(9, "ED Navaids", "AIXM 5.1"); ok {
		t.Errorf("unexpected resolution for unknown amendment: %q", url)
	}

	// A group sharing a leaf's name must not match.
	if url, ok := root.DatasetURL(7, "Flight information", "AIXM 5.1"); ok {
		t.Errorf("unexpected resolution for group name: %q", url)
	}
}

func TestFrequencyFormat(t *testing.T) {
	type FS struct {
		f Frequency
		s string
	}

	for _, fs := range []FS{
		{f: Frequency(121900), s: "121.900"},
		{f: Frequency(112500), s: "112.500"},
		{f: Frequency(375000), s: "375.000"},
		{f: NewFrequency(112.4999), s: "112.500"},
		{f: NewFrequency(112.500), s: "112.500"},
		{f: NewFrequency(109.05), s: "109.050"},
	} {
		if fs.f.String() != fs.s {
			t.Errorf("Frequency String() %q; expected %q", fs.f.String(), fs.s)
		}
	}

	// Formatting is idempotent under re-parse: equal text implies equal
	// Frequency for matching purposes.
	a, b := NewFrequency(112.4999), NewFrequency(112.500)
	if a != b || a.String() != b.String() {
		t.Errorf("%v vs %v: expected equal frequencies", a, b)
	}
}
