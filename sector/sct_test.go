// sector/sct_test.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sector

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sctFile = `; Nuremberg sector file
; maintained by hand

[INFO]
Nuremberg 2025/07
EDMM
N049.29.55.000
E011.04.41.000

[VOR]
NUB 115.750 N049.30.10.000 E011.02.06.000
OTT 112.300 N048.10.49.000 E011.48.59.000

[NDB]
FUE 420.000 N049.25.48.000 E010.57.00.000

[FIXES]
ERNAS N049.07.40.000 E011.39.03.000
AKINI N049.34.27.000 E010.44.16.000

[AIRPORT]
EDDN 000.000 N049.29.55.000 E011.04.41.000 D

[GEO]
some line that is not touched N049.00.00.000 E011.00.00.000
another raw line
`

func TestParseSct(t *testing.T) {
	sct, err := ParseSct([]byte(sctFile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if sct.Name() != "Nuremberg 2025/07" {
		t.Errorf("name %q", sct.Name())
	}
	if len(sct.VORs) != 2 || sct.VORs[0].Designator != "NUB" || sct.VORs[0].Frequency != "115.750" {
		t.Errorf("VORs %+v", sct.VORs)
	}
	if len(sct.NDBs) != 1 || sct.NDBs[0].Frequency != "420.000" {
		t.Errorf("NDBs %+v", sct.NDBs)
	}
	if len(sct.Fixes) != 2 || sct.Fixes[1].Designator != "AKINI" {
		t.Errorf("fixes %+v", sct.Fixes)
	}
	if len(sct.Airports) != 1 || sct.Airports[0].CTRAirspace != "D" {
		t.Errorf("airports %+v", sct.Airports)
	}

	if raw, ok := sct.Sections.Get("GEO"); !ok {
		t.Errorf("[GEO] not preserved")
	} else if lines := raw.([]string); len(lines) != 2 || lines[1] != "another raw line" {
		t.Errorf("[GEO] lines %v", lines)
	}
}

func TestSctRoundTrip(t *testing.T) {
	sct, err := ParseSct([]byte(sctFile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := sct.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	// A rewritten file must parse back to the same entities, with the
	// passthrough sections byte-identical.
	sct2, err := ParseSct(buf.Bytes())
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, buf.String())
	}

	if sct2.Name() != sct.Name() {
		t.Errorf("name %q vs %q", sct2.Name(), sct.Name())
	}
	if len(sct2.VORs) != len(sct.VORs) || len(sct2.NDBs) != len(sct.NDBs) ||
		len(sct2.Fixes) != len(sct.Fixes) || len(sct2.Airports) != len(sct.Airports) {
		t.Fatalf("entity counts changed:\n%s", buf.String())
	}
	for i := range sct.VORs {
		if sct2.VORs[i].Designator != sct.VORs[i].Designator ||
			sct2.VORs[i].Frequency != sct.VORs[i].Frequency {
			t.Errorf("VOR %d: %+v vs %+v", i, sct2.VORs[i], sct.VORs[i])
		}
	}

	raw, _ := sct.Sections.Get("GEO")
	raw2, ok := sct2.Sections.Get("GEO")
	if !ok {
		t.Fatalf("[GEO] lost in round trip")
	}
	a, b := raw.([]string), raw2.([]string)
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Errorf("[GEO] changed: %v vs %v", a, b)
	}

	// Section order preserved.
	want := []string{"INFO", "VOR", "NDB", "FIXES", "AIRPORT", "GEO"}
	got := sct2.Sections.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("section order %v", got)
	}
}

func TestParseSctErrors(t *testing.T) {
	for _, s := range []string{
		"[VOR]\nNUB",
		"[VOR]\nNUB 115.750 nowhere atall",
		"[AIRPORT]\nEDDN 000.000 N049.29.55.000 E011.04.41.000",
		"[FIXES]\nERNAS N049.07.40.000 E011.39.03.000\n[FIXES]\n",
	} {
		if _, err := ParseSct([]byte(s)); err == nil {
			t.Errorf("%q: expected parse error", s)
		} else if !errors.Is(err, ErrParse) {
			t.Errorf("%q: error %v does not wrap ErrParse", s, err)
		}
	}
}

func TestParseIsec(t *testing.T) {
	data := `; intersections
ERNAS 49.127778 11.650833
ERNAS 52.000000 10.000000
AKINI 49.574167 10.737778
`
	im, err := ParseIsec([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(im) != 2 {
		t.Errorf("expected 2 designators, got %d", len(im))
	}
	if len(im["ERNAS"]) != 2 {
		t.Errorf("expected 2 ERNAS entries, got %+v", im["ERNAS"])
	}
	if len(im["AKINI"]) != 1 || im["AKINI"][0].Location.Latitude() < 49.5 {
		t.Errorf("AKINI %+v", im["AKINI"])
	}

	if _, err := ParseIsec([]byte("ERNAS 49.127778")); err == nil {
		t.Errorf("expected error for malformed line")
	}
}
