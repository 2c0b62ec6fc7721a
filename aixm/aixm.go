// aixm/aixm.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aixm provides access to the DFS AIXM datasets: discovery of
// published amendment cycles via the dataset catalog, download and
// decoding of the facility datasets themselves, and a local cache of
// fetched dataset files.
package aixm

import (
	"fmt"

	"github.com/globin/airac-aixm-updater/math"
)

// Record is a single facility taken from an AIXM dataset. Member kinds
// beyond the ones modeled here are skipped at decode time so that new
// dataset contents don't break older builds.
type Record interface {
	isRecord()
}

// Airport gives an airport/heliport's reference point. ICAO is empty if
// the facility has no ICAO location indicator; such records are not
// usable for matching and are ignored downstream.
type Airport struct {
	ICAO     string
	Location math.Point2LL
}

type VOR struct {
	Designator string
	Location   math.Point2LL
	Frequency  Frequency // MHz
}

type NDB struct {
	Designator string
	Location   math.Point2LL
	Frequency  Frequency // kHz
}

// Waypoint is an AIXM designated point; both en-route fixes and
// coordinate-derived point codes show up as these.
type Waypoint struct {
	Designator string
	Location   math.Point2LL
}

func (Airport) isRecord()  {}
func (VOR) isRecord()      {}
func (NDB) isRecord()      {}
func (Waypoint) isRecord() {}

// Frequencies are scaled by 1000 and then stored in integers; String
// gives the canonical three-decimal text form that sector files store,
// so frequency comparisons go through it.
type Frequency int

func NewFrequency(f float32) Frequency {
	// 0.5 is key for handling rounding!
	return Frequency(f*1000 + 0.5)
}

func (f Frequency) String() string {
	return fmt.Sprintf("%03d.%03d", f/1000, f%1000)
}
