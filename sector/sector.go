// sector/sector.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sector reads and writes the locally maintained EuroScope
// datasets: .sct sector files and intersection lists. Parsing keeps
// unrecognized .sct sections verbatim so that a rewrite only touches
// the facility sections this tool maintains.
package sector

import (
	"errors"

	"github.com/globin/airac-aixm-updater/math"
)

var (
	ErrReadDir = errors.New("unable to read directory")
	ErrOpen    = errors.New("unable to open file")
	ErrParse   = errors.New("unable to parse file")
	ErrRename  = errors.New("unable to rename file")
	ErrCreate  = errors.New("unable to create file")
	ErrWrite   = errors.New("unable to write file")
)

// Airport is an aerodrome entry of the [AIRPORT] section. Frequency and
// CTRAirspace are locally curated and never touched by reconciliation.
type Airport struct {
	Designator  string
	Frequency   string
	Location    math.Point2LL
	CTRAirspace string
}

// VOR stores its frequency as the canonical three-decimal text from the
// file, not a number; matching against source data formats first.
type VOR struct {
	Designator string
	Frequency  string
	Location   math.Point2LL
}

type NDB struct {
	Designator string
	Frequency  string
	Location   math.Point2LL
}

type Fix struct {
	Designator string
	Location   math.Point2LL
}
