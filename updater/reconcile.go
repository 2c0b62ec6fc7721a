// updater/reconcile.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package updater

import (
	"fmt"

	"github.com/globin/airac-aixm-updater/aixm"
	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/math"
	"github.com/globin/airac-aixm-updater/sector"

	"github.com/brunoga/deep"
)

const (
	// A fix within this distance of a same-named AIXM point is treated
	// as the same fix and moved; anything farther apart is a different
	// fix that happens to share the designator.
	fixMatchMaxMeters = 1000

	// En-route waypoints have five-letter designators; shorter codes
	// and digit-initial ones are coordinate-derived point codes or
	// terminal-procedure points that must not be inserted.
	fixDesignatorLen = 5
)

func insertableFix(designator string) bool {
	return len(designator) == fixDesignatorLen &&
		!(designator[0] >= '0' && designator[0] <= '9')
}

// ReconcileSct folds the AIXM records into a sector file: a record that
// matches an existing entity moves it to the record's coordinate and
// changes nothing else, an unmatched record is inserted, or for fixes
// inserted only when its designator looks like an en-route waypoint.
// The input is not modified.
func ReconcileSct(sct *sector.Sct, records []aixm.Record, ch chan<- log.Message, lg *log.Logger) *sector.Sct {
	out := deep.MustCopy(*sct)

	for _, rec := range records {
		switch rec := rec.(type) {
		case aixm.Airport:
			reconcileAirport(&out, rec, ch, lg)
		case aixm.VOR:
			reconcileVOR(&out, rec, ch, lg)
		case aixm.NDB:
			reconcileNDB(&out, rec, ch, lg)
		case aixm.Waypoint:
			reconcileFix(&out, rec, ch, lg)
		}
	}

	return &out
}

func reconcileAirport(sct *sector.Sct, rec aixm.Airport, ch chan<- log.Message, lg *log.Logger) {
	// No ICAO location indicator means nothing to match on.
	if rec.ICAO == "" {
		return
	}

	for i := range sct.Airports {
		if sct.Airports[i].Designator == rec.ICAO {
			sct.Airports[i].Location = rec.Location
			return
		}
	}

	log.TrySend(ch, log.DebugMessage(fmt.Sprintf("Adding new airport: %s", rec.ICAO)), lg)
	sct.Airports = append(sct.Airports, sector.Airport{
		Designator:  rec.ICAO,
		Frequency:   "000.000",
		Location:    rec.Location,
		CTRAirspace: "D",
	})
}

func reconcileVOR(sct *sector.Sct, rec aixm.VOR, ch chan<- log.Message, lg *log.Logger) {
	freq := rec.Frequency.String()
	for i := range sct.VORs {
		if sct.VORs[i].Designator == rec.Designator && sct.VORs[i].Frequency == freq {
			sct.VORs[i].Location = rec.Location
			return
		}
	}

	log.TrySend(ch, log.DebugMessage(fmt.Sprintf("Adding new VOR: %s %s", rec.Designator, freq)), lg)
	sct.VORs = append(sct.VORs, sector.VOR{Designator: rec.Designator, Frequency: freq, Location: rec.Location})
}

func reconcileNDB(sct *sector.Sct, rec aixm.NDB, ch chan<- log.Message, lg *log.Logger) {
	freq := rec.Frequency.String()
	for i := range sct.NDBs {
		if sct.NDBs[i].Designator == rec.Designator && sct.NDBs[i].Frequency == freq {
			sct.NDBs[i].Location = rec.Location
			return
		}
	}

	log.TrySend(ch, log.DebugMessage(fmt.Sprintf("Adding new NDB: %s %s", rec.Designator, freq)), lg)
	sct.NDBs = append(sct.NDBs, sector.NDB{Designator: rec.Designator, Frequency: freq, Location: rec.Location})
}

func reconcileFix(sct *sector.Sct, rec aixm.Waypoint, ch chan<- log.Message, lg *log.Logger) {
	for i := range sct.Fixes {
		if sct.Fixes[i].Designator == rec.Designator &&
			math.MetersDistance2LL(sct.Fixes[i].Location, rec.Location) < fixMatchMaxMeters {
			sct.Fixes[i].Location = rec.Location
			return
		}
	}

	if !insertableFix(rec.Designator) {
		return
	}

	log.TrySend(ch, log.DebugMessage(fmt.Sprintf("Adding new Fix: %s", rec.Designator)), lg)
	sct.Fixes = append(sct.Fixes, sector.Fix{Designator: rec.Designator, Location: rec.Location})
}

// ReconcileIsec folds the AIXM designated points into an intersection
// map; only the multi-valued bucket under the record's own designator
// is searched for a match. The input is not modified.
func ReconcileIsec(isec sector.IsecMap, records []aixm.Record, ch chan<- log.Message, lg *log.Logger) sector.IsecMap {
	out := deep.MustCopy(isec)

	for _, rec := range records {
		wpt, ok := rec.(aixm.Waypoint)
		if !ok {
			continue
		}

		fixes := out[wpt.Designator]
		matched := false
		for i := range fixes {
			if math.MetersDistance2LL(fixes[i].Location, wpt.Location) < fixMatchMaxMeters {
				fixes[i].Location = wpt.Location
				matched = true
				break
			}
		}
		if matched || !insertableFix(wpt.Designator) {
			continue
		}

		log.TrySend(ch, log.DebugMessage(fmt.Sprintf("Adding new Fix: %s", wpt.Designator)), lg)
		out[wpt.Designator] = append(out[wpt.Designator], sector.Fix{
			Designator: wpt.Designator,
			Location:   wpt.Location,
		})
	}

	return out
}
