// updater/reconcile_test.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package updater

import (
	"strings"
	"testing"

	"github.com/globin/airac-aixm-updater/aixm"
	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/math"
	"github.com/globin/airac-aixm-updater/sector"
)

func testSct() *sector.Sct {
	return &sector.Sct{
		Info: []string{"Nuremberg"},
		Airports: []sector.Airport{
			{Designator: "EDDN", Frequency: "118.305", Location: math.Point2LL{11.078, 49.5}, CTRAirspace: "C"},
		},
		VORs: []sector.VOR{
			{Designator: "NUB", Frequency: "115.750", Location: math.Point2LL{11.035, 49.5}},
		},
		NDBs: []sector.NDB{
			{Designator: "FUE", Frequency: "420.000", Location: math.Point2LL{10.95, 49.5}},
		},
		Fixes: []sector.Fix{
			{Designator: "ERNAS", Location: math.Point2LL{11.65, 49.1278}},
		},
	}
}

func msgChan() (chan log.Message, func() []log.Message) {
	ch := make(chan log.Message, log.MessageChanSize)
	return ch, func() []log.Message {
		close(ch)
		var msgs []log.Message
		for m := range ch {
			msgs = append(msgs, m)
		}
		return msgs
	}
}

func TestReconcileSctAirports(t *testing.T) {
	in := testSct()
	ch, collect := msgChan()
	out := ReconcileSct(in, []aixm.Record{
		aixm.Airport{ICAO: "EDDN", Location: math.Point2LL{11.1, 49.4986}},
		aixm.Airport{ICAO: "", Location: math.Point2LL{8, 50}}, // no ICAO, ignored
		aixm.Airport{ICAO: "EDDM", Location: math.Point2LL{11.786, 48.3538}},
	}, ch, nil)

	if len(out.Airports) != 2 {
		t.Fatalf("expected 2 airports, got %+v", out.Airports)
	}
	eddn := out.Airports[0]
	if eddn.Location != (math.Point2LL{11.1, 49.4986}) {
		t.Errorf("EDDN not moved: %+v", eddn)
	}
	// Only the coordinate may change on a match.
	if eddn.Frequency != "118.305" || eddn.CTRAirspace != "C" {
		t.Errorf("matched airport fields clobbered: %+v", eddn)
	}
	eddm := out.Airports[1]
	if eddm.Designator != "EDDM" || eddm.CTRAirspace != "D" {
		t.Errorf("inserted airport wrong: %+v", eddm)
	}

	// The input must be left alone.
	if len(in.Airports) != 1 || in.Airports[0].Location != (math.Point2LL{11.078, 49.5}) {
		t.Errorf("input mutated: %+v", in.Airports)
	}

	msgs := collect()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Content, "Adding new airport: EDDM") {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestReconcileSctNavaids(t *testing.T) {
	in := testSct()
	ch, collect := msgChan()
	out := ReconcileSct(in, []aixm.Record{
		aixm.VOR{Designator: "NUB", Frequency: aixm.NewFrequency(115.75), Location: math.Point2LL{11.04, 49.51}},
		// Same designator, different frequency: a distinct navaid.
		aixm.VOR{Designator: "NUB", Frequency: aixm.NewFrequency(112.5), Location: math.Point2LL{11.2, 49.6}},
		aixm.NDB{Designator: "FUE", Frequency: aixm.NewFrequency(420), Location: math.Point2LL{10.96, 49.51}},
	}, ch, nil)

	if len(out.VORs) != 2 {
		t.Fatalf("expected 2 VORs, got %+v", out.VORs)
	}
	if out.VORs[0].Location != (math.Point2LL{11.04, 49.51}) {
		t.Errorf("matched VOR not moved: %+v", out.VORs[0])
	}
	if out.VORs[1].Frequency != "112.500" {
		t.Errorf("inserted VOR frequency: %+v", out.VORs[1])
	}
	if len(out.NDBs) != 1 || out.NDBs[0].Location != (math.Point2LL{10.96, 49.51}) {
		t.Errorf("matched NDB not moved: %+v", out.NDBs)
	}

	msgs := collect()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Content, "Adding new VOR: NUB 112.500") {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestReconcileSctFixes(t *testing.T) {
	in := testSct()
	ch, collect := msgChan()
	out := ReconcileSct(in, []aixm.Record{
		// ~200 m from the existing ERNAS: same fix, moved.
		aixm.Waypoint{Designator: "ERNAS", Location: math.Point2LL{11.65, 49.1296}},
		// Insertable five-letter waypoint.
		aixm.Waypoint{Designator: "AKINI", Location: math.Point2LL{11.2, 49.8}},
		// Not insertable: wrong length or digit-initial.
		aixm.Waypoint{Designator: "DN437A", Location: math.Point2LL{11.3, 49.3}},
		aixm.Waypoint{Designator: "86NBG", Location: math.Point2LL{11.4, 49.2}},
		aixm.Waypoint{Designator: "OTT", Location: math.Point2LL{11.8, 48.2}},
	}, ch, nil)

	if len(out.Fixes) != 2 {
		t.Fatalf("expected 2 fixes, got %+v", out.Fixes)
	}
	if out.Fixes[0].Location != (math.Point2LL{11.65, 49.1296}) {
		t.Errorf("near fix not moved: %+v", out.Fixes[0])
	}
	if out.Fixes[1].Designator != "AKINI" {
		t.Errorf("expected AKINI inserted: %+v", out.Fixes[1])
	}

	// DN437A is six characters, 86NBG is digit-initial, OTT is short.
	// None may be inserted or produce a message.
	msgs := collect()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Content, "Adding new Fix: AKINI") {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestReconcileSctFarSameNameFix(t *testing.T) {
	in := testSct()
	ch, _ := msgChan()
	// Same designator but ~50 km away: a different fix, inserted.
	out := ReconcileSct(in, []aixm.Record{
		aixm.Waypoint{Designator: "ERNAS", Location: math.Point2LL{12.3, 49.1278}},
	}, ch, nil)

	if len(out.Fixes) != 2 {
		t.Fatalf("expected insert of far same-name fix, got %+v", out.Fixes)
	}
	if out.Fixes[0].Location != (math.Point2LL{11.65, 49.1278}) {
		t.Errorf("original fix moved: %+v", out.Fixes[0])
	}
}

func TestReconcileIsec(t *testing.T) {
	in := sector.IsecMap{
		"ERNAS": {
			{Designator: "ERNAS", Location: math.Point2LL{11.65, 49.1278}},
			{Designator: "ERNAS", Location: math.Point2LL{12.3, 49.1278}},
		},
		"AKINI": {
			{Designator: "AKINI", Location: math.Point2LL{11.2, 49.8}},
		},
	}
	ch, collect := msgChan()
	out := ReconcileIsec(in, []aixm.Record{
		// Near the second ERNAS only.
		aixm.Waypoint{Designator: "ERNAS", Location: math.Point2LL{12.3, 49.1296}},
		// Far from AKINI: inserted alongside it.
		aixm.Waypoint{Designator: "AKINI", Location: math.Point2LL{10.0, 50.5}},
		// Not a waypoint record: ignored.
		aixm.VOR{Designator: "NUB", Frequency: aixm.NewFrequency(115.75), Location: math.Point2LL{11.035, 49.5}},
	}, ch, nil)

	if out["ERNAS"][0].Location != (math.Point2LL{11.65, 49.1278}) {
		t.Errorf("wrong ERNAS moved: %+v", out["ERNAS"])
	}
	if out["ERNAS"][1].Location != (math.Point2LL{12.3, 49.1296}) {
		t.Errorf("near ERNAS not moved: %+v", out["ERNAS"])
	}
	if len(out["AKINI"]) != 2 {
		t.Errorf("far AKINI not inserted: %+v", out["AKINI"])
	}

	// Purity: the input map's buckets are untouched.
	if in["ERNAS"][1].Location != (math.Point2LL{12.3, 49.1278}) {
		t.Errorf("input mutated: %+v", in["ERNAS"])
	}

	msgs := collect()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Content, "Adding new Fix: AKINI") {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}
