// sector/sct.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sector

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/globin/airac-aixm-updater/math"

	"github.com/iancoleman/orderedmap"
)

// Sct is the parsed form of one .sct sector file. The facility sections
// ([AIRPORT], [VOR], [NDB], [FIXES]) are decoded into entities; [INFO]
// and every other section are carried as raw lines. Sections is keyed
// by section name in file order and records where each section goes
// when the file is written back; for the facility sections the stored
// value is ignored in favor of the decoded entities.
type Sct struct {
	Header   []string // comment lines before the first section
	Info     []string
	Airports []Airport
	VORs     []VOR
	NDBs     []NDB
	Fixes    []Fix
	Sections *orderedmap.OrderedMap
}

// Name returns the sector name from the [INFO] section's first line.
func (s *Sct) Name() string {
	if len(s.Info) == 0 {
		return ""
	}
	return s.Info[0]
}

const (
	sectionInfo    = "INFO"
	sectionVOR     = "VOR"
	sectionNDB     = "NDB"
	sectionFixes   = "FIXES"
	sectionAirport = "AIRPORT"
)

func facilitySection(name string) bool {
	switch name {
	case sectionInfo, sectionVOR, sectionNDB, sectionFixes, sectionAirport:
		return true
	}
	return false
}

// ParseSct decodes a .sct sector file.
func ParseSct(data []byte) (*Sct, error) {
	sct := &Sct{Sections: orderedmap.New()}

	section := ""
	var raw []string
	lineno := 0

	trimBlank := func(lines []string) []string {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		return lines
	}
	flush := func() {
		if section != "" && !facilitySection(section) {
			sct.Sections.Set(section, trimBlank(raw))
		}
		raw = nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lineno++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			flush()
			section = trimmed[1 : len(trimmed)-1]
			if _, ok := sct.Sections.Get(section); ok {
				return nil, fmt.Errorf("line %d: %w: duplicate section [%s]", lineno, ErrParse, section)
			}
			// Record the section's position; facility sections are
			// regenerated from entities at write time.
			sct.Sections.Set(section, []string(nil))
			continue
		}

		if section == "" {
			sct.Header = append(sct.Header, line)
			continue
		}

		if !facilitySection(section) {
			raw = append(raw, line)
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if err := parseFacilityLine(sct, section, trimmed); err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineno, ErrParse, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	flush()
	sct.Header = trimBlank(sct.Header)

	return sct, nil
}

func parseFacilityLine(sct *Sct, section, line string) error {
	if section == sectionInfo {
		sct.Info = append(sct.Info, line)
		return nil
	}

	f := strings.Fields(line)
	coord := func(i int) (math.Point2LL, error) {
		if len(f) < i+2 {
			return math.Point2LL{}, fmt.Errorf("%q: missing coordinate", line)
		}
		return math.ParseLatLong([]byte(f[i] + " " + f[i+1]))
	}

	switch section {
	case sectionVOR:
		if len(f) < 4 {
			return fmt.Errorf("%q: malformed VOR", line)
		}
		p, err := coord(2)
		if err != nil {
			return err
		}
		sct.VORs = append(sct.VORs, VOR{Designator: f[0], Frequency: f[1], Location: p})

	case sectionNDB:
		if len(f) < 4 {
			return fmt.Errorf("%q: malformed NDB", line)
		}
		p, err := coord(2)
		if err != nil {
			return err
		}
		sct.NDBs = append(sct.NDBs, NDB{Designator: f[0], Frequency: f[1], Location: p})

	case sectionFixes:
		if len(f) < 3 {
			return fmt.Errorf("%q: malformed fix", line)
		}
		p, err := coord(1)
		if err != nil {
			return err
		}
		sct.Fixes = append(sct.Fixes, Fix{Designator: f[0], Location: p})

	case sectionAirport:
		if len(f) < 5 {
			return fmt.Errorf("%q: malformed airport", line)
		}
		p, err := coord(2)
		if err != nil {
			return err
		}
		sct.Airports = append(sct.Airports, Airport{
			Designator:  f[0],
			Frequency:   f[1],
			Location:    p,
			CTRAirspace: f[4],
		})
	}
	return nil
}

// Write serializes the sector file: facility sections are regenerated
// from the entity slices, everything else is emitted as it was read, in
// the original section order.
func (s *Sct) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, line := range s.Header {
		fmt.Fprintln(bw, line)
	}

	for i, section := range s.Sections.Keys() {
		if i > 0 || len(s.Header) > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "[%s]\n", section)

		switch section {
		case sectionInfo:
			for _, line := range s.Info {
				fmt.Fprintln(bw, line)
			}
		case sectionVOR:
			for _, v := range s.VORs {
				fmt.Fprintf(bw, "%s %s %s\n", v.Designator, v.Frequency, v.Location.DMSString())
			}
		case sectionNDB:
			for _, n := range s.NDBs {
				fmt.Fprintf(bw, "%s %s %s\n", n.Designator, n.Frequency, n.Location.DMSString())
			}
		case sectionFixes:
			for _, f := range s.Fixes {
				fmt.Fprintf(bw, "%s %s\n", f.Designator, f.Location.DMSString())
			}
		case sectionAirport:
			for _, ap := range s.Airports {
				fmt.Fprintf(bw, "%s %s %s %s\n", ap.Designator, ap.Frequency,
					ap.Location.DMSString(), ap.CTRAirspace)
			}
		default:
			if raw, ok := s.Sections.Get(section); ok {
				for _, line := range raw.([]string) {
					fmt.Fprintln(bw, line)
				}
			}
		}
	}

	return bw.Flush()
}
