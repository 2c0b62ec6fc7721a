// aixm/decode.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aixm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/globin/airac-aixm-updater/math"
)

// The AIXM schema nests everything inside per-member time slices; these
// helper types pull out just the fields we consume. Locations come as
// either an ElevatedPoint or a bare Point carrying a gml pos of the form
// "latitude longitude" in decimal degrees.

type xmlLocation struct {
	ElevatedPoint struct {
		Pos string `xml:"pos"`
	} `xml:"ElevatedPoint"`
	Point struct {
		Pos string `xml:"pos"`
	} `xml:"Point"`
}

func (l xmlLocation) pos() string {
	if l.ElevatedPoint.Pos != "" {
		return l.ElevatedPoint.Pos
	}
	return l.Point.Pos
}

type xmlAirportHeliport struct {
	ICAO string `xml:"timeSlice>AirportHeliportTimeSlice>locationIndicatorICAO"`
	Pos  string `xml:"timeSlice>AirportHeliportTimeSlice>ARP>ElevatedPoint>pos"`
}

type xmlVOR struct {
	Designator string      `xml:"timeSlice>VORTimeSlice>designator"`
	Frequency  float32     `xml:"timeSlice>VORTimeSlice>frequency"`
	Location   xmlLocation `xml:"timeSlice>VORTimeSlice>location"`
}

type xmlNDB struct {
	Designator string      `xml:"timeSlice>NDBTimeSlice>designator"`
	Frequency  float32     `xml:"timeSlice>NDBTimeSlice>frequency"`
	Location   xmlLocation `xml:"timeSlice>NDBTimeSlice>location"`
}

type xmlDesignatedPoint struct {
	Designator string      `xml:"timeSlice>DesignatedPointTimeSlice>designator"`
	Location   xmlLocation `xml:"timeSlice>DesignatedPointTimeSlice>location"`
}

func parsePos(pos string) (math.Point2LL, error) {
	f := strings.Fields(pos)
	if len(f) != 2 {
		return math.Point2LL{}, fmt.Errorf("%q: malformed gml pos", pos)
	}
	lat, err := strconv.ParseFloat(f[0], 32)
	if err != nil {
		return math.Point2LL{}, fmt.Errorf("%q: malformed gml pos: %v", pos, err)
	}
	lng, err := strconv.ParseFloat(f[1], 32)
	if err != nil {
		return math.Point2LL{}, fmt.Errorf("%q: malformed gml pos: %v", pos, err)
	}
	return math.Point2LL{float32(lng), float32(lat)}, nil
}

// DecodeRecords decodes an AIXM basic message into a flat sequence of
// facility Records. The full schema is enormous, so rather than
// declaring types to represent its nested complexity we walk the token
// stream and decode just the member elements we care about; anything
// else passes through undecoded.
func DecodeRecords(r io.Reader) ([]Record, error) {
	decoder := xml.NewDecoder(r)

	var records []Record
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "AirportHeliport":
			var ap xmlAirportHeliport
			if err := decoder.DecodeElement(&ap, &se); err != nil {
				return nil, err
			}
			p, err := parsePos(ap.Pos)
			if err != nil {
				return nil, err
			}
			records = append(records, Airport{ICAO: ap.ICAO, Location: p})

		case "VOR":
			var vor xmlVOR
			if err := decoder.DecodeElement(&vor, &se); err != nil {
				return nil, err
			}
			p, err := parsePos(vor.Location.pos())
			if err != nil {
				return nil, err
			}
			records = append(records, VOR{
				Designator: vor.Designator,
				Location:   p,
				Frequency:  NewFrequency(vor.Frequency),
			})

		case "NDB":
			var ndb xmlNDB
			if err := decoder.DecodeElement(&ndb, &se); err != nil {
				return nil, err
			}
			p, err := parsePos(ndb.Location.pos())
			if err != nil {
				return nil, err
			}
			records = append(records, NDB{
				Designator: ndb.Designator,
				Location:   p,
				Frequency:  NewFrequency(ndb.Frequency),
			})

		case "DesignatedPoint":
			var dp xmlDesignatedPoint
			if err := decoder.DecodeElement(&dp, &se); err != nil {
				return nil, err
			}
			p, err := parsePos(dp.Location.pos())
			if err != nil {
				return nil, err
			}
			records = append(records, Waypoint{Designator: dp.Designator, Location: p})
		}
	}

	return records, nil
}
