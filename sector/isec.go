// sector/isec.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sector

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/globin/airac-aixm-updater/math"
)

// IsecMap holds the intersections of an intersection list file, keyed
// by designator. It is multi-valued: several same-named intersections
// may legitimately coexist at different locations, so reconciliation
// scopes its distance matching to the bucket for one designator.
//
// The format is read and merged in memory only; writing it back is out
// of scope, matching the tool this replaces.
type IsecMap map[string][]Fix

// ParseIsec decodes an intersection list: one intersection per line,
// "designator latitude longitude", decimal degrees, ';' comments.
func ParseIsec(data []byte) (IsecMap, error) {
	im := make(IsecMap)

	lineno := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, fmt.Errorf("line %d: %w: %q: malformed intersection", lineno, ErrParse, line)
		}
		p, err := math.ParseLatLong([]byte(f[1] + " " + f[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineno, ErrParse, err)
		}

		im[f[0]] = append(im[f[0]], Fix{Designator: f[0], Location: p})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return im, nil
}
