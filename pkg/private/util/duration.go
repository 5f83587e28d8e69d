// Copyright 2018 ETH Zurich
// Copyright 2026 The DAQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package util contains small helpers shared by configuration code.
package util

import (
	"regexp"
	"strconv"
	"time"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = 365 * day
)

var durationRe = regexp.MustCompile(`^(-?[0-9]+)(y|w|d|h|m|s|ms|us|µs|ns)$`)

// units is ordered from the largest to the smallest unit. FmtDuration picks
// the first one that divides the duration.
var units = []struct {
	suffix string
	d      time.Duration
}{
	{"y", year},
	{"w", week},
	{"d", day},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
	{"ns", time.Nanosecond},
}

// ParseDuration parses a duration consisting of an integer and a single
// unit, e.g. "30s" or "2d". Supported units are y, w, d, h, m, s, ms, us (or
// µs) and ns.
func ParseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, serrors.New("invalid duration", "value", s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, serrors.Wrap("parsing duration", err, "value", s)
	}
	suffix := m[2]
	if suffix == "µs" {
		suffix = "us"
	}
	for _, u := range units {
		if u.suffix == suffix {
			return time.Duration(n) * u.d, nil
		}
	}
	return 0, serrors.New("unknown duration unit", "value", s)
}

// FmtDuration formats d with the largest unit that represents it exactly.
func FmtDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	for _, u := range units {
		if d%u.d == 0 {
			return strconv.FormatInt(int64(d/u.d), 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(d), 10) + "ns"
}
