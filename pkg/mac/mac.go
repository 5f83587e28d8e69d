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

// Package mac contains helpers for hardware addresses as they appear in
// binding events, device specs and ACL match fields.
package mac

import (
	"net"
	"strings"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// Normalize returns the canonical form of an EUI-48 address: lower case hex
// octets separated by colons. Any notation accepted by net.ParseMAC is
// accepted.
func Normalize(s string) (string, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return "", serrors.Wrap("parsing hardware address", err, "mac", s)
	}
	if len(hw) != 6 {
		return "", serrors.New("hardware address is not EUI-48", "mac", s, "len", len(hw))
	}
	return hw.String(), nil
}

// MustNormalize is like Normalize but panics on error. It is intended for
// tests and constants.
func MustNormalize(s string) string {
	n, err := Normalize(s)
	if err != nil {
		panic(err)
	}
	return n
}

var separators = strings.NewReplacer(":", "", "-", "", ".", "")

// Strip removes all separator characters from s. The case of the hex digits
// is preserved.
func Strip(s string) string {
	return separators.Replace(s)
}
