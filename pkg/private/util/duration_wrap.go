// Copyright 2018 Anapaya Systems
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

package util

import (
	"encoding"
	"time"

	"github.com/spf13/pflag"
)

var (
	_ encoding.TextUnmarshaler = (*DurWrap)(nil)
	_ encoding.TextMarshaler   = DurWrap{}
	_ pflag.Value              = (*DurWrap)(nil)
)

// DurWrap is a duration that is read from and written to configuration in
// the ParseDuration format.
type DurWrap struct {
	time.Duration
}

func (d *DurWrap) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

func (d DurWrap) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DurWrap) Set(text string) error {
	parsed, err := ParseDuration(text)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d DurWrap) String() string {
	return FmtDuration(d.Duration)
}

// Type implements pflag.Value.
func (d *DurWrap) Type() string {
	return "duration"
}
