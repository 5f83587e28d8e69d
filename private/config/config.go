// Copyright 2019 Anapaya Systems
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

// Package config defines the pattern shared by all TOML configuration blocks
// of DAQ services.
//
// A block implements Config: InitDefaults fills unset fields, Validate
// checks the result and Sample writes a commented example of the block.
// Blocks nest by calling the helpers of this package on their children, so a
// whole service configuration is defaulted, validated and sampled from its
// root. Tests decode the sample back into the block to keep the two in sync.
//
// Sample may panic if the writer fails.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// ID is the sample context key holding the service ID.
const ID = "id"

// Config is implemented by every configuration block.
type Config interface {
	Sampler
	Validator
	Defaulter
}

// Validator checks a block and all blocks nested in it.
type Validator interface {
	Validate() error
}

// Defaulter sets the unset fields of a block and all blocks nested in it.
type Defaulter interface {
	InitDefaults()
}

// Sampler writes a commented example of a block to dst. ctx carries values,
// such as the service ID, that the sample text depends on.
type Sampler interface {
	Sample(dst io.Writer, path Path, ctx CtxMap)
}

// TableSampler is a Sampler whose sample is written as a TOML table named
// ConfigName.
type TableSampler interface {
	Sampler
	ConfigName() string
}

// Path is the dotted name of a TOML table, one element per level.
type Path []string

// Extend returns a copy of p with s appended. p is never modified.
func (p Path) Extend(s string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// NoValidator can be embedded in blocks without constraints.
type NoValidator struct{}

func (NoValidator) Validate() error { return nil }

// NoDefaulter can be embedded in blocks without defaults.
type NoDefaulter struct{}

func (NoDefaulter) InitDefaults() {}

// InitAll calls InitDefaults on every defaulter in order.
func InitAll(defaulters ...Defaulter) {
	for _, d := range defaulters {
		d.InitDefaults()
	}
}

// ValidateAll validates in order and stops at the first failure.
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return serrors.Wrap("invalid configuration", err, "block", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// Decode decodes raw TOML into cfg. Keys that do not map to a field are
// rejected.
func Decode(raw []byte, cfg any) error {
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return serrors.Wrap("decoding toml", err)
	}
	return nil
}

// LoadFile reads file and decodes it into cfg.
func LoadFile(file string, cfg any) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return serrors.Wrap("reading config file", err, "file", file)
	}
	return Decode(raw, cfg)
}
