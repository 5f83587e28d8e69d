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

// Package device classifies devices by hardware address using the optional
// device spec table.
package device

import (
	"errors"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/mac"
	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// DefaultType is the type of devices without an explicit type.
const DefaultType = "default"

// Spec describes a single device.
type Spec struct {
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Specs is the device spec table, keyed by normalized hardware address.
type Specs map[string]Spec

type specsFile struct {
	MACAddrs map[string]Spec `yaml:"macAddrs"`
}

// ParseSpecs decodes a device spec table. Both YAML and JSON are accepted.
// A document without a macAddrs table yields nil, which classifies like a
// missing file. An explicitly empty table is a loaded table.
func ParseSpecs(raw []byte) (Specs, error) {
	var f specsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, serrors.Wrap("parsing device specs", err)
	}
	if f.MACAddrs == nil {
		return nil, nil
	}
	specs := make(Specs, len(f.MACAddrs))
	for addr, spec := range f.MACAddrs {
		key, err := mac.Normalize(addr)
		if err != nil {
			return nil, serrors.Wrap("invalid device spec entry", err)
		}
		if _, ok := specs[key]; ok {
			return nil, serrors.New("duplicate device spec entry", "mac", addr)
		}
		specs[key] = spec
	}
	return specs, nil
}

// LoadSpecs loads the device spec table from file. A missing file is not an
// error; nil is returned instead.
func LoadSpecs(file string) (Specs, error) {
	if file == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("Device specs do not exist, skipping", "file", file)
		return nil, nil
	}
	if err != nil {
		return nil, serrors.Wrap("reading device specs", err, "file", file)
	}
	specs, err := ParseSpecs(raw)
	if err != nil {
		return nil, serrors.Wrap("loading device specs", err, "file", file)
	}
	log.Debug("Loaded device specs", "file", file, "devices", len(specs))
	return specs, nil
}

// Classifier maps devices to groups and types. The zero value classifies
// without a spec table.
type Classifier struct {
	specs Specs
}

// NewClassifier creates a classifier backed by specs. specs may be nil.
func NewClassifier(specs Specs) *Classifier {
	return &Classifier{specs: specs}
}

// HasSpecs reports whether a device spec table is loaded.
func (c *Classifier) HasSpecs() bool {
	return c.specs != nil
}

// Lookup returns the spec entry for addr.
func (c *Classifier) Lookup(addr string) (Spec, bool) {
	if c.specs == nil {
		return Spec{}, false
	}
	key, err := mac.Normalize(addr)
	if err != nil {
		return Spec{}, false
	}
	spec, ok := c.specs[key]
	return spec, ok
}

// Group returns the group of the device. Devices without an explicit group
// form their own group, named after the address with separators removed.
func (c *Classifier) Group(addr string) string {
	if spec, ok := c.Lookup(addr); ok && spec.Group != "" {
		return spec.Group
	}
	return mac.Strip(addr)
}

// Type returns the type of the device, which selects its ACL template. The
// empty string is returned if no spec table is loaded, DefaultType if the
// table has no type for the device.
func (c *Classifier) Type(addr string) string {
	if c.specs == nil {
		return ""
	}
	spec, ok := c.Lookup(addr)
	if !ok {
		log.Info("No device spec found", "mac", addr)
		return DefaultType
	}
	if spec.Type == "" {
		return DefaultType
	}
	return spec.Type
}
