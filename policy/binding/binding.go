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

// Package binding keeps track of which device is plugged into which access
// port.
package binding

import (
	"fmt"
	"sort"

	"github.com/faucetsdn/daq/pkg/mac"
	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// PortRange is the half-open range of ports [Start, End).
type PortRange struct {
	Start int
	End   int
}

// Ports returns all ports in the range in ascending order.
func (r PortRange) Ports() []int {
	if r.End <= r.Start {
		return nil
	}
	ports := make([]int, 0, r.End-r.Start)
	for p := r.Start; p < r.End; p++ {
		ports = append(ports, p)
	}
	return ports
}

func (r PortRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Target is the place a device is bound to.
type Target struct {
	// Port is the access port the device is plugged into.
	Port int
	// Range is the set of ports traffic of the device may be forwarded to.
	Range PortRange
}

// Validate checks that the target is well formed.
func (t Target) Validate() error {
	if t.Port <= 0 {
		return serrors.New("invalid port", "port", t.Port)
	}
	if t.Range.End < t.Range.Start {
		return serrors.New("invalid port range", "range", t.Range.String())
	}
	return nil
}

// Binding is a device bound to a target.
type Binding struct {
	// MAC is the normalized hardware address of the device.
	MAC string
	Target
}

// Change describes the effect of Table.Bind.
type Change struct {
	// Changed is false if the binding was already present.
	Changed bool
	// Previous is the replaced binding, if the device was bound to a
	// different target before.
	Previous *Binding
}

// Table maps devices to their bindings. A device is bound at most once.
// Table is not safe for concurrent use.
type Table struct {
	entries map[string]Binding
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Binding)}
}

// Bind binds the device with address addr to target. Binding a device to the
// target it is already bound to is a no-op. Binding it to a different target
// replaces the old binding, which is reported in the change.
func (t *Table) Bind(addr string, target Target) (Change, error) {
	key, err := mac.Normalize(addr)
	if err != nil {
		return Change{}, err
	}
	if err := target.Validate(); err != nil {
		return Change{}, serrors.Wrap("binding device", err, "mac", key)
	}
	b := Binding{MAC: key, Target: target}
	prev, ok := t.entries[key]
	if ok && prev == b {
		return Change{}, nil
	}
	t.entries[key] = b
	if !ok {
		return Change{Changed: true}, nil
	}
	return Change{Changed: true, Previous: &prev}, nil
}

// Unbind removes the binding of the device with address addr. The removed
// binding is returned. The flag is false if the device was not bound.
func (t *Table) Unbind(addr string) (Binding, bool, error) {
	key, err := mac.Normalize(addr)
	if err != nil {
		return Binding{}, false, err
	}
	b, ok := t.entries[key]
	if !ok {
		return Binding{}, false, nil
	}
	delete(t.entries, key)
	return b, true, nil
}

// Lookup returns the binding of the device with address addr.
func (t *Table) Lookup(addr string) (Binding, bool) {
	key, err := mac.Normalize(addr)
	if err != nil {
		return Binding{}, false
	}
	b, ok := t.entries[key]
	return b, ok
}

// Snapshot returns a copy of all bindings ordered by address.
func (t *Table) Snapshot() []Binding {
	bindings := make([]Binding, 0, len(t.entries))
	for _, b := range t.entries {
		bindings = append(bindings, b)
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].MAC < bindings[j].MAC })
	return bindings
}

// OnPort returns the bindings of all devices plugged into port, ordered by
// address.
func OnPort(bindings []Binding, port int) []Binding {
	var on []Binding
	for _, b := range bindings {
		if b.Port == port {
			on = append(on, b)
		}
	}
	return on
}

// OnPort returns the bindings of all devices plugged into port, ordered by
// address.
func (t *Table) OnPort(port int) []Binding {
	return OnPort(t.Snapshot(), port)
}

// Len returns the number of bound devices.
func (t *Table) Len() int {
	return len(t.entries)
}
