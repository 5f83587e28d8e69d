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

// Package topology models the FAUCET network configuration file.
//
// Only the parts the policy compiler reads or modifies are typed. All other
// keys are kept as they are and written back unchanged.
package topology

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy/acl"
)

var (
	// ErrACLAlreadyDefined indicates that an ACL or an ACL reference that is
	// managed by the compiler is already present in the base configuration.
	ErrACLAlreadyDefined = serrors.New("acl already defined")
	// ErrMalformedStack indicates a stacking link to an unexpected switch.
	ErrMalformedStack = serrors.New("malformed stack reference")
	// ErrNotFound indicates that a switch or interface does not exist.
	ErrNotFound = serrors.New("not found")
)

// Document is a FAUCET network configuration.
type Document struct {
	ACLs            map[string]acl.Rules   `yaml:"acls,omitempty"`
	DPs             map[string]*DP         `yaml:"dps"`
	Include         []string               `yaml:"include,omitempty"`
	IncludeOptional []string               `yaml:"include-optional,omitempty"`
	Extra           map[string]interface{} `yaml:",inline"`
}

// DP is a single switch.
type DP struct {
	DPID            *uint64                `yaml:"dp_id,omitempty"`
	InterfaceRanges map[string]*Interface  `yaml:"interface_ranges,omitempty"`
	Interfaces      map[int]*Interface     `yaml:"interfaces,omitempty"`
	Extra           map[string]interface{} `yaml:",inline"`
}

// Interface is a switch port or a range of ports.
type Interface struct {
	ACLIn string                 `yaml:"acl_in,omitempty"`
	Name  string                 `yaml:"name,omitempty"`
	Stack *Stack                 `yaml:"stack,omitempty"`
	Extra map[string]interface{} `yaml:",inline"`
}

// Stack is a stacking link to another switch.
type Stack struct {
	DP    string                 `yaml:"dp"`
	Port  int                    `yaml:"port,omitempty"`
	Extra map[string]interface{} `yaml:",inline"`
}

// Parse decodes a network configuration.
func Parse(raw []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, serrors.Wrap("parsing network config", err)
	}
	if len(d.DPs) == 0 {
		return nil, serrors.New("network config defines no switches")
	}
	for name, dp := range d.DPs {
		if dp == nil {
			dp = &DP{}
			d.DPs[name] = dp
		}
		for port, intf := range dp.Interfaces {
			if intf == nil {
				dp.Interfaces[port] = &Interface{}
			}
		}
		for label, intf := range dp.InterfaceRanges {
			if intf == nil {
				dp.InterfaceRanges[label] = &Interface{}
			}
		}
	}
	return &d, nil
}

// Load reads and decodes the network configuration at file.
func Load(file string) (*Document, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading network config", err, "file", file)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, serrors.Wrap("loading network config", err, "file", file)
	}
	return d, nil
}

// Marshal encodes the document.
func (d *Document) Marshal() ([]byte, error) {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return nil, serrors.Wrap("encoding network config", err)
	}
	return raw, nil
}

// DP returns the switch with the given name.
func (d *Document) DP(name string) (*DP, error) {
	dp, ok := d.DPs[name]
	if !ok {
		return nil, serrors.Wrap("looking up switch", ErrNotFound, "dp", name)
	}
	return dp, nil
}

// AddInclude adds file to the mandatory includes.
func (d *Document) AddInclude(file string) {
	d.Include = append(d.Include, file)
}

// AddIncludeOptional adds file to the optional includes.
func (d *Document) AddIncludeOptional(file string) {
	d.IncludeOptional = append(d.IncludeOptional, file)
}

// DefineACL adds the ACL to the top-level acls. Defining an ACL name twice
// is an error.
func (d *Document) DefineACL(a acl.ACL) error {
	if _, ok := d.ACLs[a.Name]; ok {
		return serrors.Wrap("defining acl", ErrACLAlreadyDefined, "acl", a.Name)
	}
	if d.ACLs == nil {
		d.ACLs = make(map[string]acl.Rules)
	}
	rules := a.Rules
	if rules == nil {
		rules = acl.Rules{}
	}
	d.ACLs[a.Name] = rules
	return nil
}

// Interface returns the interface with the given port number.
func (dp *DP) Interface(port int) (*Interface, error) {
	intf, ok := dp.Interfaces[port]
	if !ok {
		return nil, serrors.Wrap("looking up interface", ErrNotFound, "port", port)
	}
	return intf, nil
}

// RangeLabels returns the labels of all interface ranges in sorted order.
func (dp *DP) RangeLabels() []string {
	labels := make([]string, 0, len(dp.InterfaceRanges))
	for label := range dp.InterfaceRanges {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Ports returns the numbers of all interfaces in ascending order.
func (dp *DP) Ports() []int {
	ports := make([]int, 0, len(dp.Interfaces))
	for port := range dp.Interfaces {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}

// StackPort returns the port of the stacking link of the switch. The link
// must lead to the switch peer. The flag is false if the switch has no
// stacking link.
func (dp *DP) StackPort(peer string) (int, bool, error) {
	for _, port := range dp.Ports() {
		stack := dp.Interfaces[port].Stack
		if stack == nil {
			continue
		}
		if stack.DP != peer {
			return 0, false, serrors.Wrap("resolving stack port", ErrMalformedStack,
				"port", port, "expected", peer, "actual", stack.DP)
		}
		return port, true, nil
	}
	return 0, false, nil
}

// DeviceInterface is a non-stacking port of a switch.
type DeviceInterface struct {
	Port int
	Name string
}

// DeviceInterfaces returns all non-stacking interfaces of the switch in
// ascending port order. Interfaces without a name are named
// <prefix>-<port>.
func (dp *DP) DeviceInterfaces(prefix string) []DeviceInterface {
	var intfs []DeviceInterface
	for _, port := range dp.Ports() {
		intf := dp.Interfaces[port]
		if intf.Stack != nil {
			continue
		}
		name := intf.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", prefix, port)
		}
		intfs = append(intfs, DeviceInterface{Port: port, Name: name})
	}
	return intfs
}

// SetACLIn sets the inbound ACL of the interface. Overwriting an existing
// reference is an error.
func (i *Interface) SetACLIn(name string) error {
	if i.ACLIn != "" {
		return serrors.Wrap("setting acl_in", ErrACLAlreadyDefined,
			"existing", i.ACLIn, "acl", name)
	}
	i.ACLIn = name
	return nil
}
