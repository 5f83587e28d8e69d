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

// Package fabric synthesizes the fabric-wide ACLs of the primary switch.
//
// The incoming ACL is applied to traffic entering the primary switch from
// the secondary switch. Traffic of bound devices is stripped of its VLAN tag
// and forwarded to the ports of the device's range. Everything else is
// dropped, so unknown devices cannot send.
//
// The portset ACL is applied to traffic leaving the device ports. Traffic
// destined to a bound device is tagged with the device VLAN and sent to the
// uplink. Everything else is allowed.
package fabric

import (
	"fmt"

	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/binding"
)

// IncomingACLName returns the name of the incoming ACL of switch dp.
func IncomingACLName(dp string) string {
	return fmt.Sprintf("dp_%s_incoming_acl", dp)
}

// PortsetACLName returns the name of the portset ACL of switch dp.
func PortsetACLName(dp string) string {
	return fmt.Sprintf("dp_%s_portset_acl", dp)
}

// FileName returns the name of the file holding both ACLs of switch dp.
func FileName(dp string) string {
	return fmt.Sprintf("dp_%s_port_acls.yaml", dp)
}

// Result holds the synthesized ACLs.
type Result struct {
	Incoming acl.ACL
	Portset  acl.ACL
}

// Marshal encodes both ACLs into a single ACL file.
func (r Result) Marshal() ([]byte, error) {
	return acl.MarshalFile(r.Incoming, r.Portset)
}

// Synthesizer creates the fabric ACLs from the binding table.
type Synthesizer struct {
	// DP is the name of the primary switch.
	DP string
	// DeviceVLAN is the VLAN device traffic is tagged with between the
	// switches.
	DeviceVLAN int
	// UplinkPort is the primary switch port facing the secondary switch.
	UplinkPort int
}

// Synthesize returns the ACLs for the given bindings. The device rules follow
// the order of bindings and always precede the catch-all rule.
func (s Synthesizer) Synthesize(bindings []binding.Binding) Result {
	incoming := make(acl.Rules, 0, len(bindings)+1)
	portset := make(acl.Rules, 0, len(bindings)+1)
	for _, b := range bindings {
		incoming = append(incoming, acl.NewRule(
			acl.MatchDlSrc(b.MAC),
			acl.MatchVlanVID(s.DeviceVLAN),
			acl.OutputPorts(b.Range.Ports()...),
			acl.PopVlans(),
		))
		portset = append(portset, acl.NewRule(
			acl.MatchDlDst(b.MAC),
			acl.OutputVlanVID(s.DeviceVLAN),
			acl.OutputPort(s.UplinkPort),
		))
	}
	incoming = append(incoming, acl.NewRule(acl.Allow(false)))
	portset = append(portset, acl.NewRule(acl.Allow(true)))
	return Result{
		Incoming: acl.ACL{Name: IncomingACLName(s.DP), Rules: incoming},
		Portset:  acl.ACL{Name: PortsetACLName(s.DP), Rules: portset},
	}
}
