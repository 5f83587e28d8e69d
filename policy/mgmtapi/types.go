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

package mgmtapi

// Binding is a device bound to a port.
type Binding struct {
	// Hardware address of the device.
	Mac string `json:"mac"`
	// Port the device is plugged into.
	Port int `json:"port"`
	// Half-open range of ports the device may send to.
	Range PortRange `json:"range"`
}

// PortRange is a half-open port range encoded as [start, end].
type PortRange [2]int

// BindingsResponse lists the device bindings.
type BindingsResponse struct {
	Bindings []Binding `json:"bindings"`
}

// BindRequest binds a device. If Range is omitted, the device may only send
// to its own port.
type BindRequest struct {
	Port  int        `json:"port"`
	Range *PortRange `json:"range,omitempty"`
}

// DeviceGroupResponse is the group of a device.
type DeviceGroupResponse struct {
	Mac   string `json:"mac"`
	Group string `json:"group"`
}
