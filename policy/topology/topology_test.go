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

package topology_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/xtest"
	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/topology"
)

func load(t *testing.T) *topology.Document {
	t.Helper()
	d, err := topology.Load(xtest.ExpandPath("faucet.yaml"))
	require.NoError(t, err)
	return d
}

func TestLoad(t *testing.T) {
	d := load(t)
	pri, err := d.DP("pri")
	require.NoError(t, err)
	require.NotNil(t, pri.DPID)
	assert.Equal(t, uint64(1), *pri.DPID)
	assert.Equal(t, "Open vSwitch", pri.Extra["hardware"])
	assert.Equal(t, []string{"2-6"}, pri.RangeLabels())

	sec, err := d.DP("sec")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 7}, sec.Ports())
	// Interfaces without any keys are still addressable.
	intf, err := sec.Interface(3)
	require.NoError(t, err)
	assert.Empty(t, intf.Name)

	_, err = d.DP("ter")
	assert.ErrorIs(t, err, topology.ErrNotFound)
	_, err = sec.Interface(9)
	assert.ErrorIs(t, err, topology.ErrNotFound)
}

func TestLoadErrors(t *testing.T) {
	_, err := topology.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = topology.Parse([]byte("vlans: {}\n"))
	assert.Error(t, err)
	_, err = topology.Parse([]byte("dps: [\n"))
	assert.Error(t, err)
}

func TestMarshalPreservesUnknownKeys(t *testing.T) {
	d := load(t)
	raw, err := d.Marshal()
	require.NoError(t, err)
	again, err := topology.Parse(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("round trip differs (-want +got):\n%s", diff)
	}
	assert.Contains(t, string(raw), "native_vlan: 10")
	assert.Contains(t, string(raw), "description: device vlan")
}

func TestDefineACL(t *testing.T) {
	d := load(t)
	a := acl.ACL{Name: "dp_sec_port_1_acl", Rules: acl.Rules{acl.NewRule(acl.Allow(true))}}
	require.NoError(t, d.DefineACL(a))
	assert.ErrorIs(t, d.DefineACL(a), topology.ErrACLAlreadyDefined)

	require.NoError(t, d.DefineACL(acl.ACL{Name: "empty"}))
	assert.NotNil(t, d.ACLs["empty"])
}

func TestIncludes(t *testing.T) {
	d := load(t)
	d.AddInclude("dp_pri_port_acls.yaml")
	d.AddIncludeOptional("port_acls/dp_sec_port_1_acl.yaml")
	d.AddIncludeOptional("port_acls/dp_sec_port_2_acl.yaml")

	raw, err := d.Marshal()
	require.NoError(t, err)
	again, err := topology.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"dp_pri_port_acls.yaml"}, again.Include)
	assert.Equal(t, []string{
		"port_acls/dp_sec_port_1_acl.yaml",
		"port_acls/dp_sec_port_2_acl.yaml",
	}, again.IncludeOptional)
}

func TestSetACLIn(t *testing.T) {
	intf := &topology.Interface{}
	require.NoError(t, intf.SetACLIn("dp_pri_incoming_acl"))
	assert.Equal(t, "dp_pri_incoming_acl", intf.ACLIn)
	assert.ErrorIs(t, intf.SetACLIn("other"), topology.ErrACLAlreadyDefined)
	assert.Equal(t, "dp_pri_incoming_acl", intf.ACLIn)
}

func TestStackPort(t *testing.T) {
	d := load(t)
	sec, err := d.DP("sec")
	require.NoError(t, err)

	port, ok, err := sec.StackPort("pri")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, port)

	_, _, err = sec.StackPort("ter")
	assert.ErrorIs(t, err, topology.ErrMalformedStack)

	pri, err := d.DP("pri")
	require.NoError(t, err)
	_, ok, err = pri.StackPort("sec")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeviceInterfaces(t *testing.T) {
	d := load(t)
	sec, err := d.DP("sec")
	require.NoError(t, err)
	assert.Equal(t, []topology.DeviceInterface{
		{Port: 1, Name: "sec-1"},
		{Port: 2, Name: "camera-port"},
		{Port: 3, Name: "sec-3"},
	}, sec.DeviceInterfaces("sec"))
}
