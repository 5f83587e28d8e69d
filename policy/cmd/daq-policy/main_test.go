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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/xtest"
	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/config"
)

func TestRenderACLs(t *testing.T) {
	f, err := acl.ParseFile(xtest.MustReadFromFile(t, "dp_pri_port_acls.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderACLs(&buf, f, false)
	out := buf.String()

	incoming := strings.Index(out, "dp_pri_incoming_acl (2 rules)")
	portset := strings.Index(out, "dp_pri_portset_acl (2 rules)")
	require.NotEqual(t, -1, incoming)
	require.NotEqual(t, -1, portset)
	assert.Less(t, incoming, portset)
	assert.Contains(t, out, "dl_src=9a:02:57:1e:8f:01 vlan_vid=10")
	assert.Contains(t, out, "output(pop_vlans,ports=[3])")
	assert.Contains(t, out, "output(vlan_vid=10,port=1)")
	assert.Contains(t, out, "deny")
	assert.Contains(t, out, "allow")
}

func TestInspectCommand(t *testing.T) {
	cmd := newInspect(&testPather{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{xtest.ExpandPath("dp_pri_port_acls.yaml")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "dp_pri_portset_acl")

	cmd.SetArgs([]string{xtest.ExpandPath("missing.yaml")})
	assert.Error(t, cmd.Execute())
}

func TestResolvePaths(t *testing.T) {
	cfg := config.Policy{
		NetworkConfig: "misc/faucet.yaml",
		InstDir:       "/var/lib/daq",
		TemplateDir:   "inst/acl_templates",
	}
	assert.Equal(t, cfg, resolvePaths(cfg, ""))
	resolved := resolvePaths(cfg, "/opt/daq")
	assert.Equal(t, "/opt/daq/misc/faucet.yaml", resolved.NetworkConfig)
	assert.Equal(t, "/var/lib/daq", resolved.InstDir)
	assert.Equal(t, "/opt/daq/inst/acl_templates", resolved.TemplateDir)
	assert.Empty(t, resolved.DeviceSpecs)
}

type testPather struct{}

func (testPather) CommandPath() string {
	return "daq-policy"
}

func TestRenderDiff(t *testing.T) {
	old, err := normalizedACLs(xtest.ExpandPath("dp_pri_port_acls.yaml"))
	require.NoError(t, err)
	moved, err := normalizedACLs(xtest.ExpandPath("dp_pri_port_acls_moved.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderDiff(&buf, old, old, false)
	assert.Equal(t, "no differences\n", buf.String())

	buf.Reset()
	renderDiff(&buf, "acls:\n  a: []\n", "acls:\n  a: []\n", true)
	assert.Equal(t, "no differences\n", buf.String())

	buf.Reset()
	renderDiff(&buf, "acls:\n  a: []\n", "acls:\n  b: []\n", false)
	assert.Equal(t, " acls:\n-  a: []\n+  b: []\n", buf.String())

	buf.Reset()
	renderDiff(&buf, old, moved, false)
	var added, removed []string
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		}
	}
	require.Len(t, added, 1)
	require.Len(t, removed, 1)
	assert.Contains(t, added[0], "5")
	assert.Contains(t, removed[0], "3")
}
