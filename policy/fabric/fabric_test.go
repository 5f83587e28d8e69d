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

package fabric_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/binding"
	"github.com/faucetsdn/daq/policy/fabric"
)

var synth = fabric.Synthesizer{DP: "pri", DeviceVLAN: 10, UplinkPort: 1}

func bindings() []binding.Binding {
	return []binding.Binding{
		{
			MAC:    "9a:02:57:1e:8f:01",
			Target: binding.Target{Port: 3, Range: binding.PortRange{Start: 3, End: 5}},
		},
		{
			MAC:    "9a:02:57:1e:8f:02",
			Target: binding.Target{Port: 4, Range: binding.PortRange{Start: 4, End: 5}},
		},
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	res := synth.Synthesize(nil)
	assert.Equal(t, "dp_pri_incoming_acl", res.Incoming.Name)
	assert.Equal(t, "dp_pri_portset_acl", res.Portset.Name)
	want := acl.Rules{acl.NewRule(acl.Allow(false))}
	if diff := cmp.Diff(want, res.Incoming.Rules); diff != "" {
		t.Errorf("incoming (-want +got):\n%s", diff)
	}
	want = acl.Rules{acl.NewRule(acl.Allow(true))}
	if diff := cmp.Diff(want, res.Portset.Rules); diff != "" {
		t.Errorf("portset (-want +got):\n%s", diff)
	}
}

func TestSynthesize(t *testing.T) {
	res := synth.Synthesize(bindings())

	wantIncoming := acl.Rules{
		acl.NewRule(acl.MatchDlSrc("9a:02:57:1e:8f:01"), acl.MatchVlanVID(10),
			acl.OutputPorts(3, 4), acl.PopVlans()),
		acl.NewRule(acl.MatchDlSrc("9a:02:57:1e:8f:02"), acl.MatchVlanVID(10),
			acl.OutputPorts(4), acl.PopVlans()),
		acl.NewRule(acl.Allow(false)),
	}
	if diff := cmp.Diff(wantIncoming, res.Incoming.Rules); diff != "" {
		t.Errorf("incoming (-want +got):\n%s", diff)
	}
	wantPortset := acl.Rules{
		acl.NewRule(acl.MatchDlDst("9a:02:57:1e:8f:01"), acl.OutputVlanVID(10),
			acl.OutputPort(1)),
		acl.NewRule(acl.MatchDlDst("9a:02:57:1e:8f:02"), acl.OutputVlanVID(10),
			acl.OutputPort(1)),
		acl.NewRule(acl.Allow(true)),
	}
	if diff := cmp.Diff(wantPortset, res.Portset.Rules); diff != "" {
		t.Errorf("portset (-want +got):\n%s", diff)
	}
}

func TestCatchAllIsLast(t *testing.T) {
	for _, a := range []acl.ACL{synth.Synthesize(bindings()).Incoming,
		synth.Synthesize(bindings()).Portset} {
		rules := a.Rules
		require.NotEmpty(t, rules)
		for i, r := range rules[:len(rules)-1] {
			assert.False(t, r.IsCatchAll(), "%s rule %d", a.Name, i)
		}
		assert.True(t, rules[len(rules)-1].IsCatchAll(), a.Name)
	}
}

func TestMarshalIsIdempotent(t *testing.T) {
	first, err := synth.Synthesize(bindings()).Marshal()
	require.NoError(t, err)
	second, err := synth.Synthesize(bindings()).Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	f, err := acl.ParseFile(first)
	require.NoError(t, err)
	assert.Equal(t, []string{"dp_pri_incoming_acl", "dp_pri_portset_acl"}, f.Names())
	incoming, _ := f.Lookup("dp_pri_incoming_acl")
	require.Len(t, incoming.Rules, 3)
	assert.Equal(t, "9a:02:57:1e:8f:01", incoming.Rules[0].DlSrc)
}
