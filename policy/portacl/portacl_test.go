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

package portacl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/xtest"
	"github.com/faucetsdn/daq/policy/binding"
	"github.com/faucetsdn/daq/policy/device"
	"github.com/faucetsdn/daq/policy/portacl"
	"github.com/faucetsdn/daq/policy/template"
)

const (
	camera  = "9a:02:57:1e:8f:01"
	printer = "9a:02:57:1e:8f:02"
	unknown = "9a:02:57:1e:8f:03"
)

func newSynthesizer(t *testing.T, templateDir string, withSpecs bool) portacl.Synthesizer {
	t.Helper()
	store, err := template.NewStore(templateDir, 8)
	require.NoError(t, err)
	var specs device.Specs
	if withSpecs {
		specs, err = device.LoadSpecs(xtest.ExpandPath("device_specs.yaml"))
		require.NoError(t, err)
	}
	return portacl.Synthesizer{
		DP:         "sec",
		Templates:  store,
		Classifier: device.NewClassifier(specs),
	}
}

func bound(mac string, port int) binding.Binding {
	return binding.Binding{
		MAC:    mac,
		Target: binding.Target{Port: port, Range: binding.PortRange{Start: port, End: port + 1}},
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "dp_sec_port_3_acl", portacl.ACLName("sec", 3))
	assert.Equal(t, "port_acls/dp_sec_port_3_acl.yaml", portacl.FileName("sec", 3))
}

func TestSynthesizeNoACL(t *testing.T) {
	s := newSynthesizer(t, "testdata", true)
	a, err := s.Synthesize(3, nil)
	require.NoError(t, err)
	assert.Nil(t, a)

	// Bindings on other ports do not produce rules for this port.
	a, err = s.Synthesize(3, []binding.Binding{bound(camera, 4)})
	require.NoError(t, err)
	assert.Nil(t, a)

	s = newSynthesizer(t, "testdata", false)
	a, err = s.Synthesize(3, []binding.Binding{bound(camera, 3)})
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestSynthesizeDeviceType(t *testing.T) {
	s := newSynthesizer(t, "testdata", true)
	a, err := s.Synthesize(3, []binding.Binding{bound(camera, 3), bound(printer, 4)})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "dp_sec_port_3_acl", a.Name)

	require.Len(t, a.Rules, 4)
	assert.Equal(t, camera, a.Rules[0].DlSrc)
	assert.Equal(t, 554, a.Rules[0].Match["tcp_dst"])
	assert.Equal(t, camera, a.Rules[1].DlSrc)
	// Baseline rules come last.
	assert.Equal(t, 53, a.Rules[2].Match["udp_dst"])
	assert.True(t, a.Rules[3].IsCatchAll())
}

func TestSynthesizeFallsBackToDefault(t *testing.T) {
	s := newSynthesizer(t, "testdata", true)
	tests := map[string]string{
		"type without template": printer,
		"device without spec":   unknown,
	}
	for name, mac := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := s.Synthesize(5, []binding.Binding{bound(mac, 5)})
			require.NoError(t, err)
			require.NotNil(t, a)
			require.Len(t, a.Rules, 3)
			assert.Equal(t, mac, a.Rules[0].DlSrc)
			assert.Empty(t, a.Rules[0].NwDst)
			assert.True(t, a.Rules[2].IsCatchAll())
		})
	}
}

func TestSynthesizeMultipleDevices(t *testing.T) {
	s := newSynthesizer(t, "testdata", true)
	a, err := s.Synthesize(3, []binding.Binding{bound(camera, 3), bound(unknown, 3)})
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Len(t, a.Rules, 5)
	assert.Equal(t, camera, a.Rules[0].DlSrc)
	assert.Equal(t, camera, a.Rules[1].DlSrc)
	assert.Equal(t, unknown, a.Rules[2].DlSrc)
}

func TestSynthesizeMissingTemplates(t *testing.T) {
	t.Run("baseline", func(t *testing.T) {
		dir := t.TempDir()
		xtest.CopyFiles(t, "testdata", dir, template.FileName("default"))
		s := newSynthesizer(t, dir, true)
		_, err := s.Synthesize(3, []binding.Binding{bound(unknown, 3)})
		assert.ErrorIs(t, err, portacl.ErrBaselineMissing)
	})
	t.Run("default", func(t *testing.T) {
		dir := t.TempDir()
		xtest.CopyFiles(t, "testdata", dir, template.FileName("baseline"))
		s := newSynthesizer(t, dir, true)
		_, err := s.Synthesize(3, []binding.Binding{bound(printer, 3)})
		assert.ErrorIs(t, err, portacl.ErrTemplateMissing)
	})
	t.Run("type template present without default", func(t *testing.T) {
		dir := t.TempDir()
		xtest.CopyFiles(t, "testdata", dir,
			template.FileName("baseline"), template.FileName("camera"))
		s := newSynthesizer(t, dir, true)
		a, err := s.Synthesize(3, []binding.Binding{bound(camera, 3)})
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Len(t, a.Rules, 4)
	})
}
