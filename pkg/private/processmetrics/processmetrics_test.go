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

//go:build linux

package processmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/processmetrics"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := processmetrics.Register(reg); err != nil {
		// schedstat is not available on every kernel.
		t.Skipf("process statistics unavailable: %v", err)
	}
	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["process_running_seconds_total"])
	assert.True(t, names["process_runnable_seconds_total"])
	assert.True(t, names["process_open_files"])

	assert.Error(t, processmetrics.Register(reg), "duplicate registration")
}
