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

package prom_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/prom"
)

func TestSafeRegister(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	opts := prometheus.CounterOpts{Name: "test_total", Help: "Test counter."}

	first, err := prom.SafeRegister(reg, prometheus.NewCounter(opts))
	require.NoError(t, err)
	second, err := prom.SafeRegister(reg, prometheus.NewCounter(opts))
	require.NoError(t, err)
	assert.Same(t, first, second)

	conflicting := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_total", Help: "x"})
	_, err = prom.SafeRegister(reg, conflicting)
	assert.Error(t, err)
}

func TestExportElementID(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, prom.ExportElementID(reg, "policy"))
	require.NoError(t, prom.ExportElementID(reg, "policy"))

	expected := `
# HELP daq_elem_id The element ID from the config file
# TYPE daq_elem_id gauge
daq_elem_id{cfg="policy"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}
