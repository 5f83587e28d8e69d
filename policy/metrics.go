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

package policy

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/faucetsdn/daq/pkg/metrics/v2"
	"github.com/faucetsdn/daq/pkg/private/prom"
)

// Label values of the compiler metrics.
const (
	aclFabric = "fabric"
	aclPort   = "port"

	resultApplied = "applied"
	resultIgnored = "ignored"
	resultError   = "error"
)

type regenerationLabels struct {
	ACL string
}

func (l regenerationLabels) Labels() []string {
	return []string{prom.LabelACL}
}

func (l regenerationLabels) Values() []string {
	return []string{l.ACL}
}

type eventLabels struct {
	Result string
}

func (l eventLabels) Labels() []string {
	return []string{prom.LabelResult}
}

func (l eventLabels) Values() []string {
	return []string{l.Result}
}

// Metrics are the metrics exported by the compiler. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// Regenerations counts ACL files written or removed, by ACL class.
	Regenerations *prometheus.CounterVec
	// Events counts binding events, by result.
	Events *prometheus.CounterVec
	// BoundDevices is the number of devices in the binding table.
	BoundDevices prometheus.Gauge
}

// NewMetrics creates and registers the compiler metrics.
func NewMetrics(opts ...metrics.Option) *Metrics {
	f := metrics.ApplyOptions(opts...).Auto()
	return &Metrics{
		Regenerations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "daq_policy_regenerations_total",
			Help: "Total number of ACL files regenerated.",
		}, regenerationLabels{}.Labels()),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "daq_policy_events_total",
			Help: "Total number of binding events processed.",
		}, eventLabels{}.Labels()),
		BoundDevices: f.NewGauge(prometheus.GaugeOpts{
			Name: "daq_policy_bound_devices",
			Help: "Number of devices currently bound to a port.",
		}),
	}
}

func (m *Metrics) regenerated(class string) {
	if m == nil {
		return
	}
	m.Regenerations.WithLabelValues(regenerationLabels{ACL: class}.Values()...).Inc()
}

func (m *Metrics) event(result string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(eventLabels{Result: result}.Values()...).Inc()
}

func (m *Metrics) bound(n int) {
	if m == nil {
		return
	}
	m.BoundDevices.Set(float64(n))
}
