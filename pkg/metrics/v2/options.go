// Copyright 2026 Anapaya Systems
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

// Package metrics contains the factory used by DAQ services to create and
// register prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/faucetsdn/daq/pkg/private/prom"
)

// Option customizes the Options a Factory is created from.
type Option func(*Options)

// Options holds the settings of a Factory. Use ApplyOptions to build it.
type Options struct {
	registry prometheus.Registerer
}

// WithRegistry makes the factory register with registry. Without it the
// default registerer is used.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *Options) {
		o.registry = registry
	}
}

// ApplyOptions applies the options in order.
func ApplyOptions(options ...Option) Options {
	var o Options
	for _, apply := range options {
		apply(&o)
	}
	return o
}

// Auto returns a Factory registering with the configured registry.
func (o Options) Auto() Factory {
	reg := o.registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return Factory{registry: reg}
}

// Factory creates collectors and registers them. Creating a collector that
// is already registered returns the registered instance, so components can
// be constructed more than once per process. Conflicting definitions panic.
type Factory struct {
	registry prometheus.Registerer
}

func register[C prometheus.Collector](f Factory, c C) C {
	registered, err := prom.SafeRegister(f.registry, c)
	if err != nil {
		panic(err)
	}
	return registered
}

func (f Factory) NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	return register(f, prometheus.NewCounter(opts))
}

func (f Factory) NewCounterVec(opts prometheus.CounterOpts,
	labelNames []string) *prometheus.CounterVec {

	return register(f, prometheus.NewCounterVec(opts, labelNames))
}

func (f Factory) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	return register(f, prometheus.NewGauge(opts))
}
