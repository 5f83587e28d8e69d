// Copyright 2018 ETH Zurich, Anapaya Systems
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

// Package prom contains some utility functions for dealing with prometheus
// metrics.
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// Common label names.
const (
	// LabelResult is the label for result classifications.
	LabelResult = "result"
	// LabelACL is the label for the class of a generated ACL.
	LabelACL = "acl"
	// LabelLevel is the label for log levels.
	LabelLevel = "level"
)

// Labels is implemented by label structs of metrics. Values are returned in
// the order of Labels.
type Labels interface {
	Labels() []string
	Values() []string
}

// ExportElementID exports the element ID as configured in the config file.
func ExportElementID(reg prometheus.Registerer, id string) error {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "daq",
			Name:      "elem_id",
			Help:      "The element ID from the config file",
		},
		[]string{"cfg"},
	)
	c, err := SafeRegister(reg, g)
	if err != nil {
		return err
	}
	c.WithLabelValues(id).Set(1)
	return nil
}

// SafeRegister registers c with reg and returns the registered collector. If
// an equal collector was already registered, the existing one is returned
// instead.
func SafeRegister[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, serrors.Wrap("registering collector", err)
}
