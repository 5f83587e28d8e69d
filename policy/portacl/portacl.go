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

// Package portacl synthesizes the ACL of a single access port of the
// secondary switch.
package portacl

import (
	"fmt"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/binding"
	"github.com/faucetsdn/daq/policy/device"
	"github.com/faucetsdn/daq/policy/template"
)

const (
	// BaselineTemplate is appended to every port ACL.
	BaselineTemplate = "baseline"
	// RawTemplate seeds the port ACLs in the topology file.
	RawTemplate = "raw"
)

var (
	// ErrBaselineMissing indicates that the baseline template does not exist.
	ErrBaselineMissing = serrors.New("missing baseline template")
	// ErrTemplateMissing indicates that neither the device type template
	// nor the default template exists.
	ErrTemplateMissing = serrors.New("missing device template")
)

// ACLName returns the name of the ACL of port on switch dp.
func ACLName(dp string, port int) string {
	return fmt.Sprintf("dp_%s_port_%d_acl", dp, port)
}

// FileName returns the path of the ACL file of port on switch dp, relative
// to the output directory.
func FileName(dp string, port int) string {
	return fmt.Sprintf("port_acls/dp_%s_port_%d_acl.yaml", dp, port)
}

// Synthesizer creates port ACLs.
type Synthesizer struct {
	// DP is the name of the secondary switch.
	DP         string
	Templates  *template.Store
	Classifier *device.Classifier
}

// Synthesize returns the ACL for port given the bindings of the devices on
// that port. Bindings on other ports are ignored. A nil ACL means that the
// port has no ACL and any existing file should be removed. This is the case
// if no device is bound to the port or no device spec table is loaded.
//
// The ACL contains the rules of the type template of each device, in the
// order of bindings, followed by the rules of the baseline template.
func (s Synthesizer) Synthesize(port int, bindings []binding.Binding) (*acl.ACL, error) {
	bound := binding.OnPort(bindings, port)
	if len(bound) == 0 || !s.Classifier.HasSpecs() {
		return nil, nil
	}
	var rules acl.Rules
	for _, b := range bound {
		var err error
		if rules, err = s.appendDevice(rules, b.MAC); err != nil {
			return nil, serrors.Wrap("synthesizing port acl", err, "port", port)
		}
	}
	rules, found, err := s.Templates.AppendTo(rules, BaselineTemplate, "")
	if err != nil {
		return nil, serrors.Wrap("synthesizing port acl", err, "port", port)
	}
	if !found {
		return nil, serrors.Wrap("synthesizing port acl", ErrBaselineMissing,
			"port", port, "dir", s.Templates.Dir())
	}
	return &acl.ACL{Name: ACLName(s.DP, port), Rules: rules}, nil
}

func (s Synthesizer) appendDevice(rules acl.Rules, mac string) (acl.Rules, error) {
	deviceType := s.Classifier.Type(mac)
	log.Info("Processing acl template", "mac", mac, "type", deviceType)
	rules, found, err := s.Templates.AppendTo(rules, deviceType, mac)
	if err != nil || found {
		return rules, err
	}
	if deviceType != device.DefaultType {
		log.Info("No template for device type, using default", "mac", mac,
			"type", deviceType)
		rules, found, err = s.Templates.AppendTo(rules, device.DefaultType, mac)
		if err != nil || found {
			return rules, err
		}
	}
	return rules, serrors.Wrap("resolving device template", ErrTemplateMissing,
		"mac", mac, "type", deviceType)
}
