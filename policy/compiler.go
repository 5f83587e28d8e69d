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

// Package policy compiles the FAUCET network configuration and the ACL files
// enforcing per-device isolation from the base topology, the device bindings
// and the ACL templates.
//
// The Compiler splices ACL references into the base topology once on
// Initialize. After that, every binding change regenerates the fabric ACLs
// of the primary switch and the port ACL of each affected access port of the
// secondary switch. The generated files are consumed by the FAUCET
// controller.
//
// The Compiler is not safe for concurrent use. Use a Service to feed it from
// multiple event sources.
package policy

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/policy/binding"
	"github.com/faucetsdn/daq/policy/config"
	"github.com/faucetsdn/daq/policy/controller"
	"github.com/faucetsdn/daq/policy/device"
	"github.com/faucetsdn/daq/policy/fabric"
	"github.com/faucetsdn/daq/policy/portacl"
	"github.com/faucetsdn/daq/policy/template"
	"github.com/faucetsdn/daq/policy/topology"
)

// NetworkFileName is the name of the generated network configuration in the
// output directory.
const NetworkFileName = "faucet.yaml"

var (
	// ErrMisconfigured is the class of all fatal configuration errors. Once
	// it is returned, the generated files must not be trusted.
	ErrMisconfigured = serrors.New("policy misconfigured")
	// ErrNotInitialized indicates use of the compiler before Initialize.
	ErrNotInitialized = serrors.New("compiler not initialized")
	// ErrNoController indicates that no controller was configured.
	ErrNoController = serrors.New("no controller configured")
)

// Option configures a Compiler.
type Option func(*options)

type options struct {
	bindings   *binding.Table
	controller *controller.Controller
	metrics    *Metrics
}

// WithBindings sets the binding table the compiler operates on. By default,
// the compiler starts with an empty table.
func WithBindings(t *binding.Table) Option {
	return func(o *options) {
		o.bindings = t
	}
}

// WithController sets the controller used by Start and Stop.
func WithController(c *controller.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMetrics sets the metrics the compiler reports to.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Compiler generates the network configuration and ACL files.
type Compiler struct {
	cfg        config.Policy
	doc        *topology.Document
	classifier *device.Classifier
	templates  *template.Store
	bindings   *binding.Table
	fabric     fabric.Synthesizer
	ports      portacl.Synthesizer
	controller *controller.Controller
	metrics    *Metrics

	initialized bool
}

// New loads the base topology and the device specs. A missing topology is a
// misconfiguration, a missing device spec table is not.
func New(cfg config.Policy, opts ...Option) (*Compiler, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bindings == nil {
		o.bindings = binding.NewTable()
	}

	log.Info("Loading network config", "file", cfg.NetworkConfig)
	doc, err := topology.Load(cfg.NetworkConfig)
	if err != nil {
		return nil, serrors.Join(ErrMisconfigured, err)
	}
	specs, err := device.LoadSpecs(cfg.DeviceSpecs)
	if err != nil {
		return nil, serrors.Join(ErrMisconfigured, err)
	}
	templates, err := template.NewStore(cfg.TemplateDir, cfg.TemplateCacheSize)
	if err != nil {
		return nil, err
	}
	classifier := device.NewClassifier(specs)
	return &Compiler{
		cfg:        cfg,
		doc:        doc,
		classifier: classifier,
		templates:  templates,
		bindings:   o.bindings,
		fabric: fabric.Synthesizer{
			DP:         cfg.PrimaryDP,
			DeviceVLAN: cfg.DeviceVLAN,
			UplinkPort: cfg.UplinkPort,
		},
		ports: portacl.Synthesizer{
			DP:         cfg.SecondaryDP,
			Templates:  templates,
			Classifier: classifier,
		},
		controller: o.controller,
		metrics:    o.metrics,
	}, nil
}

// Initialize splices the ACL references into the topology, writes the
// network configuration and generates all ACL files. It must be called
// exactly once before any binding change.
func (c *Compiler) Initialize() error {
	if c.initialized {
		return serrors.New("compiler already initialized")
	}
	log.Debug("Converting network config")
	if err := c.addFabricReferences(); err != nil {
		return serrors.Join(ErrMisconfigured, err)
	}
	for port := 1; port <= c.cfg.AccessPorts; port++ {
		if err := c.addPortReference(port); err != nil {
			return serrors.Join(ErrMisconfigured, err, "port", port)
		}
	}
	raw, err := c.doc.Marshal()
	if err != nil {
		return err
	}
	file := filepath.Join(c.cfg.InstDir, NetworkFileName)
	log.Info("Writing network config", "file", file)
	if err := writeFile(file, raw); err != nil {
		return err
	}
	c.initialized = true
	return c.RegenerateAll()
}

func (c *Compiler) addFabricReferences() error {
	pri, err := c.doc.DP(c.cfg.PrimaryDP)
	if err != nil {
		return err
	}
	c.doc.AddInclude(fabric.FileName(c.cfg.PrimaryDP))
	uplink, err := pri.Interface(c.cfg.UplinkPort)
	if err != nil {
		return serrors.Wrap("looking up uplink interface", err, "dp", c.cfg.PrimaryDP)
	}
	if err := uplink.SetACLIn(fabric.IncomingACLName(c.cfg.PrimaryDP)); err != nil {
		return serrors.Wrap("referencing incoming acl", err, "port", c.cfg.UplinkPort)
	}
	for _, label := range pri.RangeLabels() {
		err := pri.InterfaceRanges[label].SetACLIn(fabric.PortsetACLName(c.cfg.PrimaryDP))
		if err != nil {
			return serrors.Wrap("referencing portset acl", err, "range", label)
		}
	}
	return nil
}

// addPortReference makes the port ACL of port an optional include of the
// topology, seeded with the raw template. Without a raw template, the port
// has no ACL reference.
func (c *Compiler) addPortReference(port int) error {
	raw, err := c.templates.Resolve(portacl.RawTemplate, "")
	if err != nil {
		return err
	}
	if !raw.Found {
		return nil
	}
	sec, err := c.doc.DP(c.cfg.SecondaryDP)
	if err != nil {
		return err
	}
	intf, err := sec.Interface(port)
	if err != nil {
		return err
	}
	name := portacl.ACLName(c.cfg.SecondaryDP, port)
	c.doc.AddIncludeOptional(portacl.FileName(c.cfg.SecondaryDP, port))
	if err := intf.SetACLIn(name); err != nil {
		return err
	}
	return c.doc.DefineACL(acl.ACL{Name: name, Rules: raw.Rules})
}

// SetPortTarget binds the device with address addr to target, or unbinds it
// if target is nil. Events that do not change the binding table are ignored.
// Otherwise the fabric ACLs and the port ACLs of the affected ports are
// regenerated.
func (c *Compiler) SetPortTarget(addr string, target *binding.Target) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	ports, err := c.apply(addr, target)
	if err != nil {
		c.metrics.event(resultError)
		return err
	}
	if len(ports) == 0 {
		c.metrics.event(resultIgnored)
		log.Debug("Ignoring no-change in port status", "mac", addr)
		return nil
	}
	c.metrics.bound(c.bindings.Len())
	if err := c.regenerateFabric(); err != nil {
		c.metrics.event(resultError)
		return err
	}
	for _, port := range ports {
		if err := c.Regenerate(port); err != nil {
			c.metrics.event(resultError)
			return err
		}
	}
	c.metrics.event(resultApplied)
	return nil
}

// apply updates the binding table and returns the ports whose ACLs are
// affected.
func (c *Compiler) apply(addr string, target *binding.Target) ([]int, error) {
	if target == nil {
		b, ok, err := c.bindings.Unbind(addr)
		if err != nil || !ok {
			return nil, err
		}
		log.Info("Unbound device", "mac", b.MAC, "port", b.Port)
		return []int{b.Port}, nil
	}
	change, err := c.bindings.Bind(addr, *target)
	if err != nil || !change.Changed {
		return nil, err
	}
	log.Info("Bound device", "mac", addr, "port", target.Port, "range", target.Range)
	ports := []int{target.Port}
	if prev := change.Previous; prev != nil && prev.Port != target.Port {
		log.Info("Device moved", "mac", prev.MAC, "from", prev.Port, "to", target.Port)
		ports = append(ports, prev.Port)
	}
	return ports, nil
}

// RegenerateAll regenerates the fabric ACLs and the ACLs of all access ports.
func (c *Compiler) RegenerateAll() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if err := c.regenerateFabric(); err != nil {
		return err
	}
	for port := 1; port <= c.cfg.AccessPorts; port++ {
		if err := c.Regenerate(port); err != nil {
			return err
		}
	}
	return nil
}

// Regenerate regenerates the ACL of the access port. The ACL file is removed
// if no device is bound to the port. Missing templates are a
// misconfiguration.
func (c *Compiler) Regenerate(port int) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	a, err := c.ports.Synthesize(port, c.bindings.Snapshot())
	switch {
	case errors.Is(err, portacl.ErrBaselineMissing), errors.Is(err, portacl.ErrTemplateMissing):
		return serrors.Join(ErrMisconfigured, err)
	case err != nil:
		return err
	}
	file := c.PortACLFile(port)
	if a == nil {
		removed, err := removeFile(file)
		if err != nil {
			return err
		}
		if removed {
			log.Debug("Removed unused port acl file", "file", file)
			c.metrics.regenerated(aclPort)
		}
		return nil
	}
	raw, err := a.Marshal()
	if err != nil {
		return err
	}
	log.Debug("Writing port acl file", "file", file, "rules", len(a.Rules))
	if err := writeFile(file, raw); err != nil {
		return err
	}
	c.metrics.regenerated(aclPort)
	return nil
}

func (c *Compiler) regenerateFabric() error {
	raw, err := c.fabric.Synthesize(c.bindings.Snapshot()).Marshal()
	if err != nil {
		return err
	}
	file := c.FabricACLFile()
	log.Debug("Writing fabric acl file", "file", file)
	if err := writeFile(file, raw); err != nil {
		return err
	}
	c.metrics.regenerated(aclFabric)
	return nil
}

// FabricACLFile returns the path of the fabric ACL file.
func (c *Compiler) FabricACLFile() string {
	return filepath.Join(c.cfg.InstDir, fabric.FileName(c.cfg.PrimaryDP))
}

// PortACLFile returns the path of the ACL file of the access port.
func (c *Compiler) PortACLFile(port int) string {
	return filepath.Join(c.cfg.InstDir, portacl.FileName(c.cfg.SecondaryDP, port))
}

// NetworkFile returns the path of the generated network configuration.
func (c *Compiler) NetworkFile() string {
	return filepath.Join(c.cfg.InstDir, NetworkFileName)
}

// Bindings returns a snapshot of the binding table.
func (c *Compiler) Bindings() []binding.Binding {
	return c.bindings.Snapshot()
}

// DeviceGroup returns the group of the device with address addr.
func (c *Compiler) DeviceGroup(addr string) string {
	return c.classifier.Group(addr)
}

// SecondaryStackPort returns the port of the secondary switch linking it to
// the primary switch. A stacking link to any other switch is a
// misconfiguration. The flag is false if there is no stacking link.
func (c *Compiler) SecondaryStackPort() (int, bool, error) {
	sec, err := c.doc.DP(c.cfg.SecondaryDP)
	if err != nil {
		return 0, false, serrors.Join(ErrMisconfigured, err)
	}
	port, ok, err := sec.StackPort(c.cfg.PrimaryDP)
	if err != nil {
		return 0, false, serrors.Join(ErrMisconfigured, err)
	}
	return port, ok, nil
}

// DeviceInterfaces returns the device facing interfaces of the secondary
// switch.
func (c *Compiler) DeviceInterfaces() ([]topology.DeviceInterface, error) {
	sec, err := c.doc.DP(c.cfg.SecondaryDP)
	if err != nil {
		return nil, serrors.Join(ErrMisconfigured, err)
	}
	return sec.DeviceInterfaces(c.cfg.SecondaryDP), nil
}

// UplinkInterfaceName returns the name of the primary switch interface
// facing the secondary switch.
func (c *Compiler) UplinkInterfaceName() (string, error) {
	pri, err := c.doc.DP(c.cfg.PrimaryDP)
	if err != nil {
		return "", serrors.Join(ErrMisconfigured, err)
	}
	intf, err := pri.Interface(c.cfg.UplinkPort)
	if err != nil {
		return "", serrors.Join(ErrMisconfigured, err)
	}
	return intf.Name, nil
}

// SecondaryDPID returns the datapath ID of the secondary switch.
func (c *Compiler) SecondaryDPID() (uint64, error) {
	sec, err := c.doc.DP(c.cfg.SecondaryDP)
	if err != nil {
		return 0, serrors.Join(ErrMisconfigured, err)
	}
	if sec.DPID == nil {
		return 0, serrors.Join(ErrMisconfigured,
			serrors.New("switch has no dp_id", "dp", c.cfg.SecondaryDP))
	}
	return *sec.DPID, nil
}

// Start starts the controller.
func (c *Compiler) Start(ctx context.Context) error {
	if c.controller == nil {
		return ErrNoController
	}
	return c.controller.Start(ctx)
}

// Stop stops the controller.
func (c *Compiler) Stop(ctx context.Context) error {
	if c.controller == nil {
		return ErrNoController
	}
	return c.controller.Stop(ctx)
}
