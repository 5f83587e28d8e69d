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

// Package config contains the configuration of the DAQ policy service.
package config

import (
	"io"
	"path/filepath"
	"time"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/pkg/private/util"
	"github.com/faucetsdn/daq/policy/controller"
	"github.com/faucetsdn/daq/private/config"
	"github.com/faucetsdn/daq/private/env"
	api "github.com/faucetsdn/daq/private/mgmtapi"
)

const (
	DefaultNetworkConfig     = "misc/faucet.yaml"
	DefaultInstDir           = "inst"
	DefaultPrimaryDP         = "pri"
	DefaultSecondaryDP       = "sec"
	DefaultAccessPorts       = 6
	DefaultDeviceVLAN        = 10
	DefaultUplinkPort        = 1
	DefaultTemplateCacheSize = 32
	DefaultStartCmd          = "cmd/faucet && echo " + controller.DefaultSuccessMarker
	DefaultStopCmd           = "docker kill daq-faucet"
	DefaultControllerTimeout = time.Minute

	idSample = "policy"
)

var _ config.Config = (*Config)(nil)

// Config is the configuration of the policy service.
type Config struct {
	General    env.General `toml:"general,omitempty"`
	Logging    log.Config  `toml:"log,omitempty"`
	Metrics    env.Metrics `toml:"metrics,omitempty"`
	API        api.Config  `toml:"api,omitempty"`
	Policy     Policy      `toml:"policy,omitempty"`
	Controller Controller  `toml:"controller,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Policy,
		&cfg.Controller,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Policy,
		&cfg.Controller,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: idSample},
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Policy,
		&cfg.Controller,
	)
}

func (cfg *Config) ConfigName() string {
	return "policy_config"
}

var _ config.Config = (*Policy)(nil)

// Policy configures the ACL compiler.
type Policy struct {
	// NetworkConfig is the base FAUCET network configuration.
	NetworkConfig string `toml:"network_config,omitempty"`
	// InstDir is the directory all generated files are written to.
	InstDir string `toml:"inst_dir,omitempty"`
	// TemplateDir contains the ACL templates. Defaults to
	// <inst_dir>/acl_templates.
	TemplateDir string `toml:"template_dir,omitempty"`
	// DeviceSpecs is the device spec table. Defaults to
	// <inst_dir>/device_specs.json. The file is optional.
	DeviceSpecs string `toml:"device_specs,omitempty"`
	// PrimaryDP is the name of the switch facing the test infrastructure.
	PrimaryDP string `toml:"primary_dp,omitempty"`
	// SecondaryDP is the name of the switch the devices are plugged into.
	SecondaryDP string `toml:"secondary_dp,omitempty"`
	// AccessPorts is the number of device ports on the secondary switch,
	// numbered from 1.
	AccessPorts int `toml:"access_ports,omitempty"`
	// DeviceVLAN is the VLAN device traffic is carried in between the
	// switches.
	DeviceVLAN int `toml:"device_vlan,omitempty"`
	// UplinkPort is the port of the primary switch facing the secondary.
	UplinkPort int `toml:"uplink_port,omitempty"`
	// TemplateCacheSize is the number of parsed templates kept in memory.
	// Zero selects the default and a negative value disables caching.
	TemplateCacheSize int `toml:"template_cache_size,omitempty"`
}

func (cfg *Policy) InitDefaults() {
	if cfg.NetworkConfig == "" {
		cfg.NetworkConfig = DefaultNetworkConfig
	}
	if cfg.InstDir == "" {
		cfg.InstDir = DefaultInstDir
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = filepath.Join(cfg.InstDir, "acl_templates")
	}
	if cfg.DeviceSpecs == "" {
		cfg.DeviceSpecs = filepath.Join(cfg.InstDir, "device_specs.json")
	}
	if cfg.PrimaryDP == "" {
		cfg.PrimaryDP = DefaultPrimaryDP
	}
	if cfg.SecondaryDP == "" {
		cfg.SecondaryDP = DefaultSecondaryDP
	}
	if cfg.AccessPorts == 0 {
		cfg.AccessPorts = DefaultAccessPorts
	}
	if cfg.DeviceVLAN == 0 {
		cfg.DeviceVLAN = DefaultDeviceVLAN
	}
	if cfg.UplinkPort == 0 {
		cfg.UplinkPort = DefaultUplinkPort
	}
	if cfg.TemplateCacheSize == 0 {
		cfg.TemplateCacheSize = DefaultTemplateCacheSize
	}
}

func (cfg *Policy) Validate() error {
	switch {
	case cfg.NetworkConfig == "":
		return serrors.New("network_config must be set")
	case cfg.InstDir == "":
		return serrors.New("inst_dir must be set")
	case cfg.PrimaryDP == "" || cfg.SecondaryDP == "":
		return serrors.New("switch names must be set",
			"primary_dp", cfg.PrimaryDP, "secondary_dp", cfg.SecondaryDP)
	case cfg.PrimaryDP == cfg.SecondaryDP:
		return serrors.New("primary and secondary switch must differ", "dp", cfg.PrimaryDP)
	case cfg.AccessPorts <= 0:
		return serrors.New("access_ports must be positive", "access_ports", cfg.AccessPorts)
	case cfg.DeviceVLAN <= 0 || cfg.DeviceVLAN > 4094:
		return serrors.New("device_vlan out of range", "device_vlan", cfg.DeviceVLAN)
	case cfg.UplinkPort <= 0:
		return serrors.New("uplink_port must be positive", "uplink_port", cfg.UplinkPort)
	}
	return nil
}

func (cfg *Policy) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, policySample)
}

func (cfg *Policy) ConfigName() string {
	return "policy"
}

var _ config.Config = (*Controller)(nil)

// Controller configures how the FAUCET controller is started and stopped.
type Controller struct {
	// Managed makes the service start the controller once the initial
	// configuration is written, and stop it on shutdown.
	Managed       bool   `toml:"managed,omitempty"`
	StartCmd      string `toml:"start_cmd,omitempty"`
	StopCmd       string `toml:"stop_cmd,omitempty"`
	SuccessMarker string `toml:"success_marker,omitempty"`

	// Timeout bounds the runtime of each start and stop command.
	Timeout util.DurWrap `toml:"timeout,omitempty"`
}

func (cfg *Controller) InitDefaults() {
	if cfg.StartCmd == "" {
		cfg.StartCmd = DefaultStartCmd
	}
	if cfg.StopCmd == "" {
		cfg.StopCmd = DefaultStopCmd
	}
	if cfg.SuccessMarker == "" {
		cfg.SuccessMarker = controller.DefaultSuccessMarker
	}
	if cfg.Timeout.Duration == 0 {
		cfg.Timeout.Duration = DefaultControllerTimeout
	}
}

func (cfg *Controller) Validate() error {
	if cfg.Managed && (cfg.StartCmd == "" || cfg.StopCmd == "") {
		return serrors.New("managed controller requires start_cmd and stop_cmd")
	}
	if cfg.Timeout.Duration < 0 {
		return serrors.New("controller timeout must not be negative", "timeout", cfg.Timeout)
	}
	return nil
}

func (cfg *Controller) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, controllerSample)
}

func (cfg *Controller) ConfigName() string {
	return "controller"
}
