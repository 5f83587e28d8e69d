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

// Package controller starts and stops the FAUCET controller through external
// commands.
package controller

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// DefaultSuccessMarker is the default marker the start command output must
// end with.
const DefaultSuccessMarker = "SUCCESS"

// ErrStartFailed indicates that the controller did not start.
var ErrStartFailed = serrors.New("controller startup failed")

// Runner runs a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellRunner runs commands with /bin/sh.
type ShellRunner struct {
	// Dir is the working directory of the commands. If empty, the working
	// directory of the process is used.
	Dir string
}

func (r ShellRunner) Run(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Controller controls the FAUCET instance.
type Controller struct {
	Runner Runner
	// StartCmd starts the controller. Its output must end with
	// SuccessMarker if the controller started.
	StartCmd string
	// StopCmd stops the controller.
	StopCmd       string
	SuccessMarker string
	// Timeout bounds each command. Zero means no bound beyond the context.
	Timeout time.Duration
}

// Start runs the start command. Output that does not end with the success
// marker is treated as a failed start; the output is attached to the error.
func (c *Controller) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info("Starting controller")
	out, err := c.run(ctx, c.StartCmd)
	if err != nil {
		return serrors.Join(ErrStartFailed, err, "cmd", c.StartCmd, "output", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), c.marker()) {
		log.FromCtx(ctx).Info("Controller output", "output", out)
		return serrors.Wrap("checking start output", ErrStartFailed,
			"cmd", c.StartCmd, "output", out)
	}
	return nil
}

// Stop runs the stop command.
func (c *Controller) Stop(ctx context.Context) error {
	log.FromCtx(ctx).Debug("Stopping controller")
	out, err := c.run(ctx, c.StopCmd)
	if err != nil {
		return serrors.Wrap("stopping controller", err, "cmd", c.StopCmd, "output", out)
	}
	return nil
}

func (c *Controller) run(ctx context.Context, command string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.Runner.Run(ctx, command)
}

func (c *Controller) marker() string {
	if c.SuccessMarker == "" {
		return DefaultSuccessMarker
	}
	return c.SuccessMarker
}
