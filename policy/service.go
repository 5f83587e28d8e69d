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
	"context"
	"errors"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy/binding"
)

// ErrServiceStopped is returned for requests to a service that is no longer
// running.
var ErrServiceStopped = serrors.New("policy service stopped")

type request struct {
	apply func(*Compiler) error
	reply chan error
}

// Service serializes access to a Compiler. All requests are processed in
// order by the goroutine executing Run, so the compiler has a single
// mutator regardless of the number of event sources.
type Service struct {
	compiler *Compiler
	requests chan request
	done     chan struct{}
}

// NewService creates a service for an initialized compiler.
func NewService(c *Compiler) *Service {
	return &Service{
		compiler: c,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// Run processes requests until ctx is done. A misconfiguration detected
// while processing a request stops the service and is returned. Run must be
// called at most once.
func (s *Service) Run(ctx context.Context) error {
	defer close(s.done)
	logger := log.FromCtx(ctx)
	logger.Debug("Policy service started")
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Policy service stopped")
			return nil
		case req := <-s.requests:
			err := req.apply(s.compiler)
			req.reply <- err
			if errors.Is(err, ErrMisconfigured) {
				return serrors.Wrap("processing policy request", err)
			}
		}
	}
}

// do executes apply on the service goroutine and waits for the result.
func (s *Service) do(ctx context.Context, apply func(*Compiler) error) error {
	req := request{apply: apply, reply: make(chan error, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return ErrServiceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetPortTarget binds the device to target, or unbinds it if target is nil.
func (s *Service) SetPortTarget(ctx context.Context, addr string,
	target *binding.Target) error {

	return s.do(ctx, func(c *Compiler) error {
		if err := c.SetPortTarget(addr, target); err != nil {
			log.FromCtx(ctx).Info("Binding event failed", "mac", addr, "err", err)
			return err
		}
		return nil
	})
}

// Bindings returns a snapshot of the binding table.
func (s *Service) Bindings(ctx context.Context) ([]binding.Binding, error) {
	var bindings []binding.Binding
	err := s.do(ctx, func(c *Compiler) error {
		bindings = c.Bindings()
		return nil
	})
	return bindings, err
}

// DeviceGroup returns the group of the device.
func (s *Service) DeviceGroup(ctx context.Context, addr string) (string, error) {
	var group string
	err := s.do(ctx, func(c *Compiler) error {
		group = c.DeviceGroup(addr)
		return nil
	})
	return group, err
}
