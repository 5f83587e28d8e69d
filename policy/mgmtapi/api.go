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

// Package mgmtapi implements the http management API of the policy service.
// It is the binding event source for the compiler.
package mgmtapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/mac"
	"github.com/faucetsdn/daq/policy"
	"github.com/faucetsdn/daq/policy/binding"
	api "github.com/faucetsdn/daq/private/mgmtapi"
)

// Bindings is the binding table the API operates on.
type Bindings interface {
	SetPortTarget(ctx context.Context, addr string, target *binding.Target) error
	Bindings(ctx context.Context) ([]binding.Binding, error)
	DeviceGroup(ctx context.Context, addr string) (string, error)
}

var _ ServerInterface = (*Server)(nil)

// Server implements the http management API of the policy service.
type Server struct {
	Bindings Bindings
}

// GetBindings lists the current bindings ordered by address.
func (s *Server) GetBindings(w http.ResponseWriter, r *http.Request) {
	bindings, err := s.Bindings.Bindings(r.Context())
	if err != nil {
		serviceError(w, "unable to list bindings", err)
		return
	}
	rep := BindingsResponse{Bindings: make([]Binding, 0, len(bindings))}
	for _, b := range bindings {
		rep.Bindings = append(rep.Bindings, Binding{
			Mac:   b.MAC,
			Port:  b.Port,
			Range: PortRange{b.Range.Start, b.Range.End},
		})
	}
	api.JSONResponse(w, rep)
}

// SetBinding binds the device to the port in the request body.
func (s *Server) SetBinding(w http.ResponseWriter, r *http.Request, addr string) {
	if !validMAC(w, addr) {
		return
	}
	var req BindRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		api.ErrorResponse(w, api.Problem{
			Detail: api.StringRef(err.Error()),
			Status: http.StatusBadRequest,
			Title:  "malformed request body",
			Type:   api.StringRef(api.BadRequest),
		})
		return
	}
	target := binding.Target{
		Port:  req.Port,
		Range: binding.PortRange{Start: req.Port, End: req.Port + 1},
	}
	if req.Range != nil {
		target.Range = binding.PortRange{Start: req.Range[0], End: req.Range[1]}
	}
	if err := target.Validate(); err != nil {
		api.ErrorResponse(w, api.Problem{
			Detail: api.StringRef(err.Error()),
			Status: http.StatusBadRequest,
			Title:  "invalid binding target",
			Type:   api.StringRef(api.BadRequest),
		})
		return
	}
	if err := s.Bindings.SetPortTarget(r.Context(), addr, &target); err != nil {
		serviceError(w, "unable to bind device", err)
		return
	}
	log.FromCtx(r.Context()).Debug("Device bound through API", "mac", addr,
		"port", target.Port)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBinding unbinds the device. Unbinding a device that is not bound
// succeeds.
func (s *Server) DeleteBinding(w http.ResponseWriter, r *http.Request, addr string) {
	if !validMAC(w, addr) {
		return
	}
	if err := s.Bindings.SetPortTarget(r.Context(), addr, nil); err != nil {
		serviceError(w, "unable to unbind device", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDeviceGroup returns the group of the device.
func (s *Server) GetDeviceGroup(w http.ResponseWriter, r *http.Request, addr string) {
	if !validMAC(w, addr) {
		return
	}
	group, err := s.Bindings.DeviceGroup(r.Context(), addr)
	if err != nil {
		serviceError(w, "unable to classify device", err)
		return
	}
	api.JSONResponse(w, DeviceGroupResponse{Mac: addr, Group: group})
}

func validMAC(w http.ResponseWriter, addr string) bool {
	if _, err := mac.Normalize(addr); err != nil {
		api.ErrorResponse(w, api.Problem{
			Detail: api.StringRef(err.Error()),
			Status: http.StatusBadRequest,
			Title:  "invalid hardware address",
			Type:   api.StringRef(api.BadRequest),
		})
		return false
	}
	return true
}

func serviceError(w http.ResponseWriter, title string, err error) {
	p := api.Problem{
		Detail: api.StringRef(err.Error()),
		Status: http.StatusInternalServerError,
		Title:  title,
		Type:   api.StringRef(api.InternalError),
	}
	if errors.Is(err, policy.ErrServiceStopped) || errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {

		p.Status = http.StatusServiceUnavailable
		p.Type = api.StringRef(api.Unavailable)
	}
	api.ErrorResponse(w, p)
}
