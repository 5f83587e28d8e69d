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

package mgmtapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List the device bindings.
	// (GET /bindings)
	GetBindings(w http.ResponseWriter, r *http.Request)
	// Bind a device to a port.
	// (PUT /bindings/{mac})
	SetBinding(w http.ResponseWriter, r *http.Request, mac string)
	// Unbind a device.
	// (DELETE /bindings/{mac})
	DeleteBinding(w http.ResponseWriter, r *http.Request, mac string)
	// Get the group of a device.
	// (GET /devices/{mac}/group)
	GetDeviceGroup(w http.ResponseWriter, r *http.Request, mac string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// GetBindings operation middleware
func (siw *ServerInterfaceWrapper) GetBindings(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetBindings(w, r)
}

// SetBinding operation middleware
func (siw *ServerInterfaceWrapper) SetBinding(w http.ResponseWriter, r *http.Request) {
	mac, ok := siw.macParam(w, r)
	if !ok {
		return
	}
	siw.Handler.SetBinding(w, r, mac)
}

// DeleteBinding operation middleware
func (siw *ServerInterfaceWrapper) DeleteBinding(w http.ResponseWriter, r *http.Request) {
	mac, ok := siw.macParam(w, r)
	if !ok {
		return
	}
	siw.Handler.DeleteBinding(w, r, mac)
}

// GetDeviceGroup operation middleware
func (siw *ServerInterfaceWrapper) GetDeviceGroup(w http.ResponseWriter, r *http.Request) {
	mac, ok := siw.macParam(w, r)
	if !ok {
		return
	}
	siw.Handler.GetDeviceGroup(w, r, mac)
}

// macParam binds the "mac" path parameter.
func (siw *ServerInterfaceWrapper) macParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	var mac string
	err := runtime.BindStyledParameterWithOptions("simple", "mac", chi.URLParam(r, "mac"),
		&mac, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "mac", Err: err})
		return "", false
	}
	return mac, true
}

// InvalidParamFormatError is reported for path parameters that cannot be
// bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures the router built by HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMuxWithBaseURL registers the API routes below baseURL on r.
func HandlerFromMuxWithBaseURL(si ServerInterface, r chi.Router, baseURL string) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseURL:    baseURL,
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}
	baseURL := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Use(options.Middlewares...)
		r.Get(baseURL+"/bindings", wrapper.GetBindings)
		r.Put(baseURL+"/bindings/{mac}", wrapper.SetBinding)
		r.Delete(baseURL+"/bindings/{mac}", wrapper.DeleteBinding)
		r.Get(baseURL+"/devices/{mac}/group", wrapper.GetDeviceGroup)
	})
	return r
}
