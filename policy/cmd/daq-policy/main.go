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

package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/processmetrics"
	"github.com/faucetsdn/daq/pkg/private/prom"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy"
	"github.com/faucetsdn/daq/policy/config"
	"github.com/faucetsdn/daq/policy/controller"
	"github.com/faucetsdn/daq/policy/mgmtapi"
	"github.com/faucetsdn/daq/private/app/command"
	"github.com/faucetsdn/daq/private/app/launcher"
	"github.com/faucetsdn/daq/private/env"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "DAQ Policy Compiler",
		Commands:   []func(command.Pather) *cobra.Command{newInspect, newDiff},
		Main:       realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	cfg := resolvePaths(globalCfg.Policy, globalCfg.General.ConfigDir)
	ctrl := &controller.Controller{
		Runner:        controller.ShellRunner{Dir: globalCfg.General.ConfigDir},
		StartCmd:      globalCfg.Controller.StartCmd,
		StopCmd:       globalCfg.Controller.StopCmd,
		SuccessMarker: globalCfg.Controller.SuccessMarker,
		Timeout:       globalCfg.Controller.Timeout.Duration,
	}
	compiler, err := policy.New(cfg,
		policy.WithController(ctrl),
		policy.WithMetrics(policy.NewMetrics()),
	)
	if err != nil {
		return serrors.Wrap("creating policy compiler", err)
	}
	if err := compiler.Initialize(); err != nil {
		return serrors.Wrap("initializing policy compiler", err)
	}
	if globalCfg.Controller.Managed {
		if err := compiler.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(),
				env.ShutdownGraceInterval)
			defer cancel()
			if err := compiler.Stop(stopCtx); err != nil {
				log.Error("Stopping controller failed", "err", err)
			}
		}()
	}

	svc := policy.NewService(compiler)
	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return svc.Run(errCtx)
	})

	// Initialise and start service management API endpoints.
	if globalCfg.API.Addr != "" {
		r := chi.NewRouter()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
		}))
		server := mgmtapi.Server{Bindings: svc}
		log.Info("Exposing API", "addr", globalCfg.API.Addr)
		h := mgmtapi.HandlerFromMuxWithBaseURL(&server, r, "/api/v1")
		mgmtServer := &http.Server{
			Addr:    globalCfg.API.Addr,
			Handler: h,
		}
		g.Go(func() error {
			defer log.HandlePanic()
			err := mgmtServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving service management API", err)
			}
			return nil
		})
		g.Go(func() error {
			defer log.HandlePanic()
			<-errCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				env.ShutdownGraceInterval)
			defer cancel()
			return mgmtServer.Shutdown(shutdownCtx)
		})
	}

	if globalCfg.Metrics.Prometheus != "" {
		if err := prom.ExportElementID(prometheus.DefaultRegisterer,
			globalCfg.General.ID); err != nil {
			log.Error("Could not export element ID", "err", err)
		}
		if err := processmetrics.Register(prometheus.DefaultRegisterer); err != nil {
			log.Error("Could not initialize process metrics", "err", err)
		}
	}
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx)
	})
	return g.Wait()
}

// resolvePaths resolves the relative file paths of cfg against dir.
func resolvePaths(cfg config.Policy, dir string) config.Policy {
	if dir == "" {
		return cfg
	}
	for _, p := range []*string{
		&cfg.NetworkConfig,
		&cfg.InstDir,
		&cfg.TemplateDir,
		&cfg.DeviceSpecs,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg
}
