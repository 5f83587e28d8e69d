// Copyright 2019 Anapaya Systems
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

package env_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/private/config"
	"github.com/faucetsdn/daq/private/env"
)

func TestGeneralSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.General
	cfg.Sample(&sample, nil, map[string]string{config.ID: "policy"})
	require.NoError(t, config.Decode(sample.Bytes(), &cfg))
	assert.Equal(t, "policy", cfg.ID)
	assert.Empty(t, cfg.ConfigDir)
	assert.NoError(t, cfg.Validate())
}

func TestGeneralValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := map[string]struct {
		cfg       env.General
		assertErr assert.ErrorAssertionFunc
	}{
		"valid": {
			cfg:       env.General{ID: "policy", ConfigDir: dir},
			assertErr: assert.NoError,
		},
		"missing id": {
			cfg:       env.General{ConfigDir: dir},
			assertErr: assert.Error,
		},
		"config dir is file": {
			cfg:       env.General{ID: "policy", ConfigDir: file},
			assertErr: assert.Error,
		},
		"config dir missing": {
			cfg:       env.General{ID: "policy", ConfigDir: filepath.Join(dir, "nope")},
			assertErr: assert.Error,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc.assertErr(t, tc.cfg.Validate())
		})
	}
}

func TestMetricsSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.Metrics
	cfg.Sample(&sample, nil, nil)
	require.NoError(t, config.Decode(sample.Bytes(), &cfg))
	assert.Empty(t, cfg.Prometheus)
}

func TestServePrometheusDisabled(t *testing.T) {
	var cfg env.Metrics
	assert.NoError(t, cfg.ServePrometheus(context.Background()))
}
