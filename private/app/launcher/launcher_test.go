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

package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/private/config"
	"github.com/faucetsdn/daq/private/env"
)

type testConfig struct {
	General env.General `toml:"general,omitempty"`
	Logging log.Config  `toml:"log,omitempty"`
}

func (cfg *testConfig) InitDefaults() {
	config.InitAll(&cfg.General, &cfg.Logging)
}

func (cfg *testConfig) Validate() error {
	return config.ValidateAll(&cfg.General, &cfg.Logging)
}

func (cfg *testConfig) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: "test"}, &cfg.General, &cfg.Logging)
}

func (cfg *testConfig) ConfigName() string {
	return "test"
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestRun(t *testing.T) {
	file := writeConfig(t, `
[general]
id = "policy-1"

[log.console]
level = "debug"
`)
	var cfg testConfig
	called := false
	a := Application{
		TOMLConfig: &cfg,
		Main: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	require.NoError(t, a.run(context.Background(), []string{"--config", file}))
	assert.True(t, called)
	assert.Equal(t, "policy-1", cfg.General.ID)
	assert.Equal(t, "debug", cfg.Logging.Console.Level)
	assert.Equal(t, "human", cfg.Logging.Console.Format)
}

func TestRunErrors(t *testing.T) {
	boom := serrors.New("boom")
	valid := writeConfig(t, "[general]\nid = \"policy-1\"\n")
	tests := map[string]struct {
		args []string
		main func(context.Context) error
	}{
		"missing config flag": {
			args: nil,
		},
		"missing config file": {
			args: []string{"--config", filepath.Join(t.TempDir(), "missing.toml")},
		},
		"unknown key": {
			args: []string{"--config", writeConfig(t, "[general]\nfoo = 1\n")},
		},
		"invalid config": {
			args: []string{"--config", writeConfig(t, "[general]\nconfig_dir = \"/nope\"\n")},
		},
		"main fails": {
			args: []string{"--config", valid},
			main: func(context.Context) error { return boom },
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a := Application{TOMLConfig: &testConfig{}, Main: tc.main}
			assert.Error(t, a.run(context.Background(), tc.args))
		})
	}
}

func TestGendocs(t *testing.T) {
	a := Application{TOMLConfig: &testConfig{}}
	out := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, a.run(context.Background(), []string{"gendocs", out}))
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
