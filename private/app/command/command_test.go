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

package command_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/private/app/command"
	"github.com/faucetsdn/daq/private/config"
	"github.com/faucetsdn/daq/private/env"
)

func newRoot() *cobra.Command {
	return &cobra.Command{Use: "daq-policy", Short: "test"}
}

func TestSampleConfig(t *testing.T) {
	root := newRoot()
	root.AddCommand(command.NewSample(root, command.NewSampleConfig(&env.Metrics{})))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"sample", "config"})
	require.NoError(t, root.Execute())

	var cfg env.Metrics
	require.NoError(t, config.Decode(out.Bytes(), &cfg))
	assert.Contains(t, out.String(), "prometheus")
}

func TestGendocs(t *testing.T) {
	root := newRoot()
	root.AddCommand(
		command.NewSample(root, command.NewSampleConfig(&env.Metrics{})),
		command.NewGendocs(root),
	)
	dir := t.TempDir()
	root.SetArgs([]string{"gendocs", dir})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(filepath.Join(dir, "daq-policy.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "title: \"daq-policy\"")
	assert.FileExists(t, filepath.Join(dir, "daq-policy_sample_config.md"))
	assert.NoFileExists(t, filepath.Join(dir, "daq-policy_gendocs.md"))
}
