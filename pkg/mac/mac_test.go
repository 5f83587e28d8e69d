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

package mac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faucetsdn/daq/pkg/mac"
)

func TestNormalize(t *testing.T) {
	tests := map[string]struct {
		input     string
		want      string
		assertErr assert.ErrorAssertionFunc
	}{
		"colon upper": {
			input:     "AA:BB:CC:DD:EE:FF",
			want:      "aa:bb:cc:dd:ee:ff",
			assertErr: assert.NoError,
		},
		"dash": {
			input:     "02-42-ac-11-00-02",
			want:      "02:42:ac:11:00:02",
			assertErr: assert.NoError,
		},
		"dot": {
			input:     "0242.ac11.0002",
			want:      "02:42:ac:11:00:02",
			assertErr: assert.NoError,
		},
		"garbage": {
			input:     "not-a-mac",
			assertErr: assert.Error,
		},
		"eui64": {
			input:     "02:00:5e:10:00:00:00:01",
			assertErr: assert.Error,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := mac.Normalize(tc.input)
			tc.assertErr(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMustNormalize(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", mac.MustNormalize("AA:BB:CC:DD:EE:FF"))
	assert.Panics(t, func() { mac.MustNormalize("x") })
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "AABBCCDDEEFF", mac.Strip("AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "0242ac110002", mac.Strip("02-42-ac-11-00-02"))
	assert.Equal(t, "0242ac110002", mac.Strip("0242.ac11.0002"))
}
