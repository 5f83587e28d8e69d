// Copyright 2018 ETH Zurich
// Copyright 2020 ETH Zurich, Anapaya Systems
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

// Package xtest contains helpers shared by the package tests. All helpers
// fail the test immediately on error.
package xtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpandPath returns the path of file inside the testdata directory of the
// package under test.
func ExpandPath(file string) string {
	return filepath.Join("testdata", file)
}

// MustReadFromFile returns the content of testdata/name.
func MustReadFromFile(t testing.TB, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(ExpandPath(name))
	require.NoError(t, err, "reading test data")
	return raw
}

// CopyFile copies src to dst, replacing dst if it exists.
func CopyFile(t testing.TB, src, dst string) {
	t.Helper()
	raw, err := os.ReadFile(src)
	require.NoError(t, err, "reading %s", src)
	require.NoError(t, os.WriteFile(dst, raw, 0o644), "writing %s", dst)
}

// CopyFiles copies each named file from directory src into directory dst.
func CopyFiles(t testing.TB, src, dst string, names ...string) {
	t.Helper()
	for _, name := range names {
		CopyFile(t, filepath.Join(src, name), filepath.Join(dst, name))
	}
}

// AssertNotExist fails the test if path exists.
func AssertNotExist(t testing.TB, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "%s exists", path)
}
