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
	"errors"
	"os"
	"path/filepath"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// writeFile replaces the content of file with raw. The content is written to
// a temporary file in the same directory first and then renamed, so readers
// never observe a partially written file.
func writeFile(file string, raw []byte) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return serrors.Wrap("creating directory", err, "dir", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*")
	if err != nil {
		return serrors.Wrap("creating temporary file", err, "file", file)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return serrors.Wrap("writing temporary file", err, "file", tmp.Name())
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return serrors.Wrap("setting file mode", err, "file", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return serrors.Wrap("closing temporary file", err, "file", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return serrors.Wrap("replacing file", err, "file", file)
	}
	return nil
}

// removeFile removes file. It reports whether a file was removed.
func removeFile(file string) (bool, error) {
	err := os.Remove(file)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, serrors.Wrap("removing file", err, "file", file)
	}
}
