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

package config

import (
	"fmt"
	"io"
	"strings"
)

// CtxMap contains the context for sample generation.
type CtxMap map[string]string

// WriteSample writes the samples to dst in order. Table samplers are
// written under a [path.name] header with their body indented. It panics if
// dst cannot be written.
func WriteSample(dst io.Writer, path Path, ctx CtxMap, samplers ...Sampler) {
	for _, sampler := range samplers {
		var body strings.Builder
		ts, ok := sampler.(TableSampler)
		if !ok {
			sampler.Sample(&body, path, ctx)
			WriteString(dst, body.String())
			continue
		}
		table := path.Extend(ts.ConfigName())
		ts.Sample(&body, table, ctx)
		WriteString(dst, "\n["+strings.Join(table, ".")+"]")
		WriteString(dst, indent(body.String()))
	}
}

// WriteString writes s to dst. It panics if dst cannot be written.
func WriteString(dst io.Writer, s string) {
	if _, err := io.WriteString(dst, s); err != nil {
		panic(fmt.Sprintf("writing config sample: %s", err))
	}
}

// indent prefixes every non-empty line of s with four spaces. Every line,
// including the last one, is newline terminated.
func indent(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if line != "" {
			b.WriteString("    ")
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
