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

// Package promtest contains helpers to test metrics structs.
package promtest

import (
	"reflect"
	"testing"

	"github.com/iancoleman/strcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetsdn/daq/pkg/private/prom"
)

// CheckLabelsStruct checks that labels returns one label per struct field,
// named after the field in snake case, and as many values as labels.
func CheckLabelsStruct(t *testing.T, labels prom.Labels) {
	t.Helper()
	assert.Len(t, labels.Values(), len(labels.Labels()), "labels and values differ in length")

	typ := reflect.TypeOf(labels)
	require.Equal(t, reflect.Struct, typ.Kind(), "labels must be a struct value")
	var fields []string
	for i := 0; i < typ.NumField(); i++ {
		fields = append(fields, strcase.ToSnake(typ.Field(i).Name))
	}
	assert.ElementsMatch(t, fields, labels.Labels())
}
