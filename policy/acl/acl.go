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

// Package acl models FAUCET access control lists.
//
// An ACL is an ordered list of rules. FAUCET evaluates the rules in order
// and applies the first one that matches, so the position of a rule encodes
// its priority. On disk, ACLs are stored under the top-level acls key, each
// rule wrapped in a single-key mapping:
//
//	acls:
//	  dp_pri_incoming_acl:
//	  - rule:
//	      actions:
//	        allow: 0
package acl

import (
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// ACL is a named, ordered list of rules.
type ACL struct {
	Name  string
	Rules Rules
}

// Marshal encodes the ACL as a standalone ACL file.
func (a ACL) Marshal() ([]byte, error) {
	return MarshalFile(a)
}

// Rules is an ordered list of rules.
type Rules []Rule

type entry struct {
	Rule Rule `yaml:"rule"`
}

func (r Rules) MarshalYAML() (interface{}, error) {
	entries := make([]entry, 0, len(r))
	for _, rule := range r {
		entries = append(entries, entry{Rule: rule})
	}
	return entries, nil
}

func (r *Rules) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var entries []entry
	if err := unmarshal(&entries); err != nil {
		return err
	}
	rules := make(Rules, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, e.Rule)
	}
	*r = rules
	return nil
}

// Clone returns a deep copy of the rules.
func (r Rules) Clone() Rules {
	if r == nil {
		return nil
	}
	c := make(Rules, 0, len(r))
	for _, rule := range r {
		c = append(c, rule.Clone())
	}
	return c
}

// File is the content of an ACL file.
type File struct {
	ACLs map[string]Rules `yaml:"acls"`
}

// Lookup returns the ACL with the given name.
func (f File) Lookup(name string) (ACL, bool) {
	rules, ok := f.ACLs[name]
	if !ok {
		return ACL{}, false
	}
	return ACL{Name: name, Rules: rules}, true
}

// Names returns the names of all ACLs in the file in sorted order.
func (f File) Names() []string {
	names := make([]string, 0, len(f.ACLs))
	for name := range f.ACLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalFile encodes the ACLs into a single ACL file. ACL names must be
// unique.
func MarshalFile(acls ...ACL) ([]byte, error) {
	f := File{ACLs: make(map[string]Rules, len(acls))}
	for _, a := range acls {
		if _, ok := f.ACLs[a.Name]; ok {
			return nil, serrors.New("duplicate acl", "name", a.Name)
		}
		rules := a.Rules
		if rules == nil {
			rules = Rules{}
		}
		f.ACLs[a.Name] = rules
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return nil, serrors.Wrap("encoding acl file", err)
	}
	return raw, nil
}

// ParseFile decodes an ACL file.
func ParseFile(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, serrors.Wrap("parsing acl file", err)
	}
	return f, nil
}

// LoadFile reads and decodes the ACL file at path. The returned error wraps
// os.ErrNotExist if the file does not exist.
func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := ParseFile(raw)
	if err != nil {
		return File{}, serrors.Wrap("loading acl file", err, "file", path)
	}
	return f, nil
}
