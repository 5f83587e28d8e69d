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

package acl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

// Rule is a single FAUCET ACL rule. Match fields that are not set are not
// serialized. Match fields the compiler does not interpret are kept in Match
// and written back unchanged.
type Rule struct {
	Actions Actions `yaml:"actions,omitempty"`
	DlDst   string  `yaml:"dl_dst,omitempty"`
	DlSrc   string  `yaml:"dl_src,omitempty"`
	NwDst   string  `yaml:"nw_dst,omitempty"`
	VlanVID *int    `yaml:"vlan_vid,omitempty"`
	// Match holds any other match field, e.g. dl_type or tp_dst.
	Match map[string]interface{} `yaml:",inline"`
}

// Actions is the action part of a rule.
type Actions struct {
	Allow  *Flag   `yaml:"allow,omitempty"`
	Output *Output `yaml:"output,omitempty"`
	// Extra holds actions the compiler does not interpret, e.g. mirror.
	Extra map[string]interface{} `yaml:",inline"`
}

// Output is the output action of a rule.
type Output struct {
	PopVlans *bool                  `yaml:"pop_vlans,omitempty"`
	Port     *int                   `yaml:"port,omitempty"`
	Ports    []int                  `yaml:"ports,omitempty"`
	VlanVID  *int                   `yaml:"vlan_vid,omitempty"`
	Extra    map[string]interface{} `yaml:",inline"`
}

// Flag is a boolean that is written as 0 or 1. Both the integer and the
// boolean notation are accepted when parsing.
type Flag bool

func (f Flag) MarshalYAML() (interface{}, error) {
	if f {
		return 1, nil
	}
	return 0, nil
}

func (f *Flag) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case int:
		*f = v != 0
	default:
		return serrors.New("invalid flag value", "value", fmt.Sprint(raw))
	}
	return nil
}

// RuleOption configures a rule created with NewRule.
type RuleOption func(*Rule)

// NewRule creates a rule with only the fields set by the options present.
func NewRule(opts ...RuleOption) Rule {
	var r Rule
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// MatchDlSrc matches the source hardware address.
func MatchDlSrc(mac string) RuleOption {
	return func(r *Rule) { r.DlSrc = mac }
}

// MatchDlDst matches the destination hardware address.
func MatchDlDst(mac string) RuleOption {
	return func(r *Rule) { r.DlDst = mac }
}

// MatchVlanVID matches the VLAN of the packet.
func MatchVlanVID(vid int) RuleOption {
	return func(r *Rule) { r.VlanVID = &vid }
}

// Allow sets the allow action.
func Allow(allow bool) RuleOption {
	return func(r *Rule) {
		f := Flag(allow)
		r.Actions.Allow = &f
	}
}

// OutputPort outputs matching packets on a single port.
func OutputPort(port int) RuleOption {
	return func(r *Rule) { r.output().Port = &port }
}

// OutputPorts outputs matching packets on all the given ports.
func OutputPorts(ports ...int) RuleOption {
	return func(r *Rule) {
		r.output().Ports = append([]int(nil), ports...)
	}
}

// OutputVlanVID rewrites the VLAN of matching packets on output.
func OutputVlanVID(vid int) RuleOption {
	return func(r *Rule) { r.output().VlanVID = &vid }
}

// PopVlans strips the VLAN tag of matching packets on output.
func PopVlans() RuleOption {
	return func(r *Rule) {
		pop := true
		r.output().PopVlans = &pop
	}
}

func (r *Rule) output() *Output {
	if r.Actions.Output == nil {
		r.Actions.Output = &Output{}
	}
	return r.Actions.Output
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	c := r
	c.VlanVID = cloneInt(r.VlanVID)
	c.Match = cloneMap(r.Match)
	c.Actions = r.Actions.Clone()
	return c
}

// Clone returns a deep copy of the actions.
func (a Actions) Clone() Actions {
	c := a
	if a.Allow != nil {
		allow := *a.Allow
		c.Allow = &allow
	}
	if a.Output != nil {
		o := *a.Output
		if o.PopVlans != nil {
			pop := *o.PopVlans
			o.PopVlans = &pop
		}
		o.Port = cloneInt(o.Port)
		o.VlanVID = cloneInt(o.VlanVID)
		if o.Ports != nil {
			o.Ports = append([]int(nil), o.Ports...)
		}
		o.Extra = cloneMap(o.Extra)
		c.Output = &o
	}
	c.Extra = cloneMap(a.Extra)
	return c
}

// IsCatchAll reports whether the rule matches every packet.
func (r Rule) IsCatchAll() bool {
	return r.DlDst == "" && r.DlSrc == "" && r.NwDst == "" && r.VlanVID == nil &&
		len(r.Match) == 0
}

// Field is a single match field of a rule.
type Field struct {
	Key   string
	Value interface{}
}

// Fields returns all match fields of the rule sorted by key.
func (r Rule) Fields() []Field {
	var fields []Field
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	add("dl_dst", r.DlDst)
	add("dl_src", r.DlSrc)
	add("nw_dst", r.NwDst)
	if r.VlanVID != nil {
		fields = append(fields, Field{Key: "vlan_vid", Value: *r.VlanVID})
	}
	for k, v := range r.Match {
		fields = append(fields, Field{Key: k, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

func (a Actions) String() string {
	var parts []string
	if a.Allow != nil {
		if *a.Allow {
			parts = append(parts, "allow")
		} else {
			parts = append(parts, "deny")
		}
	}
	if o := a.Output; o != nil {
		var out []string
		if o.PopVlans != nil && *o.PopVlans {
			out = append(out, "pop_vlans")
		}
		if o.VlanVID != nil {
			out = append(out, fmt.Sprintf("vlan_vid=%d", *o.VlanVID))
		}
		if o.Port != nil {
			out = append(out, fmt.Sprintf("port=%d", *o.Port))
		}
		if len(o.Ports) > 0 {
			out = append(out, fmt.Sprintf("ports=%v", o.Ports))
		}
		for _, k := range sortedKeys(o.Extra) {
			out = append(out, fmt.Sprintf("%s=%v", k, o.Extra[k]))
		}
		parts = append(parts, "output("+strings.Join(out, ",")+")")
	}
	for _, k := range sortedKeys(a.Extra) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, a.Extra[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		return cloneMap(v)
	case map[interface{}]interface{}:
		c := make(map[interface{}]interface{}, len(v))
		for k, e := range v {
			c[k] = cloneValue(e)
		}
		return c
	case []interface{}:
		c := make([]interface{}, len(v))
		for i, e := range v {
			c[i] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}
