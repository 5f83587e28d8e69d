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

// Package template loads ACL rule templates and resolves their placeholders.
//
// A template named N is read from the file template_N_acl.yaml in the
// template directory and must define the ACL "@acl:template_N_acl". String
// match fields of template rules may carry one of two placeholders:
//
//   - "@src_mac:" is replaced by the hardware address of the device the
//     template is resolved for.
//   - "@dns:" marks a field that is resolved by a later stage. The field is
//     dropped from the resolved rule.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/faucetsdn/daq/pkg/log"
	"github.com/faucetsdn/daq/pkg/private/serrors"
	"github.com/faucetsdn/daq/policy/acl"
)

const (
	// MACPlaceholder prefixes fields that are substituted with the device
	// hardware address.
	MACPlaceholder = "@src_mac:"
	// DNSPlaceholder prefixes fields that are dropped during resolution.
	DNSPlaceholder = "@dns:"
)

// ErrMissingMAC indicates that a template with a hardware address
// placeholder was resolved without an address.
var ErrMissingMAC = serrors.New("template requires a hardware address")

// FileName returns the file name of the template with the given name.
func FileName(name string) string {
	return fmt.Sprintf("template_%s_acl.yaml", name)
}

// Key returns the ACL name under which the template rules are stored.
func Key(name string) string {
	return fmt.Sprintf("@acl:template_%s_acl", name)
}

// Template is a named list of rules that may carry placeholders. It is never
// modified once loaded.
type Template struct {
	Name  string
	Rules acl.Rules
}

// Result is the outcome of resolving a template.
type Result struct {
	// Rules are the resolved rules. They are not shared with the store.
	Rules acl.Rules
	// Found is false if no template file exists for the name.
	Found bool
}

// Store loads templates from a directory.
type Store struct {
	dir   string
	cache *arc.ARCCache[string, *Template]
}

// NewStore creates a store for the templates in dir. Up to cacheSize parsed
// templates are kept in memory. A non-positive cacheSize disables caching.
func NewStore(dir string, cacheSize int) (*Store, error) {
	s := &Store{dir: dir}
	if cacheSize > 0 {
		cache, err := arc.NewARC[string, *Template](cacheSize)
		if err != nil {
			return nil, serrors.Wrap("creating template cache", err, "size", cacheSize)
		}
		s.cache = cache
	}
	return s, nil
}

// Dir returns the template directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the template with the given name. If no template file exists,
// nil is returned without error.
func (s *Store) Load(name string) (*Template, error) {
	if s.cache != nil {
		if t, ok := s.cache.Get(name); ok {
			return t, nil
		}
	}
	file := filepath.Join(s.dir, FileName(name))
	f, err := acl.LoadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("Template file does not exist, skipping", "template", name, "file", file)
		return nil, nil
	}
	if err != nil {
		return nil, serrors.Wrap("loading template", err, "template", name)
	}
	a, ok := f.Lookup(Key(name))
	if !ok {
		return nil, serrors.New("template file does not define template",
			"template", name, "file", file, "key", Key(name))
	}
	log.Debug("Loaded template", "template", name, "file", file, "rules", len(a.Rules))
	t := &Template{Name: name, Rules: a.Rules}
	if s.cache != nil {
		s.cache.Add(name, t)
	}
	return t, nil
}

// Resolve resolves the template with the given name for the device with the
// hardware address mac. The address may be empty if the template carries no
// address placeholder.
func (s *Store) Resolve(name, mac string) (Result, error) {
	t, err := s.Load(name)
	if err != nil {
		return Result{}, err
	}
	if t == nil {
		return Result{}, nil
	}
	rules, err := t.Resolve(mac)
	if err != nil {
		return Result{}, err
	}
	return Result{Rules: rules, Found: true}, nil
}

// AppendTo appends the resolved rules of the named template to rules. The
// returned flag is false if the template does not exist, in which case rules
// is returned unchanged.
func (s *Store) AppendTo(rules acl.Rules, name, mac string) (acl.Rules, bool, error) {
	res, err := s.Resolve(name, mac)
	if err != nil || !res.Found {
		return rules, false, err
	}
	return append(rules, res.Rules...), true, nil
}

// Resolve returns a copy of the template rules with all placeholders
// resolved for mac.
func (t *Template) Resolve(mac string) (acl.Rules, error) {
	resolved := make(acl.Rules, 0, len(t.Rules))
	for i, rule := range t.Rules {
		r := rule.Clone()
		if err := resolveRule(&r, mac); err != nil {
			return nil, serrors.Wrap("resolving template rule", err,
				"template", t.Name, "index", i)
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}

func resolveRule(r *acl.Rule, mac string) error {
	for _, field := range []*string{&r.DlSrc, &r.DlDst, &r.NwDst} {
		v, keep, err := resolveValue(*field, mac)
		if err != nil {
			return err
		}
		if !keep {
			v = ""
		}
		*field = v
	}
	for key, value := range r.Match {
		s, ok := value.(string)
		if !ok {
			continue
		}
		v, keep, err := resolveValue(s, mac)
		if err != nil {
			return serrors.Wrap("resolving match field", err, "field", key)
		}
		if !keep {
			delete(r.Match, key)
			continue
		}
		r.Match[key] = v
	}
	return nil
}

func resolveValue(v, mac string) (string, bool, error) {
	switch {
	case strings.HasPrefix(v, MACPlaceholder):
		if mac == "" {
			return "", false, ErrMissingMAC
		}
		return mac, true, nil
	case strings.HasPrefix(v, DNSPlaceholder):
		return "", false, nil
	default:
		return v, true, nil
	}
}
