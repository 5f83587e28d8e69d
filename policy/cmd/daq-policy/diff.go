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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/private/app/command"
)

func newDiff(pather command.Pather) *cobra.Command {
	var flags struct {
		noColor bool
	}
	cmd := &cobra.Command{
		Use:   "diff <old-acl-file> <new-acl-file>",
		Short: "Display the rule differences between two ACL files",
		Example: fmt.Sprintf(`  %[1]s diff old/dp_pri_port_acls.yaml inst/dp_pri_port_acls.yaml`,
			pather.CommandPath()),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			old, err := normalizedACLs(args[0])
			if err != nil {
				return err
			}
			updated, err := normalizedACLs(args[1])
			if err != nil {
				return err
			}
			colored := !flags.noColor && isatty.IsTerminal(os.Stdout.Fd())
			renderDiff(cmd.OutOrStdout(), old, updated, colored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	return cmd
}

// normalizedACLs loads the ACL file and encodes it again, so that formatting
// differences do not show up in the diff.
func normalizedACLs(file string) (string, error) {
	f, err := acl.LoadFile(file)
	if err != nil {
		return "", err
	}
	acls := make([]acl.ACL, 0, len(f.ACLs))
	for _, name := range f.Names() {
		a, _ := f.Lookup(name)
		acls = append(acls, a)
	}
	raw, err := acl.MarshalFile(acls...)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// renderDiff writes a line diff of old and updated. Unchanged lines are
// prefixed with a space, removed lines with '-' and added lines with '+'.
func renderDiff(w io.Writer, old, updated string, colored bool) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, updated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	noColor := color.New()
	added, removed := noColor, noColor
	if colored {
		added = color.New(color.FgGreen)
		removed = color.New(color.FgRed)
	}
	if !hasChanges(diffs) {
		fmt.Fprintln(w, "no differences")
		return
	}
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added.Fprintf(w, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				removed.Fprintf(w, "-%s\n", line)
			default:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}

func hasChanges(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}
