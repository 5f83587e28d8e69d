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
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/faucetsdn/daq/policy/acl"
	"github.com/faucetsdn/daq/private/app/command"
)

func newInspect(pather command.Pather) *cobra.Command {
	var flags struct {
		noColor bool
	}
	cmd := &cobra.Command{
		Use:   "inspect <acl-file>",
		Short: "Display the rules of an ACL file",
		Example: fmt.Sprintf(`  %[1]s inspect inst/dp_pri_port_acls.yaml
  %[1]s inspect inst/port_acls/dp_sec_port_3_acl.yaml`, pather.CommandPath()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f, err := acl.LoadFile(args[0])
			if err != nil {
				return err
			}
			colored := !flags.noColor && isatty.IsTerminal(os.Stdout.Fd())
			renderACLs(cmd.OutOrStdout(), f, colored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	return cmd
}

// renderACLs writes one table per ACL in f, in name order.
func renderACLs(w io.Writer, f acl.File, colored bool) {
	noColor := color.New()
	header, allow, deny := noColor, noColor, noColor
	if colored {
		header = color.New(color.FgHiCyan)
		allow = color.New(color.FgGreen)
		deny = color.New(color.FgRed)
	}
	for i, name := range f.Names() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		a, _ := f.Lookup(name)
		header.Fprintf(w, "%s (%d rules)\n", name, len(a.Rules))
		rows := make([][]string, 0, len(a.Rules))
		for j, rule := range a.Rules {
			actions := rule.Actions.String()
			switch {
			case rule.Actions.Allow != nil && bool(*rule.Actions.Allow):
				actions = allow.Sprint(actions)
			case rule.Actions.Allow != nil:
				actions = deny.Sprint(actions)
			}
			rows = append(rows, []string{
				strconv.Itoa(j),
				matchString(rule),
				actions,
			})
		}
		table := tablewriter.NewWriter(w)
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		table.SetHeaderLine(false)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeader([]string{"#", "MATCH", "ACTIONS"})
		table.AppendBulk(rows)
		table.Render()
	}
}

func matchString(r acl.Rule) string {
	fields := r.Fields()
	if len(fields) == 0 {
		return "*"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}
