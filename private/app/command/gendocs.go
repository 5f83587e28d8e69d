// Copyright 2023 Anapaya Systems
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

package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const frontMatter = `---
title: %q
orphan: true
---

`

// NewGendocs creates the hidden gendocs command that writes the markdown
// reference of the whole command tree.
func NewGendocs(pather Pather) *cobra.Command {
	return &cobra.Command{
		Use:    "gendocs <directory>",
		Short:  "Generate documentation",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		Example: fmt.Sprintf("  %s gendocs doc/command", pather.CommandPath()),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true

			dir := args[0]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			if err := doc.GenMarkdownTreeCustom(root, dir, prepender, linker); err != nil {
				return fmt.Errorf("generating documentation: %w", err)
			}
			return nil
		},
	}
}

func prepender(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return fmt.Sprintf(frontMatter, strings.ReplaceAll(name, "_", " "))
}

func linker(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
