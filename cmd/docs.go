// Copyright © 2025 SolForge Contributors
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate markdown docs",
	Long: `Generate markdown docs for the entire command tree.

	The command takes an optional argument specifying directory to put the
	generated documentation, default is "{cwd}/docs/command_docs/"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string

		if len(args) == 0 {
			currentWoringDir, err := os.Getwd()
			if err != nil {
				return err
			}
			path = fmt.Sprintf("%s/docs/command_docs", currentWoringDir)
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		} else {
			path = args[0]
		}

		return doc.GenMarkdownTree(rootCmd, path)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
