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
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/constants"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file

Creates a config file in the home directory with every supported setting and
its default. API keys are intentionally left empty; fill them in before
running generate or deploy.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		configFile := filepath.Join(home, fmt.Sprintf("%s.yml", constants.ConfigFileName))

		if _, err := os.Stat(configFile); err == nil && !initForce {
			if err := confirm(fmt.Sprintf("overwrite existing config at %s?", configFile)); err != nil {
				return nil
			}
		}

		starter := &config.Config{
			Generation: config.GenerationConfig{
				BaseURL:     "https://api.openai.com/v1",
				Model:       "gpt-4",
				MaxTokens:   2000,
				Temperature: 0.2,
			},
			Deployment: config.DeploymentConfig{
				CompilerVersion: "0.8.19",
				Chain:           "sepolia",
			},
		}
		out, err := yaml.Marshal(starter)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configFile, out, 0600); err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", configFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite any existing config file without prompting")
	rootCmd.AddCommand(initCmd)
}
