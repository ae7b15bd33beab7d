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
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/forge"
	"github.com/solforge/solforge-cli/internal/log"
	"github.com/solforge/solforge-cli/pkg/types"
)

var generateCategory string
var generateDescription string
var generateParams []string
var generateAndDeploy bool
var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Solidity contract from a description",
	Long: `Generate a Solidity contract from a description

The contract category, description and parameters are taken from flags when
given, and prompted for interactively otherwise. With --deploy the generated
contract is also submitted to the configured deployment provider.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.ValidateGeneration(); err != nil {
			return err
		}
		if generateAndDeploy {
			if err := cfg.ValidateDeployment(); err != nil {
				return err
			}
		}

		req, err := buildContractRequest()
		if err != nil {
			return err
		}

		var spin *spinner.Spinner
		if fancyFeatures && !verbose {
			spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			logger = log.NewSpinnerLogger(spin)
		}
		ctx := log.WithVerbosity(context.Background(), verbose)
		ctx = log.WithLogger(ctx, logger)

		manager := forge.NewManager(ctx, cfg)

		if spin != nil {
			spin.Start()
		}
		contract, err := manager.Generate(req)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return err
		}

		if generateAndDeploy {
			if spin != nil {
				spin.Start()
			}
			contract, err = manager.Deploy(contract.ID)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return err
			}
		}

		return printContract(contract, generateOutput)
	},
}

// buildContractRequest assembles the request from flags, prompting for
// whatever was not supplied
func buildContractRequest() (*types.ContractRequest, error) {
	categoryInput := generateCategory
	if categoryInput == "" {
		categories := make([]string, 0)
		for _, c := range types.ContractCategories() {
			categories = append(categories, c.String())
		}
		selected, err := selectMenu("select the contract category", categories)
		if err != nil {
			return nil, err
		}
		categoryInput = selected
	}
	category, err := types.ValidateCategory(categoryInput)
	if err != nil {
		return nil, err
	}

	description := generateDescription
	if description == "" {
		description, err = prompt("describe the contract: ", func(s string) error {
			if s == "" {
				return fmt.Errorf("description must not be empty")
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	params, err := parseParams(generateParams)
	if err != nil {
		return nil, err
	}

	return &types.ContractRequest{
		Category:    category,
		Description: description,
		Parameters:  params,
	}, nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateCategory, "category", "c", "", fmt.Sprintf("contract category %v", types.ContractCategories()))
	generateCmd.Flags().StringVarP(&generateDescription, "description", "d", "", "free-text description of the contract")
	generateCmd.Flags().StringArrayVarP(&generateParams, "param", "p", nil, "contract parameter as key=value (can be specified multiple times)")
	generateCmd.Flags().BoolVar(&generateAndDeploy, "deploy", false, "deploy the contract after generating it")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "text", "output format (\"text\"|\"json\"|\"yaml\")")
	_ = generateCmd.RegisterFlagCompletionFunc("category", listCategories)
	rootCmd.AddCommand(generateCmd)
}
