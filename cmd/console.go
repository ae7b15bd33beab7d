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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/forge"
	"github.com/solforge/solforge-cli/internal/log"
	"github.com/solforge/solforge-cli/pkg/types"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start an interactive contract generation session",
	Long: `Start an interactive contract generation session

All contracts generated during the session are held in memory and listed
newest first. Nothing is persisted when the session ends.

Commands available inside the session:

  generate            generate a new contract
  deploy <#>          deploy a listed contract
  show <#>            print a listed contract
  list                list the session's contracts
  exit                end the session
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.ValidateGeneration(); err != nil {
			return err
		}

		ctx := log.WithVerbosity(context.Background(), verbose)
		ctx = log.WithLogger(ctx, logger)

		manager := forge.NewManager(ctx, cfg)
		return runConsole(manager, cfg)
	},
}

func runConsole(manager *forge.Manager, cfg *config.Config) error {
	fmt.Println("SolForge interactive session. Type 'help' for commands, 'exit' to quit.")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("solforge> ")
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Println("commands: generate, deploy <#>, show <#>, list, exit")
		case "list":
			printContractTable(manager.Contracts())
		case "generate":
			if err := consoleGenerate(manager); err != nil {
				printError(err)
			}
		case "deploy":
			if err := cfg.ValidateDeployment(); err != nil {
				printError(err)
				continue
			}
			contract, err := contractFromArg(manager, fields[1:])
			if err != nil {
				printError(err)
				continue
			}
			deployed, err := manager.Deploy(contract.ID)
			if err != nil {
				printError(err)
				continue
			}
			fmt.Printf("contract %s deployed at %s\n", deployed.Name, deployed.ContractAddress)
		case "show":
			contract, err := contractFromArg(manager, fields[1:])
			if err != nil {
				printError(err)
				continue
			}
			if err := printContract(contract, "text"); err != nil {
				printError(err)
			}
		default:
			printError(fmt.Errorf("unknown command '%s'", fields[0]))
		}
	}
}

func consoleGenerate(manager *forge.Manager) error {
	categories := make([]string, 0)
	for _, c := range types.ContractCategories() {
		categories = append(categories, c.String())
	}
	selected, err := selectMenu("select the contract category", categories)
	if err != nil {
		return err
	}
	category, err := types.ValidateCategory(selected)
	if err != nil {
		return err
	}

	description, err := prompt("describe the contract: ", func(s string) error {
		if s == "" {
			return fmt.Errorf("description must not be empty")
		}
		return nil
	})
	if err != nil {
		return err
	}

	params := map[string]string{}
	for {
		key, err := prompt("parameter name (empty line to finish): ", func(string) error { return nil })
		if err != nil {
			return err
		}
		if key == "" {
			break
		}
		value, err := prompt(fmt.Sprintf("value for %s: ", key), func(string) error { return nil })
		if err != nil {
			return err
		}
		params[key] = value
	}

	contract, err := manager.Generate(&types.ContractRequest{
		Category:    category,
		Description: description,
		Parameters:  params,
	})
	if err != nil {
		return err
	}
	fmt.Printf("generated contract %s (%s)\n", contract.Name, contract.ID)
	return nil
}

// contractFromArg resolves a 1-based index from the list view into the
// artifact it refers to
func contractFromArg(manager *forge.Manager, args []string) (*types.GeneratedContract, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("a contract number from 'list' is required")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid contract number", args[0])
	}
	contracts := manager.Contracts()
	if index < 1 || index > len(contracts) {
		return nil, fmt.Errorf("'%d' is not a valid contract number", index)
	}
	return contracts[index-1], nil
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
