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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v2"

	"github.com/solforge/solforge-cli/pkg/types"
)

// printContract renders a single artifact in the requested format
func printContract(contract *types.GeneratedContract, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(contract, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		// roundtrip through JSON so the address and timestamps render as
		// strings rather than raw bytes
		encoded, err := json.Marshal(contract)
		if err != nil {
			return err
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return err
		}
		out, err := yaml.Marshal(fields)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "text":
		fmt.Printf("Name:    %s\n", contract.Name)
		fmt.Printf("ID:      %s\n", contract.ID)
		fmt.Printf("Status:  %s\n", contract.Status)
		if contract.ContractAddress != nil {
			fmt.Printf("Address: %s\n", contract.ContractAddress)
			fmt.Printf("Tx:      %s\n", contract.TransactionHash)
		}
		if contract.StorageRef != "" {
			fmt.Printf("Storage: %s\n", contract.StorageRef)
		}
		fmt.Printf("\n%s\n\n%s\n", contract.SourceCode, contract.Explanation)
	default:
		return fmt.Errorf("invalid output format '%s'. valid formats are \"text\", \"json\" and \"yaml\"", format)
	}
	return nil
}

// printContractTable renders the store snapshot, newest first
func printContractTable(contracts []*types.GeneratedContract) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Status", "Address", "Created"})
	for i, c := range contracts {
		address := ""
		if c.ContractAddress != nil {
			address = c.ContractAddress.String()
		}
		t.AppendRow(table.Row{
			i + 1,
			c.ID,
			c.Name,
			c.Status,
			address,
			time.Time(*c.CreatedAt).Format(time.RFC3339),
		})
	}
	t.Render()
}
