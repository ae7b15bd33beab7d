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

package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/solforge/solforge-cli/pkg/types"
)

// SystemInstruction is sent as the system message on every generation request
const SystemInstruction = "You are a Solidity smart contract expert. You write secure, gas-efficient, production-ready smart contracts."

// ExplanationMarker separates the contract source from the prose explanation
// in the model's reply
const ExplanationMarker = "EXPLANATION:"

// Build renders a contract request into the generation prompt. It is pure:
// the same request always produces the same prompt, including parameter order.
func Build(req *types.ContractRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a Solidity smart contract of type %s.\n", req.Category)
	fmt.Fprintf(&b, "Description: %s\n", req.Description)

	if len(req.Parameters) > 0 {
		b.WriteString("Parameters:\n")
		keys := make([]string, 0, len(req.Parameters))
		for k := range req.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, req.Parameters[k])
		}
	}

	b.WriteString(`
Requirements:
1. Include an SPDX license identifier header.
2. Comment the contract so the code is easy to follow.
3. Follow current Solidity security best practices.
4. The contract must be ready to deploy as-is.
5. Include basic error handling with require statements.

Respond with the complete contract source code, followed by the line "` + ExplanationMarker + `" and a short explanation of how the contract works.`)

	return b.String()
}
