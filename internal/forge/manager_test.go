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

package forge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/core"
	"github.com/solforge/solforge-cli/internal/utils"
	"github.com/solforge/solforge-cli/pkg/types"
)

const testAddress = "0xaf1292f453d7f33f0c2c217968879deb435cbf3a"

func newTestManager(t *testing.T) *Manager {
	endpoints := utils.NewTestEndPoint(t)
	return NewManager(context.Background(), &config.Config{
		Generation: config.GenerationConfig{
			BaseURL:     endpoints.GenerationURL,
			APIKey:      "test-key",
			Model:       "gpt-4",
			MaxTokens:   2000,
			Temperature: 0.2,
		},
		Deployment: config.DeploymentConfig{
			BaseURL:         endpoints.DeploymentURL,
			APIKey:          "test-key",
			CompilerVersion: "0.8.19",
			Chain:           "sepolia",
		},
	})
}

func mockCompletion(content string) {
	reply := fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
	httpmock.RegisterResponder("POST", utils.GenerationEndpoint+"/chat/completions",
		httpmock.NewStringResponder(200, reply))
}

func mockDeploymentProvider() {
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/upload",
		httpmock.NewStringResponder(200, `{"ipfs_hash":"QmHash"}`))
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/deploy",
		httpmock.NewStringResponder(200, `{"contract_address":"`+testAddress+`","transaction_hash":"0x092c","status":"success"}`))
}

func TestGenerateEndToEnd(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("pragma solidity ^0.8.19; contract Foo {} EXPLANATION: A simple ERC721.")

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{
		Category:    types.CategoryERC721,
		Description: "collectible",
		Parameters:  map[string]string{"tokenName": "Foo", "tokenSymbol": "FOO"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "pragma solidity ^0.8.19; contract Foo {}", contract.SourceCode)
	assert.Equal(t, "A simple ERC721.", contract.Explanation)
	assert.Equal(t, types.StatusGenerated, contract.Status)
	assert.Nil(t, contract.ContractAddress)
	assert.NotNil(t, contract.ID)
	assert.NotNil(t, contract.CreatedAt)
	assert.Regexp(t, "^ERC721-", contract.Name)

	assert.Len(t, manager.Contracts(), 1)
	assert.False(t, manager.IsGenerating())
	assert.Empty(t, manager.LastError())
}

func TestGenerateInsertsNewestFirst(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("contract A {} EXPLANATION: first.")

	manager := newTestManager(t)
	first, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)

	mockCompletion("contract B {} EXPLANATION: second.")
	second, err := manager.Generate(&types.ContractRequest{Category: types.CategoryDAO, Description: "governance"})
	assert.NoError(t, err)

	contracts := manager.Contracts()
	assert.Len(t, contracts, 2)
	assert.Equal(t, second.ID, contracts[0].ID)
	assert.Equal(t, first.ID, contracts[1].ID)
}

func TestGenerateFailureLeavesStoreUnchanged(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", utils.GenerationEndpoint+"/chat/completions",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})

	assert.ErrorIs(t, err, core.ErrRequestFailed)
	assert.Nil(t, contract)
	assert.Len(t, manager.Contracts(), 0)
	assert.False(t, manager.IsGenerating())
	assert.Regexp(t, "contract generation failed", manager.LastError())
}

func TestLastErrorClearedByNextSuccess(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", utils.GenerationEndpoint+"/chat/completions",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	manager := newTestManager(t)
	_, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.ErrorIs(t, err, core.ErrRequestFailed)
	assert.Regexp(t, "contract generation failed", manager.LastError())

	mockCompletion("contract Foo {} EXPLANATION: a contract.")
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)
	assert.NotNil(t, contract)
	assert.Empty(t, manager.LastError())
}

func TestDeployEndToEnd(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("contract Foo {} EXPLANATION: a contract.")
	mockDeploymentProvider()

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)

	deployed, err := manager.Deploy(contract.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StatusDeployed, deployed.Status)
	assert.Equal(t, testAddress, deployed.ContractAddress.String())
	assert.Equal(t, "0x092c", deployed.TransactionHash)
	assert.Equal(t, "QmHash", deployed.StorageRef)

	// the stored entry was replaced in place, same ID and creation time
	stored := manager.FindContract(contract.ID)
	assert.Equal(t, types.StatusDeployed, stored.Status)
	assert.Equal(t, contract.CreatedAt, stored.CreatedAt)
	assert.False(t, manager.IsDeploying())
	assert.Empty(t, manager.LastError())
}

func TestDeployFailureMarksContractFailed(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("contract Foo {} EXPLANATION: a contract.")
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/upload",
		httpmock.NewStringResponder(200, `{"ipfs_hash":"QmHash"}`))
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/deploy",
		httpmock.NewStringResponder(500, `internal error`))

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)

	deployed, err := manager.Deploy(contract.ID)
	assert.ErrorIs(t, err, core.ErrRequestFailed)
	assert.Nil(t, deployed)

	stored := manager.FindContract(contract.ID)
	assert.Equal(t, types.StatusFailed, stored.Status)
	assert.Nil(t, stored.ContractAddress)
	assert.False(t, manager.IsDeploying())
	assert.Regexp(t, "contract deployment failed", manager.LastError())
}

func TestDeployProviderReportedFailure(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("contract Foo {} EXPLANATION: a contract.")
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/upload",
		httpmock.NewStringResponder(200, `{"ipfs_hash":"QmHash"}`))
	httpmock.RegisterResponder("POST", utils.DeploymentEndpoint+"/deploy",
		httpmock.NewStringResponder(200, `{"contract_address":"","transaction_hash":"0x092c","status":"out_of_gas"}`))

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)

	_, err = manager.Deploy(contract.ID)
	assert.ErrorIs(t, err, core.ErrProviderFailure)
	assert.Equal(t, types.StatusFailed, manager.FindContract(contract.ID).Status)
}

func TestDeployUnknownID(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)

	manager := newTestManager(t)
	deployed, err := manager.Deploy(fftypes.NewUUID())

	assert.Error(t, err)
	assert.Nil(t, deployed)
	assert.Regexp(t, "no contract found", manager.LastError())
}

func TestDeployAlreadyDeployed(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	mockCompletion("contract Foo {} EXPLANATION: a contract.")
	mockDeploymentProvider()

	manager := newTestManager(t)
	contract, err := manager.Generate(&types.ContractRequest{Category: types.CategoryERC20, Description: "a token"})
	assert.NoError(t, err)

	_, err = manager.Deploy(contract.ID)
	assert.NoError(t, err)

	_, err = manager.Deploy(contract.ID)
	assert.Error(t, err)
	assert.Regexp(t, "already deployed", err.Error())
}
