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

package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

const (
	ContractCategory = "contractcategory"
	DeploymentStatus = "deploymentstatus"
)

var (
	// CategoryERC20 is a fungible token contract
	CategoryERC20 = fftypes.FFEnumValue(ContractCategory, "erc20")
	// CategoryERC721 is a non-fungible token contract
	CategoryERC721 = fftypes.FFEnumValue(ContractCategory, "erc721")
	// CategoryERC1155 is a multi-token contract
	CategoryERC1155 = fftypes.FFEnumValue(ContractCategory, "erc1155")
	// CategoryCrowdsale is a token sale contract
	CategoryCrowdsale = fftypes.FFEnumValue(ContractCategory, "crowdsale")
	// CategoryDAO is a governance contract
	CategoryDAO = fftypes.FFEnumValue(ContractCategory, "dao")
	// CategoryCustom is a free-form contract described entirely by the user
	CategoryCustom = fftypes.FFEnumValue(ContractCategory, "custom")
)

var (
	// StatusGenerated means the source exists locally but is not on any ledger
	StatusGenerated = fftypes.FFEnumValue(DeploymentStatus, "generated")
	// StatusDeploying means a deployment request is in flight
	StatusDeploying = fftypes.FFEnumValue(DeploymentStatus, "deploying")
	// StatusDeployed means the contract is on chain and has an address
	StatusDeployed = fftypes.FFEnumValue(DeploymentStatus, "deployed")
	// StatusFailed means the last deployment attempt did not succeed
	StatusFailed = fftypes.FFEnumValue(DeploymentStatus, "failed")
)

// ContractCategories lists every category accepted by the generate flow
func ContractCategories() []fftypes.FFEnum {
	values := fftypes.FFEnumValues(ContractCategory)
	categories := make([]fftypes.FFEnum, 0, len(values))
	for _, v := range values {
		// FFEnumValues returns the registered values as plain strings
		categories = append(categories, fftypes.FFEnum(v.(string)))
	}
	return categories
}

// ValidateCategory resolves a user-supplied category string, case insensitively
func ValidateCategory(category string) (fftypes.FFEnum, error) {
	for _, c := range ContractCategories() {
		if strings.EqualFold(category, c.String()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("\"%s\" is not a valid contract category. valid categories are: %v", category, ContractCategories())
}

// ContractRequest is the user's input to the generate flow. It is consumed
// immediately by the prompt builder and never stored.
type ContractRequest struct {
	Category    fftypes.FFEnum    `json:"category"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// GeneratedContract is a single generated artifact. The store owns every
// instance; an update replaces the whole value at the same position, carrying
// over ID and CreatedAt.
type GeneratedContract struct {
	ID              *fftypes.UUID          `json:"id"`
	Name            string                 `json:"name"`
	Category        fftypes.FFEnum         `json:"category"`
	SourceCode      string                 `json:"sourceCode"`
	Explanation     string                 `json:"explanation"`
	ContractAddress *ethtypes.Address0xHex `json:"contractAddress,omitempty"`
	TransactionHash string                 `json:"transactionHash,omitempty"`
	StorageRef      string                 `json:"storageRef,omitempty"`
	Status          fftypes.FFEnum         `json:"status"`
	CreatedAt       *fftypes.FFTime        `json:"createdAt"`
}

// NewGeneratedContract mints a fresh artifact in the generated state
func NewGeneratedContract(category fftypes.FFEnum, sourceCode, explanation string) *GeneratedContract {
	now := fftypes.Now()
	return &GeneratedContract{
		ID:          fftypes.NewUUID(),
		Name:        deriveName(category, time.Time(*now)),
		Category:    category,
		SourceCode:  sourceCode,
		Explanation: explanation,
		Status:      StatusGenerated,
		CreatedAt:   now,
	}
}

// WithStatus returns a copy of the artifact with only the status changed
func (c *GeneratedContract) WithStatus(status fftypes.FFEnum) *GeneratedContract {
	updated := *c
	updated.Status = status
	return &updated
}

// Deployed returns a copy of the artifact in the deployed state, carrying the
// address and transaction hash returned by the provider and the storage
// reference from the metadata upload
func (c *GeneratedContract) Deployed(address *ethtypes.Address0xHex, txHash, storageRef string) *GeneratedContract {
	updated := *c
	updated.Status = StatusDeployed
	updated.ContractAddress = address
	updated.TransactionHash = txHash
	updated.StorageRef = storageRef
	return &updated
}

func deriveName(category fftypes.FFEnum, t time.Time) string {
	return fmt.Sprintf("%s-%d", strings.ToUpper(category.String()), t.UnixNano())
}
