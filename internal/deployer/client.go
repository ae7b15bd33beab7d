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

package deployer

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"golang.org/x/crypto/sha3"

	"github.com/solforge/solforge-cli/internal/core"
)

type Client struct {
	baseURL         string
	apiKey          string
	compilerVersion string
	chain           string
}

// ContractMetadata describes the artifact being uploaded to the provider's
// storage layer
type ContractMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	SourceHash  string `json:"source_hash"`
}

type uploadRequest struct {
	ContractCode string            `json:"contract_code"`
	Metadata     *ContractMetadata `json:"metadata"`
	Timestamp    string            `json:"timestamp"`
}

type uploadResponse struct {
	IPFSHash string `json:"ipfs_hash"`
}

type deployRequest struct {
	ContractSourceCode string `json:"contractSourceCode"`
	ContractName       string `json:"contractName"`
	CompilerVersion    string `json:"compilerVersion"`
	Chain              string `json:"chain"`
}

type deployResponseBody struct {
	ContractAddress string `json:"contract_address"`
	TransactionHash string `json:"transaction_hash"`
	Status          string `json:"status"`
}

// DeployResponse is the provider's reply to a successful compile-and-deploy
// request
type DeployResponse struct {
	ContractAddress *ethtypes.Address0xHex
	TransactionHash string
	Status          string
}

func NewClient(baseURL, apiKey, compilerVersion, chain string) *Client {
	return &Client{
		baseURL:         baseURL,
		apiKey:          apiKey,
		compilerVersion: compilerVersion,
		chain:           chain,
	}
}

// UploadMetadata pushes the contract source and its metadata to the
// provider's storage endpoint and returns the storage reference
func (c *Client) UploadMetadata(ctx context.Context, sourceCode, name, description string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath("upload")

	requestBody := &uploadRequest{
		ContractCode: sourceCode,
		Metadata: &ContractMetadata{
			Name:        name,
			Description: description,
			Type:        "solidity-contract",
			SourceHash:  SourceHash(sourceCode),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var upload uploadResponse
	if err := core.PostJSON(ctx, u.String(), c.apiKey, requestBody, &upload); err != nil {
		return "", err
	}
	if upload.IPFSHash == "" {
		return "", fmt.Errorf("%w: upload reply contained no storage reference", core.ErrMalformedResponse)
	}
	return upload.IPFSHash, nil
}

// Deploy submits the source to the provider's compile-and-deploy endpoint.
// The provider's own status field is checked: anything other than a success
// value is surfaced as a provider failure even when the HTTP exchange worked.
func (c *Client) Deploy(ctx context.Context, sourceCode, contractName string) (*DeployResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath("deploy")

	requestBody := &deployRequest{
		ContractSourceCode: sourceCode,
		ContractName:       contractName,
		CompilerVersion:    c.compilerVersion,
		Chain:              c.chain,
	}

	var deployed deployResponseBody
	if err := core.PostJSON(ctx, u.String(), c.apiKey, requestBody, &deployed); err != nil {
		return nil, err
	}
	if deployed.Status != "success" && deployed.Status != "deployed" {
		return nil, fmt.Errorf("%w: deployment status \"%s\" (tx %s)", core.ErrProviderFailure, deployed.Status, deployed.TransactionHash)
	}
	address, err := ethtypes.NewAddress(deployed.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid contract address \"%s\"", core.ErrMalformedResponse, deployed.ContractAddress)
	}
	return &DeployResponse{
		ContractAddress: address,
		TransactionHash: deployed.TransactionHash,
		Status:          deployed.Status,
	}, nil
}

// SourceHash is the keccak256 of the contract source, included in the upload
// metadata so the stored artifact can be verified against the source later
func SourceHash(sourceCode string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(sourceCode))
	return "0x" + hex.EncodeToString(hash.Sum(nil))
}
