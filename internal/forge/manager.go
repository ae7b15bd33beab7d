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
	"fmt"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/fftypes"

	"github.com/solforge/solforge-cli/internal/config"
	"github.com/solforge/solforge-cli/internal/deployer"
	"github.com/solforge/solforge-cli/internal/llm"
	"github.com/solforge/solforge-cli/internal/log"
	"github.com/solforge/solforge-cli/internal/prompt"
	"github.com/solforge/solforge-cli/internal/store"
	"github.com/solforge/solforge-cli/pkg/types"
)

// Manager owns the contract store and drives the generation and deployment
// clients. It is the single writer: every store mutation happens under its
// operation lock, so generate and deploy calls from different goroutines
// serialize rather than race.
type Manager struct {
	ctx       context.Context
	generator *llm.Client
	deployer  *deployer.Client
	contracts *store.ContractStore

	opMux sync.Mutex

	stateMux   sync.RWMutex
	generating bool
	deploying  bool
	lastError  string
}

func NewManager(ctx context.Context, cfg *config.Config) *Manager {
	return &Manager{
		ctx: ctx,
		generator: llm.NewClient(
			cfg.Generation.BaseURL,
			cfg.Generation.APIKey,
			cfg.Generation.Model,
			cfg.Generation.MaxTokens,
			cfg.Generation.Temperature,
		),
		deployer: deployer.NewClient(
			cfg.Deployment.BaseURL,
			cfg.Deployment.APIKey,
			cfg.Deployment.CompilerVersion,
			cfg.Deployment.Chain,
		),
		contracts: store.NewContractStore(),
	}
}

// Contracts exposes the store snapshot for display, newest first
func (m *Manager) Contracts() []*types.GeneratedContract {
	return m.contracts.List()
}

// FindContract returns the stored artifact for an identifier, or nil
func (m *Manager) FindContract(id *fftypes.UUID) *types.GeneratedContract {
	return m.contracts.FindByID(id)
}

// Generate builds the prompt for a contract request, calls the completion
// endpoint and, on success, inserts the new artifact at the front of the
// store in the generated state. On failure the store is left untouched.
func (m *Manager) Generate(req *types.ContractRequest) (*types.GeneratedContract, error) {
	m.opMux.Lock()
	defer m.opMux.Unlock()

	m.setGenerating(true)
	defer m.setGenerating(false)

	l := log.LoggerFromContext(m.ctx)
	l.Info(fmt.Sprintf("generating %s contract", req.Category))

	result, err := m.generator.Generate(m.ctx, prompt.Build(req))
	if err != nil {
		m.recordError(fmt.Errorf("contract generation failed: %w", err))
		return nil, err
	}

	contract := types.NewGeneratedContract(req.Category, result.SourceCode, result.Explanation)
	m.contracts.InsertFront(contract)
	m.clearError()

	l.Info(fmt.Sprintf("generated contract %s", contract.Name))
	return contract, nil
}

// Deploy uploads the artifact's metadata to the provider's storage layer and
// then submits the source to the compile-and-deploy endpoint. The artifact is
// moved to deploying before the calls start, then to deployed or failed when
// they finish; a deployed artifact carries the returned address, transaction
// hash and storage reference.
func (m *Manager) Deploy(id *fftypes.UUID) (*types.GeneratedContract, error) {
	m.opMux.Lock()
	defer m.opMux.Unlock()

	m.setDeploying(true)
	defer m.setDeploying(false)

	contract := m.contracts.FindByID(id)
	if contract == nil {
		err := fmt.Errorf("no contract found with ID \"%s\"", id)
		m.recordError(err)
		return nil, err
	}
	if contract.Status == types.StatusDeployed {
		err := fmt.Errorf("contract %s is already deployed at %s", contract.Name, contract.ContractAddress)
		m.recordError(err)
		return nil, err
	}

	l := log.LoggerFromContext(m.ctx)
	l.Info(fmt.Sprintf("deploying contract %s", contract.Name))

	if err := m.contracts.ReplaceAt(id, contract.WithStatus(types.StatusDeploying)); err != nil {
		m.recordError(err)
		return nil, err
	}

	storageRef, err := m.deployer.UploadMetadata(m.ctx, contract.SourceCode, contract.Name, contract.Explanation)
	if err != nil {
		return nil, m.failDeployment(id, contract, err)
	}
	l.Debug(fmt.Sprintf("uploaded contract metadata, storage reference %s", storageRef))

	deployed, err := m.deployer.Deploy(m.ctx, contract.SourceCode, contract.Name)
	if err != nil {
		return nil, m.failDeployment(id, contract, err)
	}

	updated := contract.Deployed(deployed.ContractAddress, deployed.TransactionHash, storageRef)
	if err := m.contracts.ReplaceAt(id, updated); err != nil {
		m.recordError(err)
		return nil, err
	}
	m.clearError()

	l.Info(fmt.Sprintf("contract %s deployed at %s", updated.Name, updated.ContractAddress))
	return updated, nil
}

func (m *Manager) failDeployment(id *fftypes.UUID, contract *types.GeneratedContract, cause error) error {
	err := fmt.Errorf("contract deployment failed: %w", cause)
	m.recordError(err)
	if replaceErr := m.contracts.ReplaceAt(id, contract.WithStatus(types.StatusFailed)); replaceErr != nil {
		return replaceErr
	}
	return err
}

// IsGenerating reports whether a generate call is in flight
func (m *Manager) IsGenerating() bool {
	m.stateMux.RLock()
	defer m.stateMux.RUnlock()
	return m.generating
}

// IsDeploying reports whether a deploy call is in flight
func (m *Manager) IsDeploying() bool {
	m.stateMux.RLock()
	defer m.stateMux.RUnlock()
	return m.deploying
}

// LastError returns the message recorded by the most recent failed
// operation. It is cleared by the next successful one.
func (m *Manager) LastError() string {
	m.stateMux.RLock()
	defer m.stateMux.RUnlock()
	return m.lastError
}

func (m *Manager) setGenerating(generating bool) {
	m.stateMux.Lock()
	defer m.stateMux.Unlock()
	m.generating = generating
}

func (m *Manager) setDeploying(deploying bool) {
	m.stateMux.Lock()
	defer m.stateMux.Unlock()
	m.deploying = deploying
}

func (m *Manager) recordError(err error) {
	m.stateMux.Lock()
	defer m.stateMux.Unlock()
	m.lastError = err.Error()
	log.LoggerFromContext(m.ctx).Error(err)
}

func (m *Manager) clearError() {
	m.stateMux.Lock()
	defer m.stateMux.Unlock()
	m.lastError = ""
}
