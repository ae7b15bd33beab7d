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

package store

import (
	"fmt"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/fftypes"

	"github.com/solforge/solforge-cli/pkg/types"
)

// ContractStore holds every artifact of the current process, newest first.
// It lives in memory only; nothing survives a restart.
type ContractStore struct {
	mux       sync.RWMutex
	contracts []*types.GeneratedContract
}

func NewContractStore() *ContractStore {
	return &ContractStore{}
}

// InsertFront puts a new artifact at position 0, keeping the collection in
// reverse-chronological order
func (s *ContractStore) InsertFront(contract *types.GeneratedContract) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.contracts = append([]*types.GeneratedContract{contract}, s.contracts...)
}

// FindByID returns the artifact with the given identifier, or nil
func (s *ContractStore) FindByID(id *fftypes.UUID) *types.GeneratedContract {
	s.mux.RLock()
	defer s.mux.RUnlock()
	for _, c := range s.contracts {
		if c.ID.Equals(id) {
			return c
		}
	}
	return nil
}

// ReplaceAt swaps the stored artifact with the same identifier for the
// updated value, preserving its position in the collection. The updated
// value must carry the original ID and CreatedAt.
func (s *ContractStore) ReplaceAt(id *fftypes.UUID, updated *types.GeneratedContract) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	for i, c := range s.contracts {
		if c.ID.Equals(id) {
			s.contracts[i] = updated
			return nil
		}
	}
	return fmt.Errorf("no contract found with ID \"%s\"", id)
}

// List returns a snapshot of the collection, newest first
func (s *ContractStore) List() []*types.GeneratedContract {
	s.mux.RLock()
	defer s.mux.RUnlock()
	snapshot := make([]*types.GeneratedContract, len(s.contracts))
	copy(snapshot, s.contracts)
	return snapshot
}

// Len returns the number of stored artifacts
func (s *ContractStore) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.contracts)
}
