// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state provides host databases to run transactions against: an
// in-memory database for tools and tests, and a reader exposing the state
// of a go-ethereum StateDB.
package state

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"golang.org/x/exp/maps"
)

// Memory is an in-memory guillotine.Database. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	accounts map[guillotine.Address]*guillotine.AccountInfo
	storage  map[guillotine.Address]map[guillotine.Key]guillotine.Word
}

var _ guillotine.Database = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		accounts: map[guillotine.Address]*guillotine.AccountInfo{},
		storage:  map[guillotine.Address]map[guillotine.Key]guillotine.Word{},
	}
}

// Basic returns a copy of the given account, or nil if it does not exist.
func (m *Memory) Basic(address guillotine.Address) (*guillotine.AccountInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, found := m.accounts[address]
	if !found {
		return nil, nil
	}
	res := *account
	res.Code = append(guillotine.Code(nil), account.Code...)
	return &res, nil
}

func (m *Memory) Storage(address guillotine.Address, key guillotine.Key) (guillotine.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.storage[address][key], nil
}

func (m *Memory) account(address guillotine.Address) *guillotine.AccountInfo {
	account, found := m.accounts[address]
	if !found {
		account = &guillotine.AccountInfo{}
		m.accounts[address] = account
	}
	return account
}

func (m *Memory) SetBalance(address guillotine.Address, balance guillotine.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account(address).Balance = balance
}

func (m *Memory) SetNonce(address guillotine.Address, nonce uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account(address).Nonce = nonce
}

func (m *Memory) SetCode(address guillotine.Address, code guillotine.Code) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account(address).Code = append(guillotine.Code(nil), code...)
}

// SetStorage sets a storage slot. Setting a slot to zero removes it.
func (m *Memory) SetStorage(address guillotine.Address, key guillotine.Key, value guillotine.Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStorage(address, key, value)
}

func (m *Memory) setStorage(address guillotine.Address, key guillotine.Key, value guillotine.Word) {
	slots, found := m.storage[address]
	if value.IsZero() {
		if found {
			delete(slots, key)
			if len(slots) == 0 {
				delete(m.storage, address)
			}
		}
		return
	}
	if !found {
		slots = map[guillotine.Key]guillotine.Word{}
		m.storage[address] = slots
	}
	slots[key] = value
}

// ApplyStorageChanges writes the storage changes of a successful
// execution. Slots not listed in the changes but reset to zero by the
// execution are not affected.
func (m *Memory) ApplyStorageChanges(changes []guillotine.StorageChange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, change := range changes {
		m.setStorage(change.Address, change.Key, change.Value)
	}
}

// Accounts lists the addresses of all accounts in the database.
func (m *Memory) Accounts() []guillotine.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Keys(m.accounts)
}

// Account is the JSON form of an account in a pre-state file.
type Account struct {
	Balance guillotine.Value                   `json:"balance"`
	Nonce   uint64                             `json:"nonce,omitempty"`
	Code    guillotine.Code                    `json:"code,omitempty"`
	Storage map[guillotine.Key]guillotine.Word `json:"storage,omitempty"`
}

// LoadMemory reads a database from a JSON object mapping addresses to
// accounts, for instance
//
//	{"0x0100000000000000000000000000000000000000": {"balance": "0x0a", "storage": {"0x00...": "0x05"}}}
func LoadMemory(r io.Reader) (*Memory, error) {
	var accounts map[guillotine.Address]Account
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&accounts); err != nil {
		return nil, fmt.Errorf("failed to decode pre-state: %w", err)
	}
	m := NewMemory()
	for address, account := range accounts {
		m.accounts[address] = &guillotine.AccountInfo{
			Balance: account.Balance,
			Nonce:   account.Nonce,
			Code:    account.Code,
		}
		for key, value := range account.Storage {
			m.setStorage(address, key, value)
		}
	}
	return m, nil
}

// Dump returns the JSON form of all accounts in the database. Addresses
// holding storage but no account record are included with zero fields.
func (m *Memory) Dump() map[guillotine.Address]Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[guillotine.Address]Account, len(m.accounts))
	for address, account := range m.accounts {
		res[address] = Account{
			Balance: account.Balance,
			Nonce:   account.Nonce,
			Code:    append(guillotine.Code(nil), account.Code...),
			Storage: maps.Clone(m.storage[address]),
		}
	}
	for address, slots := range m.storage {
		if _, found := res[address]; !found {
			res[address] = Account{Storage: maps.Clone(slots)}
		}
	}
	return res
}
