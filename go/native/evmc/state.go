// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmc

import (
	"github.com/holiman/uint256"
	"golang.org/x/exp/maps"
)

type account struct {
	balance uint256.Int
	nonce   uint64
	code    []byte
	storage map[[32]byte][32]byte
}

func (a *account) clone() *account {
	res := *a
	res.storage = maps.Clone(a.storage)
	return &res
}

func (a *account) empty() bool {
	return a == nil || (a.nonce == 0 && a.balance.IsZero() && len(a.code) == 0)
}

type slot struct {
	address [20]byte
	key     [32]byte
}

type logRecord struct {
	address [20]byte
	topics  [][32]byte
	data    []byte
}

// worldState is the Go-side state of an instance. Code slices are never
// modified in place and may thus be shared between snapshots.
type worldState struct {
	accounts     map[[20]byte]*account
	transient    map[slot][32]byte
	warmAccounts map[[20]byte]bool
	warmSlots    map[slot]bool
	destructed   map[[20]byte]bool
	created      map[[20]byte]bool
	logs         []logRecord
	written      []slot

	// original holds the value of every written slot at the start of the
	// transaction. It is not affected by snapshots.
	original map[slot][32]byte
}

func newWorldState() *worldState {
	return &worldState{
		accounts:     map[[20]byte]*account{},
		transient:    map[slot][32]byte{},
		warmAccounts: map[[20]byte]bool{},
		warmSlots:    map[slot]bool{},
		destructed:   map[[20]byte]bool{},
		created:      map[[20]byte]bool{},
		original:     map[slot][32]byte{},
	}
}

// snapshot is a full copy of the revertible parts of a worldState. Logs and
// written slots are only ever appended and are thus restored by length.
type snapshot struct {
	accounts     map[[20]byte]*account
	transient    map[slot][32]byte
	warmAccounts map[[20]byte]bool
	warmSlots    map[slot]bool
	destructed   map[[20]byte]bool
	created      map[[20]byte]bool
	logs         int
	written      int
}

func (s *worldState) snapshot() snapshot {
	accounts := make(map[[20]byte]*account, len(s.accounts))
	for address, acc := range s.accounts {
		accounts[address] = acc.clone()
	}
	return snapshot{
		accounts:     accounts,
		transient:    maps.Clone(s.transient),
		warmAccounts: maps.Clone(s.warmAccounts),
		warmSlots:    maps.Clone(s.warmSlots),
		destructed:   maps.Clone(s.destructed),
		created:      maps.Clone(s.created),
		logs:         len(s.logs),
		written:      len(s.written),
	}
}

// restore resets the state to the given snapshot. A snapshot can only be
// restored once.
func (s *worldState) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.transient = snap.transient
	s.warmAccounts = snap.warmAccounts
	s.warmSlots = snap.warmSlots
	s.destructed = snap.destructed
	s.created = snap.created
	s.logs = s.logs[:snap.logs]
	s.written = s.written[:snap.written]
}

func (s *worldState) get(address [20]byte) *account {
	return s.accounts[address]
}

func (s *worldState) getOrCreate(address [20]byte) *account {
	acc, found := s.accounts[address]
	if !found {
		acc = &account{storage: map[[32]byte][32]byte{}}
		s.accounts[address] = acc
	}
	return acc
}

func (s *worldState) exists(address [20]byte) bool {
	_, found := s.accounts[address]
	return found
}

func (s *worldState) balance(address [20]byte) *uint256.Int {
	if acc := s.get(address); acc != nil {
		return new(uint256.Int).Set(&acc.balance)
	}
	return new(uint256.Int)
}

func (s *worldState) setBalance(address [20]byte, balance *uint256.Int) {
	s.getOrCreate(address).balance.Set(balance)
}

func (s *worldState) nonce(address [20]byte) uint64 {
	if acc := s.get(address); acc != nil {
		return acc.nonce
	}
	return 0
}

func (s *worldState) setNonce(address [20]byte, nonce uint64) {
	s.getOrCreate(address).nonce = nonce
}

func (s *worldState) code(address [20]byte) []byte {
	if acc := s.get(address); acc != nil {
		return acc.code
	}
	return nil
}

func (s *worldState) setCode(address [20]byte, code []byte) {
	s.getOrCreate(address).code = code
}

func (s *worldState) storage(address [20]byte, key [32]byte) [32]byte {
	if acc := s.get(address); acc != nil {
		return acc.storage[key]
	}
	return [32]byte{}
}

// setStorage writes a slot as part of a transaction, recording it as
// written. Pre-state is installed through the account directly.
func (s *worldState) setStorage(address [20]byte, key, value [32]byte) {
	cur := slot{address, key}
	if _, found := s.original[cur]; !found {
		s.original[cur] = s.storage(address, key)
	}
	written := false
	for _, prev := range s.written {
		if prev == cur {
			written = true
			break
		}
	}
	if !written {
		s.written = append(s.written, cur)
	}
	s.getOrCreate(address).storage[key] = value
}

// originalStorage returns the value of a slot at the start of the
// transaction.
func (s *worldState) originalStorage(address [20]byte, key [32]byte) [32]byte {
	if value, found := s.original[slot{address, key}]; found {
		return value
	}
	return s.storage(address, key)
}

// accessAccount marks an account as warm and reports whether it was warm
// before.
func (s *worldState) accessAccount(address [20]byte) bool {
	warm := s.warmAccounts[address]
	s.warmAccounts[address] = true
	return warm
}

// accessStorage marks a slot as warm and reports whether it was warm
// before.
func (s *worldState) accessStorage(address [20]byte, key [32]byte) bool {
	cur := slot{address, key}
	warm := s.warmSlots[cur]
	s.warmSlots[cur] = true
	return warm
}

// removeDestructed deletes all accounts marked for destruction. It is run
// once at the end of a successful transaction.
func (s *worldState) removeDestructed() {
	for address := range s.destructed {
		delete(s.accounts, address)
	}
	s.destructed = map[[20]byte]bool{}
}

// storageChanges lists the written slots with a non-zero final value in
// the order of their first write.
func (s *worldState) storageChanges() []slot {
	res := make([]slot, 0, len(s.written))
	for _, cur := range s.written {
		if s.storage(cur.address, cur.key) != ([32]byte{}) {
			res = append(res, cur)
		}
	}
	return res
}
