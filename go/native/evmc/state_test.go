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
	"testing"

	"github.com/ethereum/evmc/v11/bindings/go/evmc"
	"github.com/holiman/uint256"
)

func TestWorldState_RestoreUndoesChangesSinceSnapshot(t *testing.T) {
	s := newWorldState()
	s.setBalance(sender, uint256.NewInt(10))
	s.setStorage(recipient, word(1), word(1))
	s.logs = append(s.logs, logRecord{address: recipient})

	snap := s.snapshot()
	s.setBalance(sender, uint256.NewInt(3))
	s.setNonce(other, 4)
	s.setStorage(recipient, word(1), word(2))
	s.setStorage(recipient, word(2), word(2))
	s.transient[slot{recipient, word(1)}] = word(1)
	s.accessAccount(other)
	s.logs = append(s.logs, logRecord{address: other})
	s.restore(snap)

	if got := s.balance(sender); !got.Eq(uint256.NewInt(10)) {
		t.Errorf("balance not restored, got %v", got)
	}
	if s.exists(other) {
		t.Errorf("account created after snapshot still exists")
	}
	if got := s.storage(recipient, word(1)); got != word(1) {
		t.Errorf("storage not restored, got %x", got)
	}
	if len(s.written) != 1 || len(s.logs) != 1 || len(s.transient) != 0 {
		t.Errorf("unexpected state after restore: %d written slots, %d logs, %d transient slots", len(s.written), len(s.logs), len(s.transient))
	}
	if s.accessAccount(other) {
		t.Errorf("warm account not restored")
	}
}

func TestWorldState_OriginalStorageIsValueAtTransactionStart(t *testing.T) {
	s := newWorldState()
	s.getOrCreate(recipient).storage[word(1)] = word(5)
	s.setStorage(recipient, word(1), word(6))
	s.setStorage(recipient, word(1), word(7))
	if got := s.originalStorage(recipient, word(1)); got != word(5) {
		t.Errorf("unexpected original value %x", got)
	}
	if got := s.originalStorage(recipient, word(2)); got != ([32]byte{}) {
		t.Errorf("unexpected original value of untouched slot %x", got)
	}
}

func TestWorldState_StorageChangesSkipZeroValuesAndKeepFirstWriteOrder(t *testing.T) {
	s := newWorldState()
	s.setStorage(recipient, word(3), word(1))
	s.setStorage(recipient, word(1), word(1))
	s.setStorage(recipient, word(2), word(1))
	s.setStorage(recipient, word(3), word(2))
	s.setStorage(recipient, word(2), [32]byte{})

	changes := s.storageChanges()
	want := []slot{{recipient, word(3)}, {recipient, word(1)}}
	if len(changes) != len(want) {
		t.Fatalf("unexpected changes %v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("unexpected change %d, wanted %v, got %v", i, want[i], changes[i])
		}
	}
}

func TestWorldState_RemoveDestructedDeletesMarkedAccounts(t *testing.T) {
	s := newWorldState()
	s.setNonce(recipient, 1)
	s.setNonce(other, 1)
	s.destructed[recipient] = true
	s.removeDestructed()
	if s.exists(recipient) || !s.exists(other) {
		t.Errorf("unexpected accounts after removal")
	}
}

func TestStorageStatus_ClassifiesAllTransitions(t *testing.T) {
	var zero evmc.Hash
	x, y, z := evmc.Hash(word(1)), evmc.Hash(word(2)), evmc.Hash(word(3))
	tests := []struct {
		original, current, new evmc.Hash
		want                   evmc.StorageStatus
	}{
		{zero, zero, zero, evmc.StorageAssigned},
		{x, y, y, evmc.StorageAssigned},
		{zero, zero, z, evmc.StorageAdded},
		{x, x, zero, evmc.StorageDeleted},
		{x, x, z, evmc.StorageModified},
		{x, zero, z, evmc.StorageDeletedAdded},
		{x, y, zero, evmc.StorageModifiedDeleted},
		{x, zero, x, evmc.StorageDeletedRestored},
		{zero, y, zero, evmc.StorageAddedDeleted},
		{x, y, x, evmc.StorageModifiedRestored},
		{x, y, z, evmc.StorageAssigned},
	}
	for _, test := range tests {
		if got := storageStatus(test.original, test.current, test.new); got != test.want {
			t.Errorf("unexpected status for %x -> %x -> %x, wanted %v, got %v",
				test.original[31], test.current[31], test.new[31], test.want, got)
		}
	}
}
