// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package adapter

import (
	"fmt"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
)

// This file implements the transfer of account and storage state between
// the host database and a native instance. Every failure during a sync
// poisons the handle: the native side may hold a partially written account
// and the handle must not be used for another execution.

// SyncAccount pushes the balance, nonce, and code of the given account, in
// that order. A nil account is not pushed; the native side treats unknown
// accounts as empty.
func SyncAccount(h *Handle, address guillotine.Address, account *guillotine.AccountInfo) error {
	if err := h.syncable(); err != nil {
		return err
	}
	if account == nil {
		return nil
	}
	if !h.instance.SetBalance(address, account.Balance) {
		return h.poison(&BoundaryCallError{Op: "evm_set_balance", Detail: address.String()})
	}
	if !h.instance.SetNonce(address, account.Nonce) {
		return h.poison(&BoundaryCallError{Op: "evm_set_nonce", Detail: address.String()})
	}
	if len(account.Code) > 0 && !h.instance.SetCode(address, account.Code) {
		return h.poison(&BoundaryCallError{Op: "evm_set_code", Detail: address.String()})
	}
	return nil
}

// SyncAccountFromDatabase fetches the given account from the database and
// pushes it to the native instance. The fetched account is returned; it is
// nil if the account does not exist.
func SyncAccountFromDatabase(h *Handle, db guillotine.Database, address guillotine.Address) (*guillotine.AccountInfo, error) {
	if err := h.syncable(); err != nil {
		return nil, err
	}
	account, err := db.Basic(address)
	if err != nil {
		return nil, h.poison(&DatabaseError{Op: "basic", Address: address, Err: err})
	}
	if err := SyncAccount(h, address, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SyncStorageSlot pushes a single storage value. Pushing the same value
// twice has no additional effect.
func SyncStorageSlot(h *Handle, address guillotine.Address, key guillotine.Key, value guillotine.Word) error {
	if err := h.syncable(); err != nil {
		return err
	}
	if !h.instance.SetStorage(address, key, value) {
		return h.poison(&BoundaryCallError{Op: "evm_set_storage", Detail: fmt.Sprintf("%v/%v", address, key)})
	}
	return nil
}

// SyncStorageFromDatabase fetches the given slots of an account from the
// database and pushes them to the native instance. Zero values are not
// pushed since unsynced slots are zero on the native side.
func SyncStorageFromDatabase(h *Handle, db guillotine.Database, address guillotine.Address, keys []guillotine.Key) error {
	for _, key := range keys {
		if err := h.syncable(); err != nil {
			return err
		}
		value, err := db.Storage(address, key)
		if err != nil {
			return h.poison(&DatabaseError{Op: "storage", Address: address, Key: &key, Err: err})
		}
		if value.IsZero() {
			continue
		}
		if err := SyncStorageSlot(h, address, key, value); err != nil {
			return err
		}
	}
	return nil
}

// ReadStorageSlot reads the current value of a storage slot from the native
// instance.
func ReadStorageSlot(h *Handle, address guillotine.Address, key guillotine.Key) (guillotine.Word, error) {
	if err := h.usable(); err != nil {
		return guillotine.Word{}, err
	}
	value, ok := h.instance.GetStorage(address, key)
	if !ok {
		return guillotine.Word{}, &BoundaryCallError{Op: "evm_get_storage", Detail: fmt.Sprintf("%v/%v", address, key)}
	}
	return value, nil
}

// ReadAccount reads the balance, nonce, and code of an account from the
// native instance.
func ReadAccount(h *Handle, address guillotine.Address) (*guillotine.AccountInfo, error) {
	if err := h.usable(); err != nil {
		return nil, err
	}
	balance, ok := h.instance.GetBalance(address)
	if !ok {
		return nil, &BoundaryCallError{Op: "evm_get_balance", Detail: address.String()}
	}
	nonce, ok := h.instance.GetNonce(address)
	if !ok {
		return nil, &BoundaryCallError{Op: "evm_get_nonce", Detail: address.String()}
	}
	size := h.instance.CodeLen(address)
	var code guillotine.Code
	if size > 0 {
		code = make(guillotine.Code, size)
		if copied := h.instance.CopyCode(address, code); copied != size {
			return nil, &FatalFault{Op: "evm_get_code", Detail: fmt.Sprintf("copied %d bytes into a buffer of %d", copied, size)}
		}
	}
	return &guillotine.AccountInfo{Balance: balance, Nonce: nonce, Code: code}, nil
}

func (h *Handle) poison(err error) error {
	h.poisoned = true
	return err
}
