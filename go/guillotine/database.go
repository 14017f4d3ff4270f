// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package guillotine

//go:generate mockgen -source database.go -destination database_mock.go -package guillotine

// Database is the read interface of the host runtime's account and storage
// state. Implementations report lookup failures as errors; a missing account
// is not a failure and is reported as a nil AccountInfo.
type Database interface {
	// Basic fetches the balance, nonce, and code of an account. The result
	// is nil if the account does not exist.
	Basic(Address) (*AccountInfo, error)
	// Storage fetches the value of a storage slot. Unset slots are zero.
	Storage(Address, Key) (Word, error)
}

// AccountInfo is a snapshot of the basic properties of an account.
type AccountInfo struct {
	Balance Value
	Nonce   uint64
	Code    Code
}

// IsEmpty reports whether the account has no balance, no nonce, and no code.
func (a *AccountInfo) IsEmpty() bool {
	return a == nil || (a.Balance.IsZero() && a.Nonce == 0 && len(a.Code) == 0)
}
