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

// BlockParameters contains information about the block a transaction is
// executed in.
type BlockParameters struct {
	ChainID     Word
	BlockNumber uint64
	Timestamp   uint64
	Coinbase    Address
	GasLimit    Gas
	PrevRandao  Hash
	Difficulty  Value
	BaseFee     Value
	BlobBaseFee Value
	Revision    Revision
}

// Transaction summarizes the parameters of a transaction to be executed on a chain.
type Transaction struct {
	Sender     Address       // the sender of the transaction, paying for its execution
	Recipient  *Address      // the receiver of a transaction, nil if a new contract is to be created
	Nonce      uint64        // the nonce of the sender account
	Input      Data          // the input data for the transaction; the init code for creations
	Value      Value         // the amount of network currency to transfer to the recipient
	GasLimit   Gas           // the maximum amount of gas that can be used by the transaction
	GasPrice   Value         // the effective price of a unit of gas for this transaction
	AccessList []AccessTuple // the list of accounts and storage slots expected to be accessed
	BlobHashes []Hash        // versioned hashes of blobs attached to the transaction
}

// IsCreation reports whether the transaction deploys a new contract.
func (t *Transaction) IsCreation() bool {
	return t.Recipient == nil
}

// AccessTuple lists a range of accounts and storage slots expected to be accessed
// by a transaction. Those are intended as hints for the actual access pattern. However,
// transactions are not required to provide those, nor can completeness and/or correctness
// be assumed.
type AccessTuple struct {
	Address Address
	Keys    []Key
}

// Log is the type summarizing a log message emitted as a side effect of a
// contract execution.
type Log struct {
	Address Address
	Topics  []Hash
	Data    Data
}

// StorageChange records the final, non-zero value of a storage slot written
// by a transaction. Slots ending up at zero are not reported.
type StorageChange struct {
	Address Address
	Key     Key
	Value   Word
}
