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

import "context"

//go:generate mockgen -source executor.go -destination executor_mock.go -package guillotine

// Executor is the host runtime's native execution interface: a component
// capable of executing a single transaction on top of a read-only view of
// the chain state.
//
// An Executor reports EVM-level reverts as a Revert outcome, not as an
// error. The error is reserved for conditions outside of EVM semantics, such
// as failing state lookups, a failing execution engine, or an invalid
// configuration. In such a case the outcome is nil.
//
// Implementations must support concurrent Transact calls.
type Executor interface {
	// Transact executes the given transaction in the given block context on
	// top of the state provided by the database. The context is only
	// consulted before the execution starts; a running execution can not be
	// canceled.
	Transact(ctx context.Context, block BlockParameters, tx Transaction, db Database) (Outcome, error)
}

// Outcome summarizes the result of a transaction execution. It is either a
// Success or a Revert value. Outcomes are immutable values owned by the
// caller.
type Outcome interface {
	// Used returns the total amount of gas consumed by the transaction.
	Used() Gas
	// Returned returns the output produced by the transaction.
	Returned() Data
	isOutcome()
}

// Success is the outcome of a transaction that completed without reverting.
type Success struct {
	GasUsed        Gas
	GasRefunded    Gas
	Logs           []Log
	StorageChanges []StorageChange
	Output         Data
}

// Revert is the outcome of a transaction that reverted or failed within the
// EVM. All state modifications of such a transaction are discarded.
type Revert struct {
	GasUsed Gas
	Output  Data
}

func (s Success) Used() Gas      { return s.GasUsed }
func (s Success) Returned() Data { return s.Output }
func (Success) isOutcome()       {}

func (r Revert) Used() Gas      { return r.GasUsed }
func (r Revert) Returned() Data { return r.Output }
func (Revert) isOutcome()       {}
