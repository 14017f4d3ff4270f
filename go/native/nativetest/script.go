// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package nativetest

import (
	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/holiman/uint256"
)

// Script replaces the bytecode interpreter of the engine. It is run once per
// execution and may inspect and modify the engine's state through the
// given Execution. State changes of reverted executions are discarded.
type Script func(*Execution) Result

// Result is the outcome of a Script. GasUsed values beyond the gas limit
// are truncated to the limit.
type Result struct {
	Reverted bool
	GasUsed  int64
	Refund   uint64
	Output   []byte
}

// Execution provides a Script with access to the context and state of the
// running instance.
type Execution struct {
	instance *instance
}

// Hardfork from the engine's creation parameters.
func (e *Execution) Hardfork() string { return e.instance.settings.Hardfork }

// Settings used for creating the engine.
func (e *Execution) Settings() Settings { return e.instance.settings.clone() }

func (e *Execution) Caller() [20]byte           { return e.instance.caller }
func (e *Execution) Address() [20]byte          { return e.instance.address }
func (e *Execution) Value() [32]byte            { return e.instance.value }
func (e *Execution) Gas() int64                 { return e.instance.gas }
func (e *Execution) Input() []byte              { return e.instance.calldata }
func (e *Execution) Code() []byte               { return e.instance.code }
func (e *Execution) Block() native.BlockContext { return e.instance.block }
func (e *Execution) BlobHashes() [][32]byte     { return e.instance.blobHashes }

// AccessList returns the accounts and slots of the transaction's access list.
func (e *Execution) AccessList() ([][20]byte, []native.AccessKey) {
	return e.instance.accessAddresses, e.instance.accessKeys
}

// IsCreation reports whether the execution deploys a contract.
func (e *Execution) IsCreation() bool {
	return e.instance.address == [20]byte{}
}

func (e *Execution) Balance(address [20]byte) *uint256.Int {
	return new(uint256.Int).Set(&e.instance.account(address).balance)
}

func (e *Execution) Nonce(address [20]byte) uint64 {
	return e.instance.account(address).nonce
}

func (e *Execution) AccountCode(address [20]byte) []byte {
	return e.instance.account(address).code
}

func (e *Execution) Storage(address [20]byte, key [32]byte) [32]byte {
	return e.instance.account(address).storage[key]
}

// SetStorage writes a storage slot and records it as changed.
func (e *Execution) SetStorage(address [20]byte, key, value [32]byte) {
	slot := native.AccessKey{Address: address, Key: key}
	written := false
	for _, cur := range e.instance.written {
		if cur == slot {
			written = true
			break
		}
	}
	if !written {
		e.instance.written = append(e.instance.written, slot)
	}
	e.instance.account(address).storage[key] = value
}

// EmitLog appends a log to the execution's logs.
func (e *Execution) EmitLog(address [20]byte, topics [][32]byte, data []byte) {
	e.instance.logs = append(e.instance.logs, logRecord{
		address: address,
		topics:  append([][32]byte(nil), topics...),
		data:    append([]byte(nil), data...),
	})
}

// Transfer moves value between accounts. It reports false if the sender's
// balance is insufficient.
func (e *Execution) Transfer(from, to [20]byte, value *uint256.Int) bool {
	sender := e.instance.account(from)
	if sender.balance.Lt(value) {
		return false
	}
	sender.balance.Sub(&sender.balance, value)
	receiver := e.instance.account(to)
	receiver.balance.Add(&receiver.balance, value)
	return true
}

// InvokeOpcode runs the custom handler registered for the given opcode. The
// first result is false if the opcode is not overridden.
func (e *Execution) InvokeOpcode(frame uintptr, opcode byte) (overridden, handled bool) {
	id, found := e.instance.settings.Opcodes[opcode]
	if !found {
		return false, false
	}
	return true, native.InvokeOpcodeHandler(id, frame, opcode)
}

// CallPrecompile runs the custom precompile registered for the given
// address. The first result is false if the address is not overridden.
func (e *Execution) CallPrecompile(address [20]byte, input []byte, gasLimit uint64) (overridden bool, res native.PrecompileResult, success bool) {
	id, found := e.instance.settings.Precompiles[address]
	if !found {
		return false, native.PrecompileResult{}, false
	}
	res, success = native.InvokePrecompileHandler(id, address, input, gasLimit)
	return true, res, success
}

// IntrinsicGas computes the base cost of the execution's transaction.
func (e *Execution) IntrinsicGas() int64 {
	gas := int64(21000)
	if e.IsCreation() {
		gas = 53000
	}
	data := e.instance.calldata
	if e.IsCreation() {
		data = e.instance.code
	}
	for _, b := range data {
		if b == 0 {
			gas += 4
		} else {
			gas += 16
		}
	}
	addresses, keys := e.AccessList()
	gas += int64(len(addresses))*2400 + int64(len(keys))*1900
	return gas
}

// Transfer is the default Script. It charges the intrinsic gas and moves the
// transferred value from the caller to the target. Executions with
// insufficient gas or balance revert and consume all gas.
func Transfer(e *Execution) Result {
	gas := e.IntrinsicGas()
	if gas > e.Gas() {
		return Result{Reverted: true, GasUsed: e.Gas()}
	}
	v := e.Value()
	value := new(uint256.Int).SetBytes32(v[:])
	if !e.Transfer(e.Caller(), e.Address(), value) {
		return Result{Reverted: true, GasUsed: e.Gas()}
	}
	return Result{GasUsed: gas}
}
