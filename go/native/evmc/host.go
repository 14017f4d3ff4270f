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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/ethereum/evmc/v11/bindings/go/evmc"
	"github.com/ethereum/go-ethereum/common"
	geth "github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

const createGasCostPerByte = 200

type callParameters struct {
	sender      [20]byte
	recipient   [20]byte
	codeAddress [20]byte
	value       [32]byte
	input       []byte
	gas         int64
	depth       int
	static      bool
	salt        [32]byte

	// code replaces the code stored at codeAddress if codeSet is true.
	code    []byte
	codeSet bool
}

type callResult struct {
	output    []byte
	gasLeft   int64
	gasRefund int64
	created   [20]byte
	status    error // nil, evmc.Revert or evmc.Failure
}

// hostContext gives the VM access to the state of an instance. It
// implements the host interface of evmc's Go bindings and handles nested
// calls and contract creations requested by the VM.
type hostContext struct {
	instance *instance
	// err is the first internal error encountered in a nested call. It
	// aborts the transaction.
	err error
}

var _ evmc.HostContext = (*hostContext)(nil)

func (h *hostContext) executeCall(kind evmc.CallKind, p callParameters) (callResult, error) {
	i := h.instance
	failed := callResult{gasLeft: p.gas, status: evmc.Failure}
	if p.depth > i.settings.maxCallDepth {
		return failed, nil
	}
	transfers := kind == evmc.Call || kind == evmc.CallCode
	if transfers && !canTransferValue(i.state, p.value, p.sender, &p.recipient) {
		return failed, nil
	}

	snapshot := i.state.snapshot()
	if transfers {
		transferValue(i.state, p.value, p.sender, p.recipient)
	}

	if res, isPrecompiled := h.runPrecompiled(p.codeAddress, p.input, p.gas); isPrecompiled {
		if res.status != nil {
			i.state.restore(snapshot)
			res.gasLeft = 0
		}
		return res, nil
	}

	code := p.code
	if !p.codeSet {
		code = i.state.code(p.codeAddress)
	}
	if len(code) == 0 {
		return callResult{gasLeft: p.gas}, nil
	}

	result, err := i.lib.vm.Execute(h, i.revision, kind, p.static, p.depth, p.gas,
		evmc.Address(p.recipient), evmc.Address(p.sender), p.input, evmc.Hash(p.value), code)
	status, err := classify(err)
	if err != nil {
		return callResult{}, err
	}
	res := callResult{
		output:    result.Output,
		gasLeft:   result.GasLeft,
		gasRefund: result.GasRefund,
		status:    status,
	}
	if status != nil {
		i.state.restore(snapshot)
		res.gasRefund = 0
		if status != evmc.Revert {
			// Only reverts return unused gas and output.
			res.gasLeft = 0
			res.output = nil
		}
	}
	return res, nil
}

func (h *hostContext) executeCreate(kind evmc.CallKind, p callParameters) (callResult, error) {
	i := h.instance
	failed := callResult{gasLeft: p.gas, status: evmc.Failure}
	if p.depth > i.settings.maxCallDepth {
		return failed, nil
	}
	if !canTransferValue(i.state, p.value, p.sender, nil) {
		return failed, nil
	}
	nonce := i.state.nonce(p.sender)
	if nonce+1 < nonce {
		return failed, nil
	}
	i.state.setNonce(p.sender, nonce+1)

	created := createAddress(kind, p.sender, nonce, p.salt, p.input)
	if i.revision >= evmc.Berlin {
		i.state.accessAccount(created)
	}
	if i.state.nonce(created) != 0 || len(i.state.code(created)) != 0 {
		return callResult{status: evmc.Failure}, nil
	}

	snapshot := i.state.snapshot()
	if i.revision >= evmc.SpuriousDragon {
		i.state.setNonce(created, 1)
	} else {
		i.state.getOrCreate(created)
	}
	i.state.created[created] = true
	transferValue(i.state, p.value, p.sender, created)

	result, err := i.lib.vm.Execute(h, i.revision, kind, false, p.depth, p.gas,
		evmc.Address(created), evmc.Address(p.sender), nil, evmc.Hash(p.value), p.input)
	status, err := classify(err)
	if err != nil {
		return callResult{}, err
	}
	if status == evmc.Revert {
		i.state.restore(snapshot)
		return callResult{output: result.Output, gasLeft: result.GasLeft, status: status}, nil
	}
	if status != nil {
		i.state.restore(snapshot)
		return callResult{status: status}, nil
	}

	code := result.Output
	valid := true
	if i.revision >= evmc.SpuriousDragon && len(code) > i.settings.maxCodeSize {
		valid = false
	}
	if i.revision >= evmc.London && len(code) > 0 && code[0] == 0xEF {
		valid = false
	}
	depositGas := int64(len(code)) * createGasCostPerByte
	if result.GasLeft < depositGas {
		valid = false
	}
	if !valid {
		i.state.restore(snapshot)
		return callResult{status: evmc.Failure}, nil
	}

	i.state.setCode(created, append([]byte(nil), code...))
	return callResult{
		output:    code,
		gasLeft:   result.GasLeft - depositGas,
		gasRefund: result.GasRefund,
		created:   created,
	}, nil
}

// runPrecompiled executes the precompiled contract at the given address if
// there is one. Custom precompiles take precedence over built-in ones.
func (h *hostContext) runPrecompiled(address [20]byte, input []byte, gas int64) (callResult, bool) {
	i := h.instance
	if id, found := i.settings.precompiles[address]; found {
		res, ok := native.InvokePrecompileHandler(id, address, input, uint64(gas))
		if !ok {
			return callResult{status: evmc.Failure}, true
		}
		return callResult{output: res.Output, gasLeft: gas - int64(res.GasUsed)}, true
	}

	contract, found := precompiledContracts(i.revision)[common.Address(address)]
	if !found {
		return callResult{}, false
	}
	cost := contract.RequiredGas(input)
	if cost > uint64(gas) {
		return callResult{status: evmc.Failure}, true
	}
	output, err := contract.Run(input)
	if err != nil {
		// precompiled contracts only return errors on invalid input
		return callResult{status: evmc.Failure}, true
	}
	return callResult{output: output, gasLeft: gas - int64(cost)}, true
}

func precompiledContracts(revision evmc.Revision) map[common.Address]geth.PrecompiledContract {
	switch {
	case revision >= evmc.Cancun:
		return geth.PrecompiledContractsCancun
	case revision >= evmc.Berlin:
		return geth.PrecompiledContractsBerlin
	case revision >= evmc.Istanbul:
		return geth.PrecompiledContractsIstanbul
	case revision >= evmc.Byzantium:
		return geth.PrecompiledContractsByzantium
	default:
		return geth.PrecompiledContractsHomestead
	}
}

// classify translates an execution error of the VM into the status of the
// call. Internal errors of the VM are returned as errors.
func classify(err error) (status error, internal error) {
	if err == nil {
		return nil, nil
	}
	var code evmc.Error
	if !errors.As(err, &code) {
		return nil, fmt.Errorf("unexpected EVMC execution error: %w", err)
	}
	if code == evmc.Revert {
		return evmc.Revert, nil
	}
	if code.IsInternalError() {
		return nil, fmt.Errorf("EVMC internal error: %w", err)
	}
	return evmc.Failure, nil
}

func createAddress(kind evmc.CallKind, sender [20]byte, nonce uint64, salt [32]byte, initCode []byte) [20]byte {
	if kind == evmc.Create {
		return crypto.CreateAddress(common.Address(sender), nonce)
	}
	return crypto.CreateAddress2(common.Address(sender), salt, crypto.Keccak256(initCode))
}

func canTransferValue(state *worldState, value [32]byte, sender [20]byte, recipient *[20]byte) bool {
	if value == ([32]byte{}) {
		return true
	}
	amount := new(uint256.Int).SetBytes32(value[:])
	if state.balance(sender).Lt(amount) {
		return false
	}
	if recipient == nil || sender == *recipient {
		return true
	}
	_, overflow := new(uint256.Int).AddOverflow(state.balance(*recipient), amount)
	return !overflow
}

// transferValue moves value between accounts. It must only be called after
// canTransferValue.
func transferValue(state *worldState, value [32]byte, sender, recipient [20]byte) {
	if value == ([32]byte{}) || sender == recipient {
		return
	}
	amount := new(uint256.Int).SetBytes32(value[:])
	state.setBalance(sender, new(uint256.Int).Sub(state.balance(sender), amount))
	state.setBalance(recipient, new(uint256.Int).Add(state.balance(recipient), amount))
}

func (h *hostContext) AccountExists(addr evmc.Address) bool {
	// EVMC uses existence in the sense of non-emptiness.
	return !h.instance.state.get(addr).empty()
}

func (h *hostContext) GetStorage(addr evmc.Address, key evmc.Hash) evmc.Hash {
	return h.instance.state.storage(addr, key)
}

func (h *hostContext) SetStorage(addr evmc.Address, key evmc.Hash, value evmc.Hash) evmc.StorageStatus {
	state := h.instance.state
	status := storageStatus(state.originalStorage(addr, key), state.storage(addr, key), value)
	state.setStorage(addr, key, value)
	return status
}

func (h *hostContext) GetTransientStorage(addr evmc.Address, key evmc.Hash) evmc.Hash {
	return h.instance.state.transient[slot{addr, key}]
}

func (h *hostContext) SetTransientStorage(addr evmc.Address, key evmc.Hash, value evmc.Hash) {
	if value == (evmc.Hash{}) {
		delete(h.instance.state.transient, slot{addr, key})
		return
	}
	h.instance.state.transient[slot{addr, key}] = value
}

func (h *hostContext) GetBalance(addr evmc.Address) evmc.Hash {
	return h.instance.state.balance(addr).Bytes32()
}

func (h *hostContext) GetCodeSize(addr evmc.Address) int {
	return len(h.instance.state.code(addr))
}

func (h *hostContext) GetCodeHash(addr evmc.Address) evmc.Hash {
	acc := h.instance.state.get(addr)
	if acc.empty() {
		return evmc.Hash{}
	}
	return evmc.Hash(crypto.Keccak256Hash(acc.code))
}

func (h *hostContext) GetCode(addr evmc.Address) []byte {
	return h.instance.state.code(addr)
}

// Selfdestruct moves the balance of the account to the beneficiary. From
// Cancun on, only accounts created in the same transaction are deleted.
func (h *hostContext) Selfdestruct(addr evmc.Address, beneficiary evmc.Address) bool {
	state := h.instance.state
	balance := state.balance(addr)
	if h.instance.revision >= evmc.Cancun && !state.created[addr] {
		if addr != beneficiary {
			state.setBalance(beneficiary, new(uint256.Int).Add(state.balance(beneficiary), balance))
			state.setBalance(addr, new(uint256.Int))
		}
		return false
	}
	first := !state.destructed[addr]
	state.destructed[addr] = true
	if addr != beneficiary {
		state.setBalance(beneficiary, new(uint256.Int).Add(state.balance(beneficiary), balance))
	}
	state.setBalance(addr, new(uint256.Int))
	return first
}

func (h *hostContext) GetTxContext() evmc.TxContext {
	i := h.instance
	block := i.block
	gasLimit := block.GasLimit
	if gasLimit == 0 {
		gasLimit = i.settings.blockGasLimit
	}
	prevRandao := block.PrevRandao
	if i.revision < evmc.Paris {
		prevRandao = block.Difficulty
	}
	return evmc.TxContext{
		Origin:     evmc.Address(i.caller),
		Coinbase:   evmc.Address(block.Coinbase),
		Number:     int64(block.Number),
		Timestamp:  int64(block.Timestamp),
		GasLimit:   int64(gasLimit),
		PrevRandao: evmc.Hash(prevRandao),
		ChainID:    evmc.Hash(block.ChainID),
		BaseFee:    evmc.Hash(block.BaseFee),
	}
}

// GetBlockHash returns zero hashes since block hashes are not part of the
// blockchain context of an instance.
func (h *hostContext) GetBlockHash(number int64) evmc.Hash {
	return evmc.Hash{}
}

func (h *hostContext) EmitLog(addr evmc.Address, topics []evmc.Hash, data []byte) {
	record := logRecord{
		address: addr,
		topics:  make([][32]byte, len(topics)),
		data:    append([]byte(nil), data...),
	}
	for i, topic := range topics {
		record.topics[i] = topic
	}
	h.instance.state.logs = append(h.instance.state.logs, record)
}

func (h *hostContext) Call(kind evmc.CallKind, recipient evmc.Address, sender evmc.Address, value evmc.Hash, input []byte, gas int64, depth int, static bool, salt evmc.Hash, codeAddress evmc.Address) (output []byte, gasLeft int64, gasRefund int64, createAddr evmc.Address, err error) {
	params := callParameters{
		sender:      sender,
		recipient:   recipient,
		codeAddress: codeAddress,
		value:       value,
		input:       input,
		gas:         gas,
		depth:       depth,
		static:      static,
		salt:        salt,
	}

	var res callResult
	switch kind {
	case evmc.Create, evmc.Create2:
		res, err = h.executeCreate(kind, params)
	case evmc.Call, evmc.CallCode, evmc.DelegateCall:
		res, err = h.executeCall(kind, params)
	default:
		err = fmt.Errorf("unsupported call kind: %v", kind)
	}
	if err != nil {
		if h.err == nil {
			h.err = err
		}
		return nil, 0, 0, evmc.Address{}, evmc.Failure
	}
	return res.output, res.gasLeft, res.gasRefund, evmc.Address(res.created), res.status
}

func (h *hostContext) AccessAccount(addr evmc.Address) evmc.AccessStatus {
	if h.instance.state.accessAccount(addr) {
		return evmc.WarmAccess
	}
	return evmc.ColdAccess
}

func (h *hostContext) AccessStorage(addr evmc.Address, key evmc.Hash) evmc.AccessStatus {
	if h.instance.state.accessStorage(addr, key) {
		return evmc.WarmAccess
	}
	return evmc.ColdAccess
}

// storageStatus classifies a storage update following EIP-2200 and
// EIP-3529, given the value at the start of the transaction, the current
// value and the new value.
func storageStatus(original, current, new evmc.Hash) evmc.StorageStatus {
	var zero evmc.Hash
	switch {
	case current == new:
		return evmc.StorageAssigned
	// 0 -> 0 -> Z
	case original == zero && current == zero && new != zero:
		return evmc.StorageAdded
	// X -> X -> 0
	case original != zero && current == original && new == zero:
		return evmc.StorageDeleted
	// X -> X -> Z
	case original != zero && current == original && new != zero && new != original:
		return evmc.StorageModified
	// X -> 0 -> Z
	case original != zero && current == zero && new != original && new != zero:
		return evmc.StorageDeletedAdded
	// X -> Y -> 0
	case original != zero && current != original && current != zero && new == zero:
		return evmc.StorageModifiedDeleted
	// X -> 0 -> X
	case original != zero && current == zero && new == original:
		return evmc.StorageDeletedRestored
	// 0 -> Y -> 0
	case original == zero && current != zero && new == zero:
		return evmc.StorageAddedDeleted
	// X -> Y -> X
	case original != zero && current != original && current != zero && new == original:
		return evmc.StorageModifiedRestored
	}
	return evmc.StorageAssigned
}
