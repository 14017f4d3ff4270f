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
	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/ethereum/evmc/v11/bindings/go/evmc"
	"go.uber.org/zap"
)

type instance struct {
	lib      *Library
	settings settings
	revision evmc.Revision
	level    native.LogLevel
	state    *worldState

	code            []byte
	gas             int64
	caller          [20]byte
	address         [20]byte
	value           [32]byte
	calldata        []byte
	block           native.BlockContext
	accessAddresses [][20]byte
	accessKeys      []native.AccessKey
	blobHashes      [][32]byte

	executed bool
	result   callResult
}

var _ native.Instance = (*instance)(nil)

func newInstance(lib *Library, s settings, revision evmc.Revision, level native.LogLevel) *instance {
	return &instance{
		lib:      lib,
		settings: s,
		revision: revision,
		level:    level,
		state:    newWorldState(),
	}
}

func (i *instance) Destroy() {
	i.state = nil
}

func (i *instance) SetBytecode(code []byte) bool {
	i.code = append([]byte(nil), code...)
	return true
}

func (i *instance) SetExecutionContext(gas int64, caller, address [20]byte, value [32]byte, calldata []byte) bool {
	if gas < 0 {
		return false
	}
	i.gas, i.caller, i.address, i.value = gas, caller, address, value
	i.calldata = append([]byte(nil), calldata...)
	return true
}

func (i *instance) SetBlockchainContext(block native.BlockContext) {
	i.block = block
}

func (i *instance) SetAccessListAddresses(addresses [][20]byte) bool {
	if i.revision < evmc.Berlin && len(addresses) > 0 {
		return false
	}
	i.accessAddresses = append([][20]byte(nil), addresses...)
	return true
}

func (i *instance) SetAccessListStorageKeys(keys []native.AccessKey) bool {
	if i.revision < evmc.Berlin && len(keys) > 0 {
		return false
	}
	i.accessKeys = append([]native.AccessKey(nil), keys...)
	return true
}

func (i *instance) SetBlobHashes(hashes [][32]byte) bool {
	if i.revision < evmc.Cancun && len(hashes) > 0 {
		return false
	}
	i.blobHashes = append([][32]byte(nil), hashes...)
	return true
}

func (i *instance) Execute() bool {
	if i.executed {
		return false
	}
	i.executed = true

	i.lib.execute.Lock()
	defer i.lib.execute.Unlock()
	res, err := i.run()
	if err != nil {
		if i.level >= native.LogError {
			Logger().Error("EVMC execution failed", zap.Error(err))
		}
		return false
	}
	i.result = res
	if i.level >= native.LogDebug {
		Logger().Debug("EVMC execution completed",
			zap.Bool("success", res.status == nil),
			zap.Int64("gas_left", res.gasLeft),
			zap.Int("logs", len(i.state.logs)))
	}
	return true
}

// run executes the configured transaction. Transactions that cannot pay
// for their intrinsic gas or transferred value fail and consume all gas.
func (i *instance) run() (callResult, error) {
	creation := i.address == [20]byte{}
	input := i.calldata
	if creation {
		input = i.code
	}
	intrinsic := intrinsicGas(i.revision, creation, input, len(i.accessAddresses), len(i.accessKeys))
	if i.gas < intrinsic {
		return callResult{status: evmc.Failure}, nil
	}
	gas := i.gas - intrinsic

	if creation && i.revision >= evmc.Shanghai && len(i.code) > i.settings.maxInitcodeSize {
		return callResult{status: evmc.Failure}, nil
	}

	i.warmUp()
	host := &hostContext{instance: i}

	var res callResult
	var err error
	if creation {
		// The creation increments the sender's nonce.
		res, err = host.executeCreate(evmc.Create, callParameters{
			sender: i.caller,
			value:  i.value,
			input:  i.code,
			gas:    gas,
		})
	} else {
		nonce := i.state.nonce(i.caller)
		if nonce+1 < nonce {
			return callResult{status: evmc.Failure}, nil
		}
		i.state.setNonce(i.caller, nonce+1)
		res, err = host.executeCall(evmc.Call, callParameters{
			sender:      i.caller,
			recipient:   i.address,
			codeAddress: i.address,
			value:       i.value,
			input:       i.calldata,
			gas:         gas,
			code:        i.code,
			codeSet:     true,
		})
	}
	if err == nil {
		err = host.err
	}
	if err != nil {
		return callResult{}, err
	}
	switch res.status {
	case nil:
		i.state.removeDestructed()
	case evmc.Revert:
	default:
		// Failed transactions consume all gas, including failures detected
		// before the code was run.
		res.gasLeft = 0
		res.output = nil
	}
	return res, nil
}

// warmUp marks the accounts and slots accessed by every transaction as
// warm.
func (i *instance) warmUp() {
	if i.revision < evmc.Berlin {
		return
	}
	i.state.accessAccount(i.caller)
	if i.address != ([20]byte{}) {
		i.state.accessAccount(i.address)
	}
	if i.revision >= evmc.Shanghai {
		i.state.accessAccount(i.block.Coinbase)
	}
	for address := range precompiledContracts(i.revision) {
		i.state.accessAccount(address)
	}
	for address := range i.settings.precompiles {
		i.state.accessAccount(address)
	}
	for _, address := range i.accessAddresses {
		i.state.accessAccount(address)
	}
	for _, key := range i.accessKeys {
		i.state.accessAccount(key.Address)
		i.state.accessStorage(key.Address, key.Key)
	}
}

func (i *instance) IsSuccess() bool {
	return i.executed && i.result.status == nil
}

func (i *instance) GasRemaining() int64 {
	return i.result.gasLeft
}

func (i *instance) GasUsed() int64 {
	if !i.executed {
		return 0
	}
	return i.gas - i.result.gasLeft
}

// GasRefund reports the refund counter of the transaction without applying
// any cap.
func (i *instance) GasRefund() uint64 {
	if i.result.status != nil || i.result.gasRefund < 0 {
		return 0
	}
	return uint64(i.result.gasRefund)
}

func (i *instance) OutputLen() int {
	return len(i.result.output)
}

func (i *instance) CopyOutput(buf []byte) int {
	return copy(buf, i.result.output)
}

func (i *instance) SetStorage(address [20]byte, key, value [32]byte) bool {
	i.state.getOrCreate(address).storage[key] = value
	return true
}

func (i *instance) GetStorage(address [20]byte, key [32]byte) ([32]byte, bool) {
	return i.state.storage(address, key), true
}

func (i *instance) SetBalance(address [20]byte, balance [32]byte) bool {
	i.state.getOrCreate(address).balance.SetBytes32(balance[:])
	return true
}

func (i *instance) GetBalance(address [20]byte) ([32]byte, bool) {
	return i.state.balance(address).Bytes32(), true
}

func (i *instance) SetNonce(address [20]byte, nonce uint64) bool {
	i.state.setNonce(address, nonce)
	return true
}

func (i *instance) GetNonce(address [20]byte) (uint64, bool) {
	return i.state.nonce(address), true
}

func (i *instance) SetCode(address [20]byte, code []byte) bool {
	i.state.setCode(address, append([]byte(nil), code...))
	return true
}

func (i *instance) CodeLen(address [20]byte) int {
	return len(i.state.code(address))
}

func (i *instance) CopyCode(address [20]byte, buf []byte) int {
	return copy(buf, i.state.code(address))
}

func (i *instance) LogCount() int {
	return len(i.state.logs)
}

func (i *instance) GetLog(index int, entry *native.LogEntry) bool {
	if entry == nil || index < 0 || index >= len(i.state.logs) {
		return false
	}
	log := i.state.logs[index]
	entry.Address = log.address
	entry.TopicCount = len(log.topics)
	copy(entry.Topics[:], log.topics)
	entry.DataLen = len(log.data)
	copy(entry.Data, log.data)
	return true
}

func (i *instance) StorageChangeCount() int {
	return len(i.state.storageChanges())
}

func (i *instance) GetStorageChange(index int) ([20]byte, [32]byte, [32]byte, bool) {
	changes := i.state.storageChanges()
	if index < 0 || index >= len(changes) {
		return [20]byte{}, [32]byte{}, [32]byte{}, false
	}
	change := changes[index]
	return change.address, change.key, i.state.storage(change.address, change.key), true
}
