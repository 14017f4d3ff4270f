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
	res.code = append([]byte(nil), a.code...)
	res.storage = maps.Clone(a.storage)
	return &res
}

type logRecord struct {
	address [20]byte
	topics  [][32]byte
	data    []byte
}

type instance struct {
	lib       *Library
	settings  Settings
	destroyed bool

	accounts map[[20]byte]*account

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
	result   Result
	logs     []logRecord
	written  []native.AccessKey
}

var _ native.Instance = (*instance)(nil)

func newInstance(lib *Library, settings Settings) *instance {
	return &instance{
		lib:      lib,
		settings: settings,
		accounts: map[[20]byte]*account{},
	}
}

func (i *instance) alive() {
	if i.destroyed {
		panic("use of destroyed native instance")
	}
}

func (i *instance) ok(op string) bool {
	i.alive()
	return !i.lib.fails(op)
}

func (i *instance) account(address [20]byte) *account {
	acc, found := i.accounts[address]
	if !found {
		acc = &account{storage: map[[32]byte][32]byte{}}
		i.accounts[address] = acc
	}
	return acc
}

func (i *instance) Destroy() {
	i.alive()
	i.destroyed = true
	i.lib.released()
}

func (i *instance) SetBytecode(code []byte) bool {
	if !i.ok("evm_set_bytecode") {
		return false
	}
	i.code = append([]byte(nil), code...)
	return true
}

func (i *instance) SetExecutionContext(gas int64, caller, address [20]byte, value [32]byte, calldata []byte) bool {
	if !i.ok("evm_set_execution_context") {
		return false
	}
	i.gas, i.caller, i.address, i.value = gas, caller, address, value
	i.calldata = append([]byte(nil), calldata...)
	return true
}

func (i *instance) SetBlockchainContext(block native.BlockContext) {
	i.alive()
	i.block = block
}

func (i *instance) SetAccessListAddresses(addresses [][20]byte) bool {
	if !i.ok("evm_set_access_list_addresses") {
		return false
	}
	i.accessAddresses = append([][20]byte(nil), addresses...)
	return true
}

func (i *instance) SetAccessListStorageKeys(keys []native.AccessKey) bool {
	if !i.ok("evm_set_access_list_storage_keys") {
		return false
	}
	i.accessKeys = append([]native.AccessKey(nil), keys...)
	return true
}

func (i *instance) SetBlobHashes(hashes [][32]byte) bool {
	if !i.ok("evm_set_blob_hashes") {
		return false
	}
	i.blobHashes = append([][32]byte(nil), hashes...)
	return true
}

func (i *instance) Execute() bool {
	if !i.ok("evm_execute") || i.executed {
		return false
	}
	i.executed = true

	snapshot := make(map[[20]byte]*account, len(i.accounts))
	for address, acc := range i.accounts {
		snapshot[address] = acc.clone()
	}

	script := i.lib.Script
	if script == nil {
		script = Transfer
	}
	execution := &Execution{instance: i}
	i.result = script(execution)
	if i.result.GasUsed > i.gas && !i.lib.Faults.ExcessGasUsed {
		i.result.GasUsed = i.gas
	}
	if i.lib.Faults.ExcessGasUsed {
		i.result.GasUsed = i.gas + 1
	}
	if i.result.Reverted {
		i.accounts = snapshot
		i.logs = nil
		i.written = nil
		i.result.Refund = 0
	}
	return true
}

func (i *instance) IsSuccess() bool {
	i.alive()
	return i.executed && !i.result.Reverted
}

func (i *instance) GasRemaining() int64 {
	i.alive()
	return i.gas - i.result.GasUsed
}

func (i *instance) GasUsed() int64 {
	i.alive()
	return i.result.GasUsed
}

func (i *instance) GasRefund() uint64 {
	i.alive()
	return i.result.Refund
}

func (i *instance) OutputLen() int {
	i.alive()
	return len(i.result.Output)
}

func (i *instance) CopyOutput(buf []byte) int {
	i.alive()
	n := copy(buf, i.result.Output)
	if i.lib.Faults.ShortOutputCopy && n > 0 {
		n--
	}
	return n
}

func (i *instance) SetStorage(address [20]byte, key, value [32]byte) bool {
	if !i.ok("evm_set_storage") {
		return false
	}
	i.account(address).storage[key] = value
	return true
}

func (i *instance) GetStorage(address [20]byte, key [32]byte) ([32]byte, bool) {
	if !i.ok("evm_get_storage") {
		return [32]byte{}, false
	}
	return i.account(address).storage[key], true
}

func (i *instance) SetBalance(address [20]byte, balance [32]byte) bool {
	if !i.ok("evm_set_balance") {
		return false
	}
	i.account(address).balance.SetBytes32(balance[:])
	return true
}

func (i *instance) GetBalance(address [20]byte) ([32]byte, bool) {
	if !i.ok("evm_get_balance") {
		return [32]byte{}, false
	}
	return i.account(address).balance.Bytes32(), true
}

func (i *instance) SetNonce(address [20]byte, nonce uint64) bool {
	if !i.ok("evm_set_nonce") {
		return false
	}
	i.account(address).nonce = nonce
	return true
}

func (i *instance) GetNonce(address [20]byte) (uint64, bool) {
	if !i.ok("evm_get_nonce") {
		return 0, false
	}
	return i.account(address).nonce, true
}

func (i *instance) SetCode(address [20]byte, code []byte) bool {
	if !i.ok("evm_set_code") {
		return false
	}
	i.account(address).code = append([]byte(nil), code...)
	return true
}

func (i *instance) CodeLen(address [20]byte) int {
	i.alive()
	return len(i.account(address).code)
}

func (i *instance) CopyCode(address [20]byte, buf []byte) int {
	i.alive()
	n := copy(buf, i.account(address).code)
	if i.lib.Faults.ShortCodeCopy && n > 0 {
		n--
	}
	return n
}

func (i *instance) LogCount() int {
	i.alive()
	return len(i.logs)
}

func (i *instance) GetLog(index int, entry *native.LogEntry) bool {
	if !i.ok("evm_get_log") || index < 0 || index >= len(i.logs) || entry == nil {
		return false
	}
	log := i.logs[index]
	entry.Address = log.address
	entry.TopicCount = len(log.topics)
	copy(entry.Topics[:], log.topics)
	if i.lib.Faults.TooManyTopics {
		entry.TopicCount = native.MaxLogTopics + 1
	}
	entry.DataLen = len(log.data)
	copy(entry.Data, log.data)
	if i.lib.Faults.ChangingLogData && len(entry.Data) > 0 {
		entry.DataLen++
	}
	return true
}

func (i *instance) StorageChangeCount() int {
	i.alive()
	return len(i.storageChanges())
}

func (i *instance) GetStorageChange(index int) ([20]byte, [32]byte, [32]byte, bool) {
	if !i.ok("evm_get_storage_change") {
		return [20]byte{}, [32]byte{}, [32]byte{}, false
	}
	changes := i.storageChanges()
	if index < 0 || index >= len(changes) {
		return [20]byte{}, [32]byte{}, [32]byte{}, false
	}
	change := changes[index]
	return change.Address, change.Key, i.accounts[change.Address].storage[change.Key], true
}

// storageChanges lists the slots written by the execution in the order of
// their first write.
func (i *instance) storageChanges() []native.AccessKey {
	if i.lib.Faults.ReportZeroStorage {
		return i.written
	}
	res := make([]native.AccessKey, 0, len(i.written))
	for _, slot := range i.written {
		if i.accounts[slot.Address].storage[slot.Key] != ([32]byte{}) {
			res = append(res, slot)
		}
	}
	return res
}
