// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

//go:build guillotine

package mini

/*
#cgo CFLAGS: -Wall -Wextra
#cgo LDFLAGS: -L${SRCDIR}/../../../lib/guillotine-mini/zig-out/lib -lguillotine_mini
#cgo LDFLAGS: -Wl,-rpath,${SRCDIR}/../../../lib/guillotine-mini/zig-out/lib

#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef struct EvmHandle EvmHandle;
typedef struct EvmConfigHandle EvmConfigHandle;

EvmHandle* evm_create(const uint8_t* hardfork_name, size_t hardfork_len, uint8_t log_level);
void evm_destroy(EvmHandle* handle);
bool evm_set_bytecode(EvmHandle* handle, const uint8_t* bytecode, size_t bytecode_len);
bool evm_set_execution_context(EvmHandle* handle, int64_t gas, const uint8_t* caller, const uint8_t* address, const uint8_t* value, const uint8_t* calldata, size_t calldata_len);
void evm_set_blockchain_context(EvmHandle* handle, const uint8_t* chain_id, uint64_t number, uint64_t timestamp, const uint8_t* difficulty, const uint8_t* prevrandao, const uint8_t* coinbase, uint64_t gas_limit, const uint8_t* base_fee, const uint8_t* blob_base_fee);
bool evm_set_access_list_addresses(EvmHandle* handle, const uint8_t* addresses, size_t count);
bool evm_set_access_list_storage_keys(EvmHandle* handle, const uint8_t* keys, size_t count);
bool evm_set_blob_hashes(EvmHandle* handle, const uint8_t* hashes, size_t count);
bool evm_execute(EvmHandle* handle);
int64_t evm_get_gas_remaining(EvmHandle* handle);
int64_t evm_get_gas_used(EvmHandle* handle);
bool evm_is_success(EvmHandle* handle);
size_t evm_get_output_len(EvmHandle* handle);
size_t evm_get_output(EvmHandle* handle, uint8_t* buffer, size_t buffer_len);
bool evm_set_storage(EvmHandle* handle, const uint8_t* address, const uint8_t* key, const uint8_t* value);
bool evm_get_storage(EvmHandle* handle, const uint8_t* address, const uint8_t* key, uint8_t* value_out);
bool evm_set_balance(EvmHandle* handle, const uint8_t* address, const uint8_t* balance);
bool evm_set_code(EvmHandle* handle, const uint8_t* address, const uint8_t* code, size_t code_len);
bool evm_set_nonce(EvmHandle* handle, const uint8_t* address, uint64_t nonce);
size_t evm_get_log_count(EvmHandle* handle);
bool evm_get_log(EvmHandle* handle, size_t index, uint8_t* address_out, size_t* topics_count_out, uint8_t* topics_out, size_t* data_len_out, uint8_t* data_out, size_t data_max_len);
uint64_t evm_get_gas_refund(EvmHandle* handle);
size_t evm_get_storage_change_count(EvmHandle* handle);
bool evm_get_storage_change(EvmHandle* handle, size_t index, uint8_t* address_out, uint8_t* slot_out, uint8_t* value_out);

EvmConfigHandle* evm_config_create(void);
void evm_config_destroy(EvmConfigHandle* config);
void evm_config_set_hardfork(EvmConfigHandle* config, const uint8_t* name, size_t name_len);
void evm_config_set_stack_size(EvmConfigHandle* config, uint16_t size);
void evm_config_set_max_bytecode_size(EvmConfigHandle* config, uint32_t size);
void evm_config_set_max_initcode_size(EvmConfigHandle* config, uint32_t size);
void evm_config_set_block_gas_limit(EvmConfigHandle* config, uint64_t limit);
void evm_config_set_memory_initial_capacity(EvmConfigHandle* config, size_t capacity);
void evm_config_set_memory_limit(EvmConfigHandle* config, uint64_t limit);
void evm_config_set_max_call_depth(EvmConfigHandle* config, uint16_t depth);
void evm_config_set_loop_quota(EvmConfigHandle* config, uint32_t quota);
void evm_config_enable_system_contracts(EvmConfigHandle* config, bool beacon_roots, bool block_hashes, bool deposits, bool withdrawals);

typedef bool (*evm_opcode_handler)(void* ctx, size_t frame, uint8_t opcode);
typedef bool (*evm_precompile_handler)(void* ctx, const uint8_t* address, const uint8_t* input, size_t input_len, uint64_t gas_limit, uint8_t** output, size_t* output_len, uint64_t* gas_used);

bool evm_config_add_opcode_override(EvmConfigHandle* config, uint8_t opcode, evm_opcode_handler handler, void* ctx);
bool evm_config_add_precompile_override(EvmConfigHandle* config, const uint8_t* address, evm_precompile_handler handler, void* ctx);

// Entry points missing in older library builds resolve to NULL.
EvmHandle* evm_create_with_config(EvmConfigHandle* config, uint8_t log_level) __attribute__((weak));
bool evm_get_balance(EvmHandle* handle, const uint8_t* address, uint8_t* balance_out) __attribute__((weak));
bool evm_get_nonce(EvmHandle* handle, const uint8_t* address, uint64_t* nonce_out) __attribute__((weak));
size_t evm_get_code_len(EvmHandle* handle, const uint8_t* address) __attribute__((weak));
size_t evm_get_code(EvmHandle* handle, const uint8_t* address, uint8_t* buffer, size_t buffer_len) __attribute__((weak));

// create_with_config hands the configuration over to the engine. Without
// the entry point the configuration is released here.
static EvmHandle* create_with_config(EvmConfigHandle* config, uint8_t log_level) {
	if (evm_create_with_config == NULL) {
		evm_config_destroy(config);
		return NULL;
	}
	return evm_create_with_config(config, log_level);
}

static bool get_balance(EvmHandle* handle, const uint8_t* address, uint8_t* balance_out) {
	if (evm_get_balance == NULL) return false;
	return evm_get_balance(handle, address, balance_out);
}

static bool get_nonce(EvmHandle* handle, const uint8_t* address, uint64_t* nonce_out) {
	if (evm_get_nonce == NULL) return false;
	return evm_get_nonce(handle, address, nonce_out);
}

static size_t get_code_len(EvmHandle* handle, const uint8_t* address) {
	if (evm_get_code_len == NULL) return 0;
	return evm_get_code_len(handle, address);
}

static size_t get_code(EvmHandle* handle, const uint8_t* address, uint8_t* buffer, size_t buffer_len) {
	if (evm_get_code == NULL) return 0;
	return evm_get_code(handle, address, buffer, buffer_len);
}

// Implemented in trampolines.go.
bool guillotineOpcodeTrampoline(uintptr_t id, size_t frame, uint8_t opcode);
bool guillotinePrecompileTrampoline(uintptr_t id, uint8_t* address, uint8_t* input, size_t input_len, uint64_t gas_limit, uint8_t** output, size_t* output_len, uint64_t* gas_used);

static bool opcode_gateway(void* ctx, size_t frame, uint8_t opcode) {
	return guillotineOpcodeTrampoline((uintptr_t)ctx, frame, opcode);
}

static bool precompile_gateway(void* ctx, const uint8_t* address, const uint8_t* input, size_t input_len, uint64_t gas_limit, uint8_t** output, size_t* output_len, uint64_t* gas_used) {
	return guillotinePrecompileTrampoline((uintptr_t)ctx, (uint8_t*)address, (uint8_t*)input, input_len, gas_limit, output, output_len, gas_used);
}

// The callback id is handed to the library in place of a context pointer.
static bool add_opcode_override(EvmConfigHandle* config, uint8_t opcode, uintptr_t id) {
	return evm_config_add_opcode_override(config, opcode, opcode_gateway, (void*)id);
}

static bool add_precompile_override(EvmConfigHandle* config, const uint8_t* address, uintptr_t id) {
	return evm_config_add_precompile_override(config, address, precompile_gateway, (void*)id);
}
*/
import "C"

import (
	"unsafe"

	"github.com/Fantom-foundation/Guillotine/go/native"
)

// Available reports whether this build is linked against libguillotine_mini.
const Available = true

// Open returns the guillotine-mini library linked into this binary.
func Open() (native.Library, error) {
	return library{}, nil
}

type library struct{}

func (library) Create(hardfork string, level native.LogLevel) native.Instance {
	name := []byte(hardfork)
	h := C.evm_create(ptr(name), C.size_t(len(name)), C.uint8_t(level))
	if h == nil {
		return nil
	}
	return &instance{h: h}
}

func (library) CreateConfig() native.Config {
	c := C.evm_config_create()
	if c == nil {
		return nil
	}
	return &config{c: c}
}

func (library) CreateWithConfig(cfg native.Config, level native.LogLevel) native.Instance {
	c, ok := cfg.(*config)
	if !ok || c.c == nil {
		return nil
	}
	// evm_create_with_config consumes the configuration, also on failure.
	h := C.create_with_config(c.c, C.uint8_t(level))
	c.c = nil
	if h == nil {
		return nil
	}
	return &instance{h: h}
}

// ptr returns a pointer to the first byte of the given slice, or nil if
// the slice is empty. The memory is only borrowed for the duration of the
// call it is passed to.
func ptr(data []byte) *C.uint8_t {
	if len(data) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&data[0]))
}

func word(w *[32]byte) *C.uint8_t {
	return (*C.uint8_t)(unsafe.Pointer(&w[0]))
}

func address(a *[20]byte) *C.uint8_t {
	return (*C.uint8_t)(unsafe.Pointer(&a[0]))
}

type instance struct {
	h *C.EvmHandle
}

func (i *instance) Destroy() {
	C.evm_destroy(i.h)
	i.h = nil
}

func (i *instance) SetBytecode(code []byte) bool {
	return bool(C.evm_set_bytecode(i.h, ptr(code), C.size_t(len(code))))
}

func (i *instance) SetExecutionContext(gas int64, caller, addr [20]byte, value [32]byte, calldata []byte) bool {
	return bool(C.evm_set_execution_context(i.h, C.int64_t(gas),
		address(&caller), address(&addr), word(&value),
		ptr(calldata), C.size_t(len(calldata))))
}

func (i *instance) SetBlockchainContext(b native.BlockContext) {
	C.evm_set_blockchain_context(i.h,
		word(&b.ChainID),
		C.uint64_t(b.Number),
		C.uint64_t(b.Timestamp),
		word(&b.Difficulty),
		word(&b.PrevRandao),
		address(&b.Coinbase),
		C.uint64_t(b.GasLimit),
		word(&b.BaseFee),
		word(&b.BlobBaseFee),
	)
}

func (i *instance) SetAccessListAddresses(addresses [][20]byte) bool {
	if len(addresses) == 0 {
		return true
	}
	return bool(C.evm_set_access_list_addresses(i.h, address(&addresses[0]), C.size_t(len(addresses))))
}

// accessKeySize is the size of an (address, key) pair in the native
// encoding of access list storage keys.
const accessKeySize = 20 + 32

func (i *instance) SetAccessListStorageKeys(keys []native.AccessKey) bool {
	if len(keys) == 0 {
		return true
	}
	buffer := make([]byte, 0, len(keys)*accessKeySize)
	for _, key := range keys {
		buffer = append(buffer, key.Address[:]...)
		buffer = append(buffer, key.Key[:]...)
	}
	return bool(C.evm_set_access_list_storage_keys(i.h, ptr(buffer), C.size_t(len(keys))))
}

func (i *instance) SetBlobHashes(hashes [][32]byte) bool {
	if len(hashes) == 0 {
		return true
	}
	return bool(C.evm_set_blob_hashes(i.h, word(&hashes[0]), C.size_t(len(hashes))))
}

func (i *instance) Execute() bool {
	return bool(C.evm_execute(i.h))
}

func (i *instance) IsSuccess() bool {
	return bool(C.evm_is_success(i.h))
}

func (i *instance) GasRemaining() int64 {
	return int64(C.evm_get_gas_remaining(i.h))
}

func (i *instance) GasUsed() int64 {
	return int64(C.evm_get_gas_used(i.h))
}

func (i *instance) GasRefund() uint64 {
	return uint64(C.evm_get_gas_refund(i.h))
}

func (i *instance) OutputLen() int {
	return int(C.evm_get_output_len(i.h))
}

func (i *instance) CopyOutput(buffer []byte) int {
	return int(C.evm_get_output(i.h, ptr(buffer), C.size_t(len(buffer))))
}

func (i *instance) SetStorage(addr [20]byte, key, value [32]byte) bool {
	return bool(C.evm_set_storage(i.h, address(&addr), word(&key), word(&value)))
}

func (i *instance) GetStorage(addr [20]byte, key [32]byte) ([32]byte, bool) {
	var value [32]byte
	ok := C.evm_get_storage(i.h, address(&addr), word(&key), word(&value))
	return value, bool(ok)
}

func (i *instance) SetBalance(addr [20]byte, balance [32]byte) bool {
	return bool(C.evm_set_balance(i.h, address(&addr), word(&balance)))
}

func (i *instance) GetBalance(addr [20]byte) ([32]byte, bool) {
	var balance [32]byte
	ok := C.get_balance(i.h, address(&addr), word(&balance))
	return balance, bool(ok)
}

func (i *instance) SetNonce(addr [20]byte, nonce uint64) bool {
	return bool(C.evm_set_nonce(i.h, address(&addr), C.uint64_t(nonce)))
}

func (i *instance) GetNonce(addr [20]byte) (uint64, bool) {
	var nonce C.uint64_t
	ok := C.get_nonce(i.h, address(&addr), &nonce)
	return uint64(nonce), bool(ok)
}

func (i *instance) SetCode(addr [20]byte, code []byte) bool {
	return bool(C.evm_set_code(i.h, address(&addr), ptr(code), C.size_t(len(code))))
}

func (i *instance) CodeLen(addr [20]byte) int {
	return int(C.get_code_len(i.h, address(&addr)))
}

func (i *instance) CopyCode(addr [20]byte, buffer []byte) int {
	return int(C.get_code(i.h, address(&addr), ptr(buffer), C.size_t(len(buffer))))
}

func (i *instance) LogCount() int {
	return int(C.evm_get_log_count(i.h))
}

func (i *instance) GetLog(index int, entry *native.LogEntry) bool {
	if entry == nil || index < 0 {
		return false
	}
	var (
		addr       [20]byte
		topics     [native.MaxLogTopics * 32]byte
		topicCount C.size_t
		dataLen    C.size_t
	)
	ok := C.evm_get_log(i.h, C.size_t(index),
		address(&addr), &topicCount, (*C.uint8_t)(unsafe.Pointer(&topics[0])),
		&dataLen, ptr(entry.Data), C.size_t(len(entry.Data)))
	if !bool(ok) {
		return false
	}
	entry.Address = addr
	entry.TopicCount = int(topicCount)
	for t := range entry.Topics {
		copy(entry.Topics[t][:], topics[t*32:])
	}
	entry.DataLen = int(dataLen)
	return true
}

func (i *instance) StorageChangeCount() int {
	return int(C.evm_get_storage_change_count(i.h))
}

func (i *instance) GetStorageChange(index int) ([20]byte, [32]byte, [32]byte, bool) {
	var (
		addr  [20]byte
		key   [32]byte
		value [32]byte
	)
	if index < 0 {
		return addr, key, value, false
	}
	ok := C.evm_get_storage_change(i.h, C.size_t(index), address(&addr), word(&key), word(&value))
	return addr, key, value, bool(ok)
}

type config struct {
	c *C.EvmConfigHandle
}

// Destroy is a no-op for configurations consumed by CreateWithConfig.
func (c *config) Destroy() {
	if c.c == nil {
		return
	}
	C.evm_config_destroy(c.c)
	c.c = nil
}

func (c *config) SetHardfork(name string) {
	data := []byte(name)
	C.evm_config_set_hardfork(c.c, ptr(data), C.size_t(len(data)))
}

func (c *config) SetStackSize(size uint16) {
	C.evm_config_set_stack_size(c.c, C.uint16_t(size))
}

func (c *config) SetMaxBytecodeSize(size uint32) {
	C.evm_config_set_max_bytecode_size(c.c, C.uint32_t(size))
}

func (c *config) SetMaxInitcodeSize(size uint32) {
	C.evm_config_set_max_initcode_size(c.c, C.uint32_t(size))
}

func (c *config) SetBlockGasLimit(limit uint64) {
	C.evm_config_set_block_gas_limit(c.c, C.uint64_t(limit))
}

func (c *config) SetMemoryInitialCapacity(capacity uint64) {
	C.evm_config_set_memory_initial_capacity(c.c, C.size_t(capacity))
}

func (c *config) SetMemoryLimit(limit uint64) {
	C.evm_config_set_memory_limit(c.c, C.uint64_t(limit))
}

func (c *config) SetMaxCallDepth(depth uint16) {
	C.evm_config_set_max_call_depth(c.c, C.uint16_t(depth))
}

func (c *config) SetLoopQuota(quota uint32) {
	C.evm_config_set_loop_quota(c.c, C.uint32_t(quota))
}

func (c *config) EnableSystemContracts(beaconRoots, blockHashes, deposits, withdrawals bool) {
	C.evm_config_enable_system_contracts(c.c, C.bool(beaconRoots), C.bool(blockHashes), C.bool(deposits), C.bool(withdrawals))
}

func (c *config) AddOpcodeOverride(opcode byte, id native.CallbackID) bool {
	return bool(C.add_opcode_override(c.c, C.uint8_t(opcode), C.uintptr_t(id)))
}

func (c *config) AddPrecompileOverride(addr [20]byte, id native.CallbackID) bool {
	return bool(C.add_precompile_override(c.c, address(&addr), C.uintptr_t(id)))
}
