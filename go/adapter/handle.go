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
	"slices"
	"sync/atomic"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native"
	"golang.org/x/exp/maps"
)

// Handle owns exactly one native engine instance together with the
// callbacks registered for it. Handles are only obtained through WithHandle
// and must not be retained beyond the function passed to it. A Handle is
// not safe for concurrent use.
type Handle struct {
	instance  native.Instance
	callbacks []native.CallbackID
	closed    bool
	poisoned  bool
}

var liveHandles atomic.Int64

// LiveHandles returns the number of native instances currently owned by
// handles in this process.
func LiveHandles() int {
	return int(liveHandles.Load())
}

// WithHandle creates a native instance for the given hardfork, runs fn on
// it, and destroys the instance when fn returns or panics. A nil config
// creates the instance with the engine's defaults; otherwise the instance
// is created from a native configuration object carrying the given settings
// and callbacks.
func WithHandle(lib native.Library, hardfork string, config *EngineConfig, fn func(*Handle) error) error {
	h, err := newHandle(lib, hardfork, config)
	if err != nil {
		return err
	}
	defer h.destroy()
	return fn(h)
}

func newHandle(lib native.Library, hardfork string, config *EngineConfig) (*Handle, error) {
	if config == nil {
		instance := lib.Create(hardfork, native.LogNone)
		if instance == nil {
			return nil, &BoundaryCallError{Op: "evm_create", Detail: fmt.Sprintf("hardfork %s", hardfork)}
		}
		liveHandles.Add(1)
		return &Handle{instance: instance}, nil
	}

	nativeConfig := lib.CreateConfig()
	if nativeConfig == nil {
		return nil, &BoundaryCallError{Op: "evm_config_create"}
	}

	config.apply(nativeConfig, hardfork)
	callbacks, err := registerCallbacks(nativeConfig, config.Callbacks)
	if err != nil {
		nativeConfig.Destroy()
		return nil, err
	}

	// The configuration belongs to the engine from here on, also if the
	// creation fails.
	instance := lib.CreateWithConfig(nativeConfig, config.LogLevel)
	if instance == nil {
		releaseCallbacks(callbacks)
		return nil, &BoundaryCallError{Op: "evm_create_with_config", Detail: fmt.Sprintf("hardfork %s", hardfork)}
	}
	liveHandles.Add(1)
	return &Handle{instance: instance, callbacks: callbacks}, nil
}

// registerCallbacks exposes every closure of the registry to the native
// configuration. Overrides are installed in ascending opcode and address
// order. On failure, all ids registered so far are released again.
func registerCallbacks(config native.Config, registry *Registry) ([]native.CallbackID, error) {
	if registry == nil {
		return nil, nil
	}
	opcodes, precompiles := registry.snapshot()

	var ids []native.CallbackID
	fail := func(op string, detail string) ([]native.CallbackID, error) {
		releaseCallbacks(ids)
		return nil, &BoundaryCallError{Op: op, Detail: detail}
	}

	codes := maps.Keys(opcodes)
	slices.Sort(codes)
	for _, opcode := range codes {
		id := native.RegisterOpcodeHandler(opcodes[opcode])
		ids = append(ids, id)
		if !config.AddOpcodeOverride(opcode, id) {
			return fail("evm_config_add_opcode_override", fmt.Sprintf("opcode 0x%02x", opcode))
		}
	}

	addresses := maps.Keys(precompiles)
	slices.SortFunc(addresses, func(a, b guillotine.Address) int {
		return slices.Compare(a[:], b[:])
	})
	for _, address := range addresses {
		id := native.RegisterPrecompileHandler(precompiles[address].native())
		ids = append(ids, id)
		if !config.AddPrecompileOverride(address, id) {
			return fail("evm_config_add_precompile_override", fmt.Sprintf("address %v", address))
		}
	}
	return ids, nil
}

func releaseCallbacks(ids []native.CallbackID) {
	for _, id := range ids {
		native.ReleaseCallback(id)
	}
}

// destroy releases the native instance and afterwards the callbacks it may
// invoke. Subsequent calls are no-ops.
func (h *Handle) destroy() {
	if h.closed {
		return
	}
	h.closed = true
	h.instance.Destroy()
	h.instance = nil
	releaseCallbacks(h.callbacks)
	h.callbacks = nil
	liveHandles.Add(-1)
}

// Poisoned reports whether a state synchronization on this handle failed.
func (h *Handle) Poisoned() bool {
	return h.poisoned
}

func (h *Handle) usable() error {
	if h.closed {
		return ErrHandleClosed
	}
	return nil
}

func (h *Handle) syncable() error {
	if err := h.usable(); err != nil {
		return err
	}
	if h.poisoned {
		return ErrHandlePoisoned
	}
	return nil
}

func check(op string, ok bool) error {
	if !ok {
		return &BoundaryCallError{Op: op}
	}
	return nil
}

// SetBytecode sets the code to be executed by the transaction.
func (h *Handle) SetBytecode(code guillotine.Code) error {
	if err := h.syncable(); err != nil {
		return err
	}
	return check("evm_set_bytecode", h.instance.SetBytecode(code))
}

// SetExecutionContext sets the transaction level parameters of the
// execution.
func (h *Handle) SetExecutionContext(gas guillotine.Gas, caller, target guillotine.Address, value guillotine.Value, input guillotine.Data) error {
	if err := h.syncable(); err != nil {
		return err
	}
	nativeGas, ok := GasToNative(gas)
	if !ok {
		return &BoundaryCallError{Op: "evm_set_execution_context", Detail: fmt.Sprintf("gas %d not representable", gas)}
	}
	return check("evm_set_execution_context", h.instance.SetExecutionContext(nativeGas, caller, target, value, input))
}

// SetBlockContext sets the block level parameters of the execution.
func (h *Handle) SetBlockContext(block guillotine.BlockParameters) error {
	if err := h.syncable(); err != nil {
		return err
	}
	h.instance.SetBlockchainContext(toNativeBlockContext(block))
	return nil
}

// SetAccessList forwards the accounts and storage slots of the given access
// list. An empty list is not forwarded.
func (h *Handle) SetAccessList(list []guillotine.AccessTuple) error {
	if err := h.syncable(); err != nil {
		return err
	}
	addresses, keys := toNativeAccessList(list)
	if len(addresses) > 0 {
		if err := check("evm_set_access_list_addresses", h.instance.SetAccessListAddresses(addresses)); err != nil {
			return err
		}
	}
	if len(keys) > 0 {
		if err := check("evm_set_access_list_storage_keys", h.instance.SetAccessListStorageKeys(keys)); err != nil {
			return err
		}
	}
	return nil
}

// SetBlobHashes forwards the versioned blob hashes of the transaction. An
// empty list is not forwarded.
func (h *Handle) SetBlobHashes(hashes []guillotine.Hash) error {
	if err := h.syncable(); err != nil {
		return err
	}
	if len(hashes) == 0 {
		return nil
	}
	return check("evm_set_blob_hashes", h.instance.SetBlobHashes(toNativeHashes(hashes)))
}

// Execute runs the configured transaction. A reverted execution is not an
// error; its status is reported by Succeeded.
func (h *Handle) Execute() error {
	if err := h.syncable(); err != nil {
		return err
	}
	return check("evm_execute", h.instance.Execute())
}
