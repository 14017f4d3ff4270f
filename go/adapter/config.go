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
	"sync"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native"
	"golang.org/x/exp/maps"
)

// EngineConfig summarizes the settings of native instances created by an
// adapter. Zero values select the engine's built-in defaults.
type EngineConfig struct {
	LogLevel              native.LogLevel
	StackSize             uint16
	MaxBytecodeSize       uint32
	MaxInitcodeSize       uint32
	BlockGasLimit         uint64
	MemoryInitialCapacity uint64
	MemoryLimit           uint64
	MaxCallDepth          uint16
	LoopQuota             uint32 // 0 disables the quota
	SystemContracts       SystemContracts

	// Callbacks lists custom opcode and precompile handlers. They are
	// registered on every instance created with this configuration.
	Callbacks *Registry `toml:"-"`
}

// SystemContracts enables the processing of system contracts by the engine.
type SystemContracts struct {
	BeaconRoots bool
	BlockHashes bool
	Deposits    bool
	Withdrawals bool
}

// DefaultEngineConfig returns the settings a native engine uses when none
// are given.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		StackSize:             1024,
		MaxBytecodeSize:       24576,
		MaxInitcodeSize:       49152,
		BlockGasLimit:         30_000_000,
		MemoryInitialCapacity: 4096,
		MemoryLimit:           0xFFFFFF,
		MaxCallDepth:          1024,
	}
}

// Validate checks the configuration for inconsistent settings.
func (c *EngineConfig) Validate() error {
	if c.MemoryLimit != 0 && c.MemoryInitialCapacity > c.MemoryLimit {
		return &ConfigurationError{Reason: fmt.Sprintf("initial memory capacity %d exceeds memory limit %d", c.MemoryInitialCapacity, c.MemoryLimit)}
	}
	if c.MaxInitcodeSize != 0 && c.MaxBytecodeSize > c.MaxInitcodeSize {
		return &ConfigurationError{Reason: fmt.Sprintf("max bytecode size %d exceeds max initcode size %d", c.MaxBytecodeSize, c.MaxInitcodeSize)}
	}
	if c.MaxCallDepth > 1024 {
		return &ConfigurationError{Reason: fmt.Sprintf("max call depth %d exceeds 1024", c.MaxCallDepth)}
	}
	if c.LogLevel > native.LogDebug {
		return &ConfigurationError{Reason: fmt.Sprintf("invalid log level %v", c.LogLevel)}
	}
	return nil
}

func (c *EngineConfig) apply(config native.Config, hardfork string) {
	config.SetHardfork(hardfork)
	if c.StackSize != 0 {
		config.SetStackSize(c.StackSize)
	}
	if c.MaxBytecodeSize != 0 {
		config.SetMaxBytecodeSize(c.MaxBytecodeSize)
	}
	if c.MaxInitcodeSize != 0 {
		config.SetMaxInitcodeSize(c.MaxInitcodeSize)
	}
	if c.BlockGasLimit != 0 {
		config.SetBlockGasLimit(c.BlockGasLimit)
	}
	if c.MemoryInitialCapacity != 0 {
		config.SetMemoryInitialCapacity(c.MemoryInitialCapacity)
	}
	if c.MemoryLimit != 0 {
		config.SetMemoryLimit(c.MemoryLimit)
	}
	if c.MaxCallDepth != 0 {
		config.SetMaxCallDepth(c.MaxCallDepth)
	}
	config.SetLoopQuota(c.LoopQuota)
	s := c.SystemContracts
	config.EnableSystemContracts(s.BeaconRoots, s.BlockHashes, s.Deposits, s.Withdrawals)
}

// PrecompileHandler implements a custom precompiled contract. It returns the
// output and the consumed gas, which must not exceed the gas limit. A
// non-nil error makes the precompile call fail.
type PrecompileHandler func(address guillotine.Address, input guillotine.Data, gasLimit guillotine.Gas) (guillotine.Data, guillotine.Gas, error)

func (p PrecompileHandler) native() native.PrecompileHandler {
	return func(address [20]byte, input []byte, gasLimit uint64) (native.PrecompileResult, error) {
		output, gasUsed, err := p(address, input, guillotine.Gas(gasLimit))
		if err != nil {
			return native.PrecompileResult{}, err
		}
		return native.PrecompileResult{Output: output, GasUsed: uint64(gasUsed)}, nil
	}
}

// Registry collects custom opcode and precompile handlers. Handlers are
// shared by all instances created while they are registered and may thus
// be invoked concurrently. Changes only affect instances created afterwards.
type Registry struct {
	mu          sync.Mutex
	opcodes     map[byte]native.OpcodeHandler
	precompiles map[guillotine.Address]PrecompileHandler
}

func NewRegistry() *Registry {
	return &Registry{
		opcodes:     map[byte]native.OpcodeHandler{},
		precompiles: map[guillotine.Address]PrecompileHandler{},
	}
}

// OverrideOpcode registers a handler for the given opcode. The handler
// returning true replaces the engine's default behavior for that
// execution of the opcode; returning false lets the default run.
func (r *Registry) OverrideOpcode(opcode byte, handler native.OpcodeHandler) error {
	if handler == nil {
		return &ConfigurationError{Reason: fmt.Sprintf("nil handler for opcode 0x%02x", opcode)}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opcodes == nil {
		r.opcodes = map[byte]native.OpcodeHandler{}
	}
	if _, found := r.opcodes[opcode]; found {
		return &ConfigurationError{Reason: fmt.Sprintf("opcode 0x%02x already overridden", opcode)}
	}
	r.opcodes[opcode] = handler
	return nil
}

// OverridePrecompile registers a precompiled contract at the given address.
func (r *Registry) OverridePrecompile(address guillotine.Address, handler PrecompileHandler) error {
	if handler == nil {
		return &ConfigurationError{Reason: fmt.Sprintf("nil handler for precompile %v", address)}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.precompiles == nil {
		r.precompiles = map[guillotine.Address]PrecompileHandler{}
	}
	if _, found := r.precompiles[address]; found {
		return &ConfigurationError{Reason: fmt.Sprintf("precompile %v already overridden", address)}
	}
	r.precompiles[address] = handler
	return nil
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.opcodes) + len(r.precompiles)
}

func (r *Registry) snapshot() (map[byte]native.OpcodeHandler, map[guillotine.Address]PrecompileHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.opcodes), maps.Clone(r.precompiles)
}
