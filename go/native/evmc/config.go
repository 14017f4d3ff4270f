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
	"golang.org/x/exp/maps"
)

const (
	defaultMaxCodeSize     = 24576
	defaultMaxInitcodeSize = 2 * defaultMaxCodeSize
	defaultMaxCallDepth    = 1024
	defaultStackSize       = 1024
	defaultMemoryCapacity  = 4096
	defaultMemoryLimit     = 0xFFFFFF
)

// settings are the parameters of an instance that are enforced by the Go
// side of the engine.
type settings struct {
	hardfork        string
	maxCodeSize     int
	maxInitcodeSize int
	maxCallDepth    int
	blockGasLimit   uint64 // used if the block context has no gas limit
	precompiles     map[[20]byte]native.CallbackID
}

func newSettings(hardfork string) settings {
	return settings{
		hardfork:        hardfork,
		maxCodeSize:     defaultMaxCodeSize,
		maxInitcodeSize: defaultMaxInitcodeSize,
		maxCallDepth:    defaultMaxCallDepth,
	}
}

func (s settings) clone() settings {
	s.precompiles = maps.Clone(s.precompiles)
	return s
}

// config is the native.Config of a Library. Settings the engine cannot
// enforce are collected by name and reported on instance creation.
type config struct {
	settings    settings
	unsupported []string
	destroyed   bool
}

var _ native.Config = (*config)(nil)

func (c *config) Destroy() {
	c.destroyed = true
}

func (c *config) SetHardfork(name string) {
	c.settings.hardfork = name
}

func (c *config) SetStackSize(size uint16) {
	if size != defaultStackSize {
		c.unsupported = append(c.unsupported, "stack_size")
	}
}

func (c *config) SetMaxBytecodeSize(size uint32) {
	c.settings.maxCodeSize = int(size)
}

func (c *config) SetMaxInitcodeSize(size uint32) {
	c.settings.maxInitcodeSize = int(size)
}

func (c *config) SetBlockGasLimit(limit uint64) {
	c.settings.blockGasLimit = limit
}

func (c *config) SetMemoryInitialCapacity(capacity uint64) {
	if capacity != defaultMemoryCapacity {
		c.unsupported = append(c.unsupported, "memory_initial_capacity")
	}
}

func (c *config) SetMemoryLimit(limit uint64) {
	if limit != defaultMemoryLimit {
		c.unsupported = append(c.unsupported, "memory_limit")
	}
}

func (c *config) SetMaxCallDepth(depth uint16) {
	c.settings.maxCallDepth = int(depth)
}

func (c *config) SetLoopQuota(quota uint32) {
	if quota != 0 {
		c.unsupported = append(c.unsupported, "loop_quota")
	}
}

func (c *config) EnableSystemContracts(beaconRoots, blockHashes, deposits, withdrawals bool) {
	if beaconRoots || blockHashes || deposits || withdrawals {
		c.unsupported = append(c.unsupported, "system_contracts")
	}
}

// AddOpcodeOverride always fails since opcodes are dispatched inside the
// VM.
func (c *config) AddOpcodeOverride(opcode byte, id native.CallbackID) bool {
	return false
}

func (c *config) AddPrecompileOverride(address [20]byte, id native.CallbackID) bool {
	if c.settings.precompiles == nil {
		c.settings.precompiles = map[[20]byte]native.CallbackID{}
	}
	c.settings.precompiles[address] = id
	return true
}
