// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package nativetest provides an in-memory native engine for tests. The
// engine keeps its state in Go and runs a Script instead of bytecode. It
// supports fault injection for every boundary call and checks that the
// lifecycle rules of the native ABI are followed.
package nativetest

import (
	"sync"

	"github.com/Fantom-foundation/Guillotine/go/native"
	"golang.org/x/exp/maps"
)

// Faults lists the misbehavior to be injected by a Library.
type Faults struct {
	// RefuseCreate makes instance creation return nil.
	RefuseCreate bool
	// RefuseConfig makes configuration creation return nil.
	RefuseConfig bool
	// Fail lists the names of native calls reporting failure, for instance
	// "evm_set_nonce" or "evm_get_log".
	Fail map[string]bool
	// ShortOutputCopy makes output copies transfer one byte less than
	// announced.
	ShortOutputCopy bool
	// ShortCodeCopy makes code copies transfer one byte less than announced.
	ShortCodeCopy bool
	// ChangingLogData makes the second log query report a different data
	// length than the first.
	ChangingLogData bool
	// TooManyTopics makes log queries report five topics.
	TooManyTopics bool
	// ReportZeroStorage includes slots ending at zero in storage changes.
	ReportZeroStorage bool
	// ExcessGasUsed makes the engine report one unit of gas more than the
	// transaction's limit.
	ExcessGasUsed bool
}

// Library is a native.Library running scripted executions. The zero value
// runs value transfers.
type Library struct {
	Script Script
	Faults Faults

	mu          sync.Mutex
	created     int
	live        int
	liveConfigs int
	settings    []Settings
}

var _ native.Library = (*Library)(nil)

func (l *Library) Create(hardfork string, level native.LogLevel) native.Instance {
	return l.create(Settings{Hardfork: hardfork}, level, false)
}

func (l *Library) CreateConfig() native.Config {
	if l.Faults.RefuseConfig {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.liveConfigs++
	return &Config{lib: l}
}

func (l *Library) CreateWithConfig(config native.Config, level native.LogLevel) native.Instance {
	c, ok := config.(*Config)
	if !ok || c.destroyed || c.consumed {
		return nil
	}
	// The configuration is consumed, also if creation fails.
	c.consumed = true
	l.mu.Lock()
	l.liveConfigs--
	l.mu.Unlock()
	return l.create(c.settings.clone(), level, true)
}

func (l *Library) create(settings Settings, level native.LogLevel, configured bool) native.Instance {
	if l.Faults.RefuseCreate {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.created++
	l.live++
	settings.LogLevel = level
	settings.Configured = configured
	l.settings = append(l.settings, settings)
	return newInstance(l, settings)
}

func (l *Library) released() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live--
}

// Created returns the number of instances created so far.
func (l *Library) Created() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.created
}

// Live returns the number of instances not yet destroyed.
func (l *Library) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

// LiveConfigs returns the number of configuration objects neither destroyed
// nor consumed by CreateWithConfig.
func (l *Library) LiveConfigs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.liveConfigs
}

// Settings returns the settings of all instances created so far.
func (l *Library) Settings() []Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]Settings, len(l.settings))
	for i, s := range l.settings {
		res[i] = s.clone()
	}
	return res
}

func (l *Library) fails(op string) bool {
	return l.Faults.Fail[op]
}

// Settings are the creation parameters of an instance.
type Settings struct {
	Hardfork              string
	LogLevel              native.LogLevel
	Configured            bool
	StackSize             uint16
	MaxBytecodeSize       uint32
	MaxInitcodeSize       uint32
	BlockGasLimit         uint64
	MemoryInitialCapacity uint64
	MemoryLimit           uint64
	MaxCallDepth          uint16
	LoopQuota             uint32
	BeaconRoots           bool
	BlockHashes           bool
	Deposits              bool
	Withdrawals           bool
	Opcodes               map[byte]native.CallbackID
	Precompiles           map[[20]byte]native.CallbackID
}

func (s Settings) clone() Settings {
	s.Opcodes = maps.Clone(s.Opcodes)
	s.Precompiles = maps.Clone(s.Precompiles)
	return s
}

// Config is the configuration object of a Library.
type Config struct {
	lib       *Library
	settings  Settings
	destroyed bool
	consumed  bool
}

var _ native.Config = (*Config)(nil)

func (c *Config) Destroy() {
	if c.consumed {
		panic("configuration destroyed after being consumed by an instance")
	}
	if c.destroyed {
		panic("configuration destroyed twice")
	}
	c.destroyed = true
	c.lib.mu.Lock()
	defer c.lib.mu.Unlock()
	c.lib.liveConfigs--
}

func (c *Config) SetHardfork(name string) {
	c.settings.Hardfork = name
}

func (c *Config) SetStackSize(size uint16) {
	c.settings.StackSize = size
}

func (c *Config) SetMaxBytecodeSize(size uint32) {
	c.settings.MaxBytecodeSize = size
}

func (c *Config) SetMaxInitcodeSize(size uint32) {
	c.settings.MaxInitcodeSize = size
}

func (c *Config) SetBlockGasLimit(limit uint64) {
	c.settings.BlockGasLimit = limit
}

func (c *Config) SetMemoryInitialCapacity(capacity uint64) {
	c.settings.MemoryInitialCapacity = capacity
}

func (c *Config) SetMemoryLimit(limit uint64) {
	c.settings.MemoryLimit = limit
}

func (c *Config) SetMaxCallDepth(depth uint16) {
	c.settings.MaxCallDepth = depth
}

func (c *Config) SetLoopQuota(quota uint32) {
	c.settings.LoopQuota = quota
}

func (c *Config) EnableSystemContracts(beaconRoots, blockHashes, deposits, withdrawals bool) {
	c.settings.BeaconRoots = beaconRoots
	c.settings.BlockHashes = blockHashes
	c.settings.Deposits = deposits
	c.settings.Withdrawals = withdrawals
}

func (c *Config) AddOpcodeOverride(opcode byte, id native.CallbackID) bool {
	if c.lib.fails("evm_config_add_opcode_override") {
		return false
	}
	if c.settings.Opcodes == nil {
		c.settings.Opcodes = map[byte]native.CallbackID{}
	}
	c.settings.Opcodes[opcode] = id
	return true
}

func (c *Config) AddPrecompileOverride(address [20]byte, id native.CallbackID) bool {
	if c.lib.fails("evm_config_add_precompile_override") {
		return false
	}
	if c.settings.Precompiles == nil {
		c.settings.Precompiles = map[[20]byte]native.CallbackID{}
	}
	c.settings.Precompiles[address] = id
	return true
}
