// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package evmc runs transactions on an EVM implementation loaded through
// the EVMC C ABI, for instance evmone. The package presents such a VM as a
// native.Library: account state, value transfers, nested calls, contract
// creation and precompiled contracts are handled in Go while the VM only
// interprets bytecode.
//
// EVMC VMs interpret bytecode only, so engine settings affecting the
// interpreter itself (stack size, memory limits, loop quotas, opcode
// overrides, system contracts) cannot be honored. Such settings are
// reported as warnings when an instance is created; opcode overrides are
// rejected.
package evmc

import (
	"strings"
	"sync"

	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/ethereum/evmc/v11/bindings/go/evmc"
	"go.uber.org/zap"
)

//go:generate mockgen -source evmc.go -destination evmc_mock.go -package evmc

// VM is the bytecode interpreter used by a Library. It is implemented by
// *evmc.VM.
type VM interface {
	Execute(ctx evmc.HostContext, rev evmc.Revision, kind evmc.CallKind, static bool, depth int, gas int64, recipient evmc.Address, sender evmc.Address, input []byte, value evmc.Hash, code []byte) (evmc.Result, error)
}

// NewestSupportedRevision is the newest hardfork instances can be created
// for.
const NewestSupportedRevision = evmc.Cancun

// revisions maps lower-case hardfork names to EVMC revisions. Petersburg
// replaced Constantinople before it was activated on mainnet.
var revisions = map[string]evmc.Revision{
	"frontier":       evmc.Frontier,
	"homestead":      evmc.Homestead,
	"tangerine":      evmc.TangerineWhistle,
	"spurious":       evmc.SpuriousDragon,
	"byzantium":      evmc.Byzantium,
	"constantinople": evmc.Petersburg,
	"petersburg":     evmc.Petersburg,
	"istanbul":       evmc.Istanbul,
	"berlin":         evmc.Berlin,
	"london":         evmc.London,
	"merge":          evmc.Paris,
	"paris":          evmc.Paris,
	"shanghai":       evmc.Shanghai,
	"cancun":         evmc.Cancun,
}

// ParseRevision resolves a hardfork name (case-insensitive) to an EVMC
// revision. The result is false for unknown hardforks and hardforks newer
// than NewestSupportedRevision.
func ParseRevision(hardfork string) (evmc.Revision, bool) {
	revision, found := revisions[strings.ToLower(hardfork)]
	if !found || revision > NewestSupportedRevision {
		return 0, false
	}
	return revision, true
}

// Library is a native.Library backed by an EVMC VM. Top-level executions
// are serialized since EVMC VMs are not required to support concurrent
// executions.
type Library struct {
	vm      VM
	closer  func()
	execute sync.Mutex
}

var _ native.Library = (*Library)(nil)

// Load loads an EVMC VM from the given shared library. The library is
// released by Close.
func Load(path string) (*Library, error) {
	vm, err := evmc.Load(path)
	if err != nil {
		return nil, err
	}
	Logger().Info("loaded EVMC VM", zap.String("path", path), zap.String("name", vm.Name()), zap.String("version", vm.Version()))
	return &Library{vm: vm, closer: vm.Destroy}, nil
}

// New creates a library executing bytecode on the given VM.
func New(vm VM) *Library {
	return &Library{vm: vm}
}

// Close releases the underlying VM if it was loaded by this package. No
// instance of the library may be used afterwards.
func (l *Library) Close() {
	if l.closer != nil {
		l.closer()
		l.closer = nil
	}
}

func (l *Library) Create(hardfork string, level native.LogLevel) native.Instance {
	return l.create(newSettings(hardfork), level)
}

func (l *Library) CreateConfig() native.Config {
	return &config{settings: newSettings("")}
}

func (l *Library) CreateWithConfig(cfg native.Config, level native.LogLevel) native.Instance {
	c, ok := cfg.(*config)
	if !ok || c.destroyed {
		return nil
	}
	// Creation takes over the configuration.
	c.destroyed = true
	for _, name := range c.unsupported {
		Logger().Warn("engine setting not supported by EVMC VMs", zap.String("setting", name))
	}
	return l.create(c.settings.clone(), level)
}

func (l *Library) create(s settings, level native.LogLevel) native.Instance {
	revision, ok := ParseRevision(s.hardfork)
	if !ok {
		Logger().Error("unsupported hardfork", zap.String("hardfork", s.hardfork))
		return nil
	}
	return newInstance(l, s, revision, level)
}
