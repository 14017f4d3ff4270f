// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package native describes the C ABI surface of a native EVM engine as seen
// from Go. The interfaces in this package mirror the foreign functions one
// to one: setters and actions report success as a boolean, getters report
// "not found" through ok flags or zero sizes. Translating these signals
// into errors is the job of the adapter package.
//
// Buffers crossing the boundary are always allocated by the Go side. The
// foreign side never retains or frees them.
package native

import (
	"fmt"
	"strings"
)

//go:generate mockgen -source native.go -destination native_mock.go -package native

// Library is the entry point of a native engine, creating independent
// engine instances.
type Library interface {
	// Create creates a new instance for the named hardfork. The result is
	// nil if the engine failed to create an instance.
	Create(hardfork string, level LogLevel) Instance
	// CreateConfig creates a new, default-initialized configuration object.
	// The result is nil if the engine failed to allocate one.
	CreateConfig() Config
	// CreateWithConfig creates a new instance using the given configuration.
	// The configuration is consumed by this call, also on failure, and must
	// not be destroyed afterwards. The result is nil on failure.
	CreateWithConfig(config Config, level LogLevel) Instance
}

// Instance is a single engine instance, executing at most one transaction.
// Instances are not safe for concurrent use.
type Instance interface {
	// Destroy releases the instance. No other method may be called after
	// this call, including Destroy itself.
	Destroy()

	SetBytecode(code []byte) bool
	SetExecutionContext(gas int64, caller, address [20]byte, value [32]byte, calldata []byte) bool
	SetBlockchainContext(block BlockContext)
	SetAccessListAddresses(addresses [][20]byte) bool
	SetAccessListStorageKeys(keys []AccessKey) bool
	SetBlobHashes(hashes [][32]byte) bool

	// Execute runs the transaction configured on this instance. A true
	// result means that the execution completed, successfully or not.
	Execute() bool
	IsSuccess() bool
	GasRemaining() int64
	GasUsed() int64
	GasRefund() uint64

	OutputLen() int
	// CopyOutput copies the output into buf and returns the number of
	// copied bytes.
	CopyOutput(buf []byte) int

	SetStorage(address [20]byte, key, value [32]byte) bool
	GetStorage(address [20]byte, key [32]byte) (value [32]byte, ok bool)
	SetBalance(address [20]byte, balance [32]byte) bool
	GetBalance(address [20]byte) (balance [32]byte, ok bool)
	SetNonce(address [20]byte, nonce uint64) bool
	GetNonce(address [20]byte) (nonce uint64, ok bool)
	SetCode(address [20]byte, code []byte) bool
	CodeLen(address [20]byte) int
	// CopyCode copies the code of the given account into buf and returns
	// the number of copied bytes.
	CopyCode(address [20]byte, buf []byte) int

	LogCount() int
	// GetLog fills the given entry with the log at the given index. At most
	// len(entry.Data) data bytes are copied; entry.DataLen reports the full
	// length of the log's data.
	GetLog(index int, entry *LogEntry) bool
	StorageChangeCount() int
	GetStorageChange(index int) (address [20]byte, key, value [32]byte, ok bool)
}

// Config is a native configuration object used to create customized
// instances.
type Config interface {
	// Destroy releases a configuration object not handed to
	// CreateWithConfig. Callbacks registered on it remain referenced by
	// instances created from it.
	Destroy()

	SetHardfork(name string)
	SetStackSize(size uint16)
	SetMaxBytecodeSize(size uint32)
	SetMaxInitcodeSize(size uint32)
	SetBlockGasLimit(limit uint64)
	SetMemoryInitialCapacity(capacity uint64)
	SetMemoryLimit(limit uint64)
	SetMaxCallDepth(depth uint16)
	// SetLoopQuota sets the maximum number of loop iterations before the
	// engine aborts. Zero disables the quota.
	SetLoopQuota(quota uint32)
	EnableSystemContracts(beaconRoots, blockHashes, deposits, withdrawals bool)

	// AddOpcodeOverride routes the given opcode to the opcode handler
	// registered under the given id.
	AddOpcodeOverride(opcode byte, id CallbackID) bool
	// AddPrecompileOverride routes calls to the given address to the
	// precompile handler registered under the given id.
	AddPrecompileOverride(address [20]byte, id CallbackID) bool
}

// BlockContext is the block level information forwarded to an instance.
// All 256-bit quantities are big-endian.
type BlockContext struct {
	ChainID     [32]byte
	Number      uint64
	Timestamp   uint64
	Difficulty  [32]byte
	PrevRandao  [32]byte
	Coinbase    [20]byte
	GasLimit    uint64
	BaseFee     [32]byte
	BlobBaseFee [32]byte
}

// AccessKey is an (address, storage key) pair of an access list.
type AccessKey struct {
	Address [20]byte
	Key     [32]byte
}

// MaxLogTopics is the maximum number of topics of a single log entry.
const MaxLogTopics = 4

// LogEntry is the host-allocated target buffer of a GetLog call.
type LogEntry struct {
	Address    [20]byte
	TopicCount int
	Topics     [MaxLogTopics][32]byte
	DataLen    int
	Data       []byte
}

// LogLevel is the verbosity of the engine's internal logging.
type LogLevel uint8

const (
	LogNone LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogDebug
)

var logLevelNames = []string{"none", "error", "warn", "info", "debug"}

func (l LogLevel) String() string {
	if int(l) < len(logLevelNames) {
		return logLevelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", l)
}

func (l LogLevel) MarshalText() ([]byte, error) {
	if int(l) >= len(logLevelNames) {
		return nil, fmt.Errorf("invalid log level %d", l)
	}
	return []byte(l.String()), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	level, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// ParseLogLevel resolves a log level by its case-insensitive name.
func ParseLogLevel(name string) (LogLevel, error) {
	for i, cur := range logLevelNames {
		if strings.EqualFold(cur, name) {
			return LogLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}
