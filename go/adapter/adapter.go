// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package adapter implements guillotine.Executor on top of a native EVM
// engine reachable through the binding surface of the native package.
//
// Each Transact call owns a fresh native instance: the instance is created,
// fed with the pre-state of the involved accounts, configured with the
// transaction and block context, executed, and drained of its results before
// it is destroyed again. Calls on one Adapter may thus run concurrently.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native"
	"go.uber.org/zap"
)

// Adapter drives a native engine library as a guillotine.Executor.
type Adapter struct {
	lib                   native.Library
	config                *EngineConfig
	log                   *zap.Logger
	metrics               *Metrics
	fatal                 func(*FatalFault)
	storageHints          StorageHints
	syncAccessListStorage bool
}

// StorageHints names storage slots to be synced into the native instance
// before executing the given transaction, in addition to the slots listed
// in its access list.
type StorageHints func(tx guillotine.Transaction) []guillotine.AccessTuple

// Option customizes an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for diagnostics. The default discards
// all output.
func WithLogger(log *zap.Logger) Option {
	return func(a *Adapter) {
		a.log = log
	}
}

// WithEngineConfig makes the adapter create native instances from a
// configuration object with the given settings.
func WithEngineConfig(config EngineConfig) Option {
	return func(a *Adapter) {
		a.config = &config
	}
}

// WithMetrics makes the adapter record its results in the given metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(a *Adapter) {
		a.metrics = metrics
	}
}

// WithFatalHandler replaces the handler invoked for FatalFaults. The default
// handler terminates the process. If the handler returns, Transact reports
// the fault as its error.
func WithFatalHandler(handler func(*FatalFault)) Option {
	return func(a *Adapter) {
		a.fatal = handler
	}
}

// WithStorageHints sets a source of additional storage slots to be synced
// before execution.
func WithStorageHints(hints StorageHints) Option {
	return func(a *Adapter) {
		a.storageHints = hints
	}
}

// WithAccessListStorageSync controls whether the storage slots listed in a
// transaction's access list are synced before execution. It is enabled by
// default.
func WithAccessListStorageSync(enabled bool) Option {
	return func(a *Adapter) {
		a.syncAccessListStorage = enabled
	}
}

// New creates an adapter running transactions on the given library.
func New(lib native.Library, opts ...Option) *Adapter {
	a := &Adapter{
		lib:                   lib,
		syncAccessListStorage: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.fatal == nil {
		a.fatal = a.terminate
	}
	return a
}

// OptionsFrom interprets the configuration argument of an executor factory.
// Accepted are nil, a single Option, or a slice of Options.
func OptionsFrom(config any) ([]Option, error) {
	switch c := config.(type) {
	case nil:
		return nil, nil
	case Option:
		return []Option{c}, nil
	case []Option:
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported adapter configuration of type %T", config)
	}
}

// terminate is the default fatal handler. Fatal exits the process even if
// the logger discards the message.
func (a *Adapter) terminate(fault *FatalFault) {
	a.log.Fatal("unrecoverable native engine fault", zap.String("op", fault.Op), zap.String("detail", fault.Detail))
}

// Transact executes a transaction on a fresh native instance. The context
// is checked before any work is done; a started execution runs to
// completion.
func (a *Adapter) Transact(ctx context.Context, block guillotine.BlockParameters, tx guillotine.Transaction, db guillotine.Database) (guillotine.Outcome, error) {
	if err := ctx.Err(); err != nil {
		a.metrics.observe(nil, err)
		return nil, err
	}
	outcome, err := a.transact(block, tx, db)
	var fault *FatalFault
	if errors.As(err, &fault) {
		a.fatal(fault)
	}
	a.metrics.observe(outcome, err)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (a *Adapter) transact(block guillotine.BlockParameters, tx guillotine.Transaction, db guillotine.Database) (guillotine.Outcome, error) {
	hardfork, err := a.checkRequest(block, tx)
	if err != nil {
		return nil, err
	}

	log := a.log.With(zap.Stringer("sender", tx.Sender), zap.String("hardfork", hardfork))
	var outcome guillotine.Outcome
	created := false
	err = WithHandle(a.lib, hardfork, a.config, func(h *Handle) error {
		created = true
		log.Debug("native stage", zap.String("stage", "created"))

		target, code, input, err := a.syncPreState(h, tx, db)
		if err != nil {
			return err
		}
		log.Debug("native stage", zap.String("stage", "prestate-synced"))

		if err := setContext(h, block, tx, target, code, input); err != nil {
			return err
		}
		log.Debug("native stage", zap.String("stage", "context-set"))

		if err := h.Execute(); err != nil {
			return err
		}
		log.Debug("native stage", zap.String("stage", "executed"))

		outcome, err = extractOutcome(h, block.Revision, tx.GasLimit)
		if err != nil {
			return err
		}
		log.Debug("native stage", zap.String("stage", "extracted"), zap.Uint64("gasUsed", uint64(outcome.Used())))
		return nil
	})
	if created {
		log.Debug("native stage", zap.String("stage", "destroyed"))
	}
	if err != nil {
		log.Debug("transaction failed", zap.Error(err))
		return nil, err
	}
	return outcome, nil
}

// checkRequest validates the transaction against the features of its
// revision and resolves the native hardfork name. Violations are reported
// before any native instance is created.
func (a *Adapter) checkRequest(block guillotine.BlockParameters, tx guillotine.Transaction) (string, error) {
	hardfork, err := HardforkName(block.Revision)
	if err != nil {
		return "", err
	}
	if a.config != nil {
		if err := a.config.Validate(); err != nil {
			return "", err
		}
	}
	if len(tx.AccessList) > 0 && block.Revision < guillotine.R11_Berlin {
		return "", &ConfigurationError{Reason: fmt.Sprintf("access lists are not supported before Berlin, got %v", block.Revision)}
	}
	if len(tx.BlobHashes) > 0 && block.Revision < guillotine.R17_Cancun {
		return "", &ConfigurationError{Reason: fmt.Sprintf("blob hashes are not supported before Cancun, got %v", block.Revision)}
	}
	if _, ok := GasToNative(tx.GasLimit); !ok {
		return "", &ConfigurationError{Reason: fmt.Sprintf("gas limit %d exceeds the native range", tx.GasLimit)}
	}
	if !tx.GasPrice.IsZero() {
		a.log.Warn("gas price is not forwarded to the native engine", zap.Stringer("gasPrice", tx.GasPrice))
	}
	if tx.Nonce != 0 {
		a.log.Warn("transaction nonce is not forwarded to the native engine", zap.Uint64("nonce", tx.Nonce))
	}
	return hardfork, nil
}

// syncPreState pushes the accounts and storage slots involved in the
// transaction. It returns the execution target, the code to run, and the
// call data. Contract creations run the transaction input as init code with
// empty call data on the zero address.
func (a *Adapter) syncPreState(h *Handle, tx guillotine.Transaction, db guillotine.Database) (guillotine.Address, guillotine.Code, guillotine.Data, error) {
	synced := map[guillotine.Address]struct{}{}
	syncAccount := func(address guillotine.Address) (*guillotine.AccountInfo, error) {
		synced[address] = struct{}{}
		return SyncAccountFromDatabase(h, db, address)
	}

	if _, err := syncAccount(tx.Sender); err != nil {
		return guillotine.Address{}, nil, nil, err
	}

	var (
		target guillotine.Address
		code   guillotine.Code
		input  guillotine.Data
	)
	if tx.IsCreation() {
		code = guillotine.Code(tx.Input)
	} else {
		target = *tx.Recipient
		account, err := syncAccount(target)
		if err != nil {
			return guillotine.Address{}, nil, nil, err
		}
		if account != nil {
			code = account.Code
		}
		input = tx.Input
	}

	slots := []guillotine.AccessTuple{}
	if a.syncAccessListStorage {
		slots = append(slots, tx.AccessList...)
	}
	if a.storageHints != nil {
		slots = append(slots, a.storageHints(tx)...)
	}
	for _, tuple := range tx.AccessList {
		if _, found := synced[tuple.Address]; found {
			continue
		}
		if _, err := syncAccount(tuple.Address); err != nil {
			return guillotine.Address{}, nil, nil, err
		}
	}

	addresses, keys := toNativeAccessList(slots)
	perAccount := make(map[guillotine.Address][]guillotine.Key, len(addresses))
	for _, key := range keys {
		perAccount[key.Address] = append(perAccount[key.Address], key.Key)
	}
	for _, address := range addresses {
		if err := SyncStorageFromDatabase(h, db, address, perAccount[address]); err != nil {
			return guillotine.Address{}, nil, nil, err
		}
	}
	return target, code, input, nil
}

func setContext(h *Handle, block guillotine.BlockParameters, tx guillotine.Transaction, target guillotine.Address, code guillotine.Code, input guillotine.Data) error {
	if err := h.SetBytecode(code); err != nil {
		return err
	}
	if err := h.SetExecutionContext(tx.GasLimit, tx.Sender, target, tx.Value, input); err != nil {
		return err
	}
	if err := h.SetBlockContext(block); err != nil {
		return err
	}
	if err := h.SetAccessList(tx.AccessList); err != nil {
		return err
	}
	return h.SetBlobHashes(tx.BlobHashes)
}

func extractOutcome(h *Handle, revision guillotine.Revision, gasLimit guillotine.Gas) (guillotine.Outcome, error) {
	success, err := h.Succeeded()
	if err != nil {
		return nil, err
	}
	gasUsed, err := h.GasUsed()
	if err != nil {
		return nil, err
	}
	if gasUsed > gasLimit {
		return nil, &FatalFault{Op: "evm_get_gas_used", Detail: fmt.Sprintf("gas used %d exceeds gas limit %d", gasUsed, gasLimit)}
	}
	output, err := h.Output()
	if err != nil {
		return nil, err
	}
	if !success {
		return guillotine.Revert{GasUsed: gasUsed, Output: output}, nil
	}

	refund, err := h.GasRefund()
	if err != nil {
		return nil, err
	}
	changes, err := h.StorageChanges()
	if err != nil {
		return nil, err
	}
	logs, err := h.Logs()
	if err != nil {
		return nil, err
	}
	return guillotine.Success{
		GasUsed:        gasUsed,
		GasRefunded:    guillotine.CapRefund(revision, gasUsed, refund),
		Logs:           logs,
		StorageChanges: changes,
		Output:         output,
	}, nil
}
