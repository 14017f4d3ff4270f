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
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/Fantom-foundation/Guillotine/go/native/nativetest"
	"github.com/Fantom-foundation/Guillotine/go/state"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	sender    = guillotine.Address{0x01}
	recipient = guillotine.Address{0x02}
	ether     = uint256.NewInt(1_000_000_000_000_000_000)
)

func ethers(n uint64) guillotine.Value {
	return guillotine.ValueFromUint256(new(uint256.Int).Mul(uint256.NewInt(n), ether))
}

func cancunBlock() guillotine.BlockParameters {
	return guillotine.BlockParameters{
		ChainID:     guillotine.Word{31: 1},
		BlockNumber: 20_000_000,
		Timestamp:   1_710_000_000,
		GasLimit:    30_000_000,
		Revision:    guillotine.R17_Cancun,
	}
}

func newDatabase() *state.Memory {
	db := state.NewMemory()
	db.SetBalance(sender, ethers(10))
	return db
}

// newTestAdapter creates an adapter whose fatal handler records faults
// instead of terminating the process.
func newTestAdapter(lib native.Library, opts ...Option) (*Adapter, *[]*FatalFault) {
	faults := &[]*FatalFault{}
	opts = append([]Option{WithFatalHandler(func(f *FatalFault) {
		*faults = append(*faults, f)
	})}, opts...)
	return New(lib, opts...), faults
}

func transact(t *testing.T, a *Adapter, block guillotine.BlockParameters, tx guillotine.Transaction, db guillotine.Database) (guillotine.Outcome, error) {
	t.Helper()
	before := LiveHandles()
	outcome, err := a.Transact(context.Background(), block, tx, db)
	if after := LiveHandles(); before != after {
		t.Errorf("leaked native handles: %d before, %d after", before, after)
	}
	return outcome, err
}

func TestAdapter_ValueTransferToEmptyAccount(t *testing.T) {
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib)
	db := newDatabase()

	target := recipient
	outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:    sender,
		Recipient: &target,
		Value:     ethers(1),
		GasLimit:  21000,
	}, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	success, ok := outcome.(guillotine.Success)
	if !ok {
		t.Fatalf("expected success, got %T", outcome)
	}
	if success.GasUsed != 21000 || success.GasRefunded != 0 {
		t.Errorf("unexpected gas accounting: used %d, refunded %d", success.GasUsed, success.GasRefunded)
	}
	if len(success.Logs) != 0 || len(success.Output) != 0 || len(success.StorageChanges) != 0 {
		t.Errorf("unexpected effects: %+v", success)
	}
	if lib.Live() != 0 || lib.Created() != 1 {
		t.Errorf("expected exactly one created and destroyed instance, got %d created and %d live", lib.Created(), lib.Live())
	}
}

func TestAdapter_SimpleTransfersSucceedForAllSufficientBalances(t *testing.T) {
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib)
	for _, value := range []uint64{0, 1, 5, 10} {
		for _, gas := range []guillotine.Gas{21000, 50000, 1_000_000} {
			target := recipient
			outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
				Sender:    sender,
				Recipient: &target,
				Value:     ethers(value),
				GasLimit:  gas,
			}, newDatabase())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			success, ok := outcome.(guillotine.Success)
			if !ok {
				t.Fatalf("expected success for value %d and gas %d, got %T", value, gas, outcome)
			}
			if len(success.Output) != 0 || len(success.Logs) != 0 {
				t.Errorf("unexpected effects: %+v", success)
			}
		}
	}
}

func TestAdapter_RevertIsAnOutcome(t *testing.T) {
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		e.SetStorage(e.Address(), [32]byte{}, [32]byte{31: 1})
		return nativetest.Result{Reverted: true, GasUsed: 23000, Output: []byte("nope")}
	}}
	a, _ := newTestAdapter(lib)

	for _, gas := range []guillotine.Gas{21000, 23000, 100000} {
		target := recipient
		outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
			Sender:    sender,
			Recipient: &target,
			GasLimit:  gas,
		}, newDatabase())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		revert, ok := outcome.(guillotine.Revert)
		if !ok {
			t.Fatalf("expected revert, got %T", outcome)
		}
		if revert.GasUsed == 0 || revert.GasUsed > gas {
			t.Errorf("gas used %d out of range (0, %d]", revert.GasUsed, gas)
		}
		if want, got := "nope", string(revert.Output); want != got {
			t.Errorf("unexpected output, wanted %q, got %q", want, got)
		}
	}
}

func TestAdapter_StorageWriteIsReported(t *testing.T) {
	code := guillotine.Code{0x60, 0x05, 0x60, 0x00, 0x55, 0x00}
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		if string(e.Code()) != string(code) {
			return nativetest.Result{Reverted: true, GasUsed: e.Gas()}
		}
		e.SetStorage(e.Address(), [32]byte{}, [32]byte{31: 5})
		return nativetest.Result{GasUsed: 43106, Output: []byte{0xca, 0xfe}}
	}}
	a, _ := newTestAdapter(lib)
	db := newDatabase()
	db.SetCode(recipient, code)

	target := recipient
	outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:    sender,
		Recipient: &target,
		GasLimit:  100000,
	}, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	success, ok := outcome.(guillotine.Success)
	if !ok {
		t.Fatalf("expected success, got %T", outcome)
	}
	want := []guillotine.StorageChange{{Address: recipient, Key: guillotine.Key{}, Value: guillotine.Word{31: 5}}}
	if len(success.StorageChanges) != 1 || success.StorageChanges[0] != want[0] {
		t.Errorf("unexpected storage changes, wanted %v, got %v", want, success.StorageChanges)
	}
	if want, got := "\xca\xfe", string(success.Output); want != got {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
}

func TestAdapter_SlotsEndingAtZeroAreNotReported(t *testing.T) {
	script := func(e *nativetest.Execution) nativetest.Result {
		e.SetStorage(e.Address(), [32]byte{31: 1}, [32]byte{31: 7})
		e.SetStorage(e.Address(), [32]byte{31: 1}, [32]byte{})
		e.SetStorage(e.Address(), [32]byte{31: 2}, [32]byte{31: 8})
		return nativetest.Result{GasUsed: 50000}
	}
	for _, reportZero := range []bool{false, true} {
		lib := &nativetest.Library{Script: script, Faults: nativetest.Faults{ReportZeroStorage: reportZero}}
		a, _ := newTestAdapter(lib)
		target := recipient
		outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
			Sender:    sender,
			Recipient: &target,
			GasLimit:  100000,
		}, newDatabase())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		changes := outcome.(guillotine.Success).StorageChanges
		if len(changes) != 1 || changes[0].Key != (guillotine.Key{31: 2}) {
			t.Errorf("unexpected storage changes with zero reporting %t: %v", reportZero, changes)
		}
		for _, change := range changes {
			if change.Value.IsZero() {
				t.Errorf("zero valued change reported: %v", change)
			}
		}
	}
}

func TestAdapter_LogsAreReportedInEmissionOrder(t *testing.T) {
	topic := [32]byte{31: 0xaa}
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		e.EmitLog(e.Address(), nil, []byte{1})
		e.EmitLog(e.Address(), [][32]byte{topic}, []byte{2, 3})
		e.EmitLog(guillotine.Address{0x00}, [][32]byte{topic, topic, topic, topic}, nil)
		return nativetest.Result{GasUsed: 30000}
	}}
	a, _ := newTestAdapter(lib)
	target := recipient
	outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:    sender,
		Recipient: &target,
		GasLimit:  100000,
	}, newDatabase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logs := outcome.(guillotine.Success).Logs
	if len(logs) != 3 {
		t.Fatalf("unexpected number of logs: %d", len(logs))
	}
	for i, want := range []int{0, 1, 4} {
		if got := len(logs[i].Topics); want != got {
			t.Errorf("log %d: unexpected number of topics, wanted %d, got %d", i, want, got)
		}
	}
	if logs[1].Topics[0] != guillotine.Hash(topic) || string(logs[1].Data) != "\x02\x03" {
		t.Errorf("unexpected content of second log: %+v", logs[1])
	}
	if logs[0].Address != recipient || logs[2].Address != (guillotine.Address{}) {
		t.Errorf("unexpected log addresses: %v, %v", logs[0].Address, logs[2].Address)
	}
}

func TestAdapter_RefundsAreCapped(t *testing.T) {
	tests := []struct {
		revision guillotine.Revision
		refund   uint64
		want     guillotine.Gas
	}{
		{guillotine.R09_Istanbul, 100000, 50000},
		{guillotine.R09_Istanbul, 10000, 10000},
		{guillotine.R12_London, 100000, 20000},
		{guillotine.R17_Cancun, 19999, 19999},
	}
	for _, test := range tests {
		lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
			return nativetest.Result{GasUsed: 100000, Refund: test.refund}
		}}
		a, _ := newTestAdapter(lib)
		block := cancunBlock()
		block.Revision = test.revision
		target := recipient
		outcome, err := transact(t, a, block, guillotine.Transaction{
			Sender:    sender,
			Recipient: &target,
			GasLimit:  200000,
		}, newDatabase())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := outcome.(guillotine.Success).GasRefunded; got != test.want {
			t.Errorf("%v with refund %d: wanted %d, got %d", test.revision, test.refund, test.want, got)
		}
	}
}

func TestAdapter_UnmappedHardforkCreatesNoHandle(t *testing.T) {
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib)
	block := cancunBlock()
	block.Revision = guillotine.R99_UnknownNextRevision

	target := recipient
	outcome, err := transact(t, a, block, guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 21000}, newDatabase())
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if outcome != nil {
		t.Errorf("unexpected outcome: %v", outcome)
	}
	if lib.Created() != 0 {
		t.Errorf("native instance was created for an unmapped hardfork")
	}
}

func TestAdapter_UnsupportedFeaturesAreConfigurationErrors(t *testing.T) {
	target := recipient
	tests := map[string]struct {
		revision guillotine.Revision
		tx       guillotine.Transaction
	}{
		"access list before Berlin": {guillotine.R09_Istanbul, guillotine.Transaction{
			Sender: sender, Recipient: &target, GasLimit: 50000,
			AccessList: []guillotine.AccessTuple{{Address: recipient}},
		}},
		"blob hashes before Cancun": {guillotine.R16_Shanghai, guillotine.Transaction{
			Sender: sender, Recipient: &target, GasLimit: 50000,
			BlobHashes: []guillotine.Hash{{0x01}},
		}},
		"gas limit beyond native range": {guillotine.R17_Cancun, guillotine.Transaction{
			Sender: sender, Recipient: &target, GasLimit: 1 << 63,
		}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			lib := &nativetest.Library{}
			a, _ := newTestAdapter(lib)
			block := cancunBlock()
			block.Revision = test.revision
			_, err := transact(t, a, block, test.tx, newDatabase())
			var configErr *ConfigurationError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if lib.Created() != 0 {
				t.Errorf("native instance was created")
			}
		})
	}
}

func TestAdapter_InvalidEngineConfigIsRejectedBeforeCreation(t *testing.T) {
	lib := &nativetest.Library{}
	config := DefaultEngineConfig()
	config.MemoryInitialCapacity = config.MemoryLimit + 1
	a, _ := newTestAdapter(lib, WithEngineConfig(config))
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 21000}, newDatabase())
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if lib.Created() != 0 || lib.LiveConfigs() != 0 {
		t.Errorf("native resources were allocated")
	}
}

func TestAdapter_CanceledContextCreatesNoHandle(t *testing.T) {
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	target := recipient
	_, err := a.Transact(ctx, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 21000}, newDatabase())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: %v", err)
	}
	if lib.Created() != 0 {
		t.Errorf("native instance was created")
	}
}

func TestAdapter_DatabaseErrorsArePropagated(t *testing.T) {
	injected := errors.New("injected")
	tests := map[string]func(db *guillotine.MockDatabase){
		"sender": func(db *guillotine.MockDatabase) {
			db.EXPECT().Basic(sender).Return(nil, injected)
		},
		"recipient": func(db *guillotine.MockDatabase) {
			db.EXPECT().Basic(sender).Return(&guillotine.AccountInfo{Balance: ethers(1)}, nil)
			db.EXPECT().Basic(recipient).Return(nil, injected)
		},
		"storage": func(db *guillotine.MockDatabase) {
			db.EXPECT().Basic(sender).Return(&guillotine.AccountInfo{Balance: ethers(1)}, nil)
			db.EXPECT().Basic(recipient).Return(nil, nil)
			db.EXPECT().Storage(recipient, guillotine.Key{31: 1}).Return(guillotine.Word{}, injected)
		},
	}
	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := guillotine.NewMockDatabase(ctrl)
			setup(db)

			lib := &nativetest.Library{}
			a, _ := newTestAdapter(lib)
			target := recipient
			outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
				Sender:     sender,
				Recipient:  &target,
				GasLimit:   50000,
				AccessList: []guillotine.AccessTuple{{Address: recipient, Keys: []guillotine.Key{{31: 1}}}},
			}, db)
			var dbErr *DatabaseError
			if !errors.As(err, &dbErr) || !errors.Is(err, injected) {
				t.Fatalf("expected wrapped database error, got %v", err)
			}
			if outcome != nil {
				t.Errorf("unexpected outcome: %v", outcome)
			}
			if lib.Live() != 0 {
				t.Errorf("native instance was not destroyed")
			}
		})
	}
}

func TestAdapter_BoundaryFailuresNameTheFailingCall(t *testing.T) {
	ops := []string{
		"evm_set_balance",
		"evm_set_nonce",
		"evm_set_code",
		"evm_set_storage",
		"evm_set_bytecode",
		"evm_set_execution_context",
		"evm_set_access_list_addresses",
		"evm_set_access_list_storage_keys",
		"evm_set_blob_hashes",
		"evm_execute",
		"evm_get_storage_change",
		"evm_get_log",
	}
	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			lib := &nativetest.Library{
				Script: func(e *nativetest.Execution) nativetest.Result {
					e.SetStorage(e.Address(), [32]byte{}, [32]byte{31: 1})
					e.EmitLog(e.Address(), nil, nil)
					return nativetest.Result{GasUsed: 30000}
				},
				Faults: nativetest.Faults{Fail: map[string]bool{op: true}},
			}
			a, faults := newTestAdapter(lib)
			db := newDatabase()
			db.SetCode(recipient, guillotine.Code{0x00})
			db.SetStorage(recipient, guillotine.Key{31: 1}, guillotine.Word{31: 1})

			target := recipient
			outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{
				Sender:     sender,
				Recipient:  &target,
				GasLimit:   100000,
				AccessList: []guillotine.AccessTuple{{Address: recipient, Keys: []guillotine.Key{{31: 1}}}},
				BlobHashes: []guillotine.Hash{{0x01}},
			}, db)
			var boundaryErr *BoundaryCallError
			if !errors.As(err, &boundaryErr) {
				t.Fatalf("expected boundary error, got %v", err)
			}
			if boundaryErr.Op != op {
				t.Errorf("unexpected failing call, wanted %s, got %s", op, boundaryErr.Op)
			}
			if outcome != nil {
				t.Errorf("unexpected outcome: %v", outcome)
			}
			if len(*faults) != 0 {
				t.Errorf("boundary errors must not be fatal")
			}
			if lib.Live() != 0 {
				t.Errorf("native instance was not destroyed")
			}
		})
	}
}

func TestAdapter_RefusedCreationIsABoundaryError(t *testing.T) {
	lib := &nativetest.Library{Faults: nativetest.Faults{RefuseCreate: true}}
	a, _ := newTestAdapter(lib)
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 21000}, newDatabase())
	var boundaryErr *BoundaryCallError
	if !errors.As(err, &boundaryErr) || boundaryErr.Op != "evm_create" {
		t.Fatalf("expected evm_create boundary error, got %v", err)
	}
}

func TestAdapter_ContractViolationsAreFatal(t *testing.T) {
	script := func(e *nativetest.Execution) nativetest.Result {
		e.EmitLog(e.Address(), nil, []byte{1, 2, 3})
		return nativetest.Result{GasUsed: 30000, Output: []byte{1, 2}}
	}
	tests := map[string]nativetest.Faults{
		"evm_get_output":   {ShortOutputCopy: true},
		"evm_get_log":      {ChangingLogData: true},
		"evm_get_gas_used": {ExcessGasUsed: true},
	}
	for op, faults := range tests {
		t.Run(op, func(t *testing.T) {
			lib := &nativetest.Library{Script: script, Faults: faults}
			a, recorded := newTestAdapter(lib)
			target := recipient
			outcome, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 100000}, newDatabase())
			var fault *FatalFault
			if !errors.As(err, &fault) {
				t.Fatalf("expected fatal fault, got %v", err)
			}
			if fault.Op != op {
				t.Errorf("unexpected faulting call, wanted %s, got %s", op, fault.Op)
			}
			if outcome != nil {
				t.Errorf("unexpected outcome: %v", outcome)
			}
			if len(*recorded) != 1 || (*recorded)[0] != fault {
				t.Errorf("fault was not handed to the fatal handler: %v", *recorded)
			}
		})
	}
}

func TestAdapter_TooManyTopicsAreFatal(t *testing.T) {
	lib := &nativetest.Library{
		Script: func(e *nativetest.Execution) nativetest.Result {
			e.EmitLog(e.Address(), nil, nil)
			return nativetest.Result{GasUsed: 30000}
		},
		Faults: nativetest.Faults{TooManyTopics: true},
	}
	a, recorded := newTestAdapter(lib)
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 100000}, newDatabase())
	var fault *FatalFault
	if !errors.As(err, &fault) || len(*recorded) != 1 {
		t.Fatalf("expected fatal fault, got %v", err)
	}
}

func TestAdapter_PreStateIsSynced(t *testing.T) {
	other := guillotine.Address{0x03}
	var seen struct {
		senderBalance *uint256.Int
		senderNonce   uint64
		targetCode    []byte
		otherBalance  *uint256.Int
		listedSlot    [32]byte
		hintedSlot    [32]byte
		unlistedSlot  [32]byte
		hardfork      string
	}
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		seen.senderBalance = e.Balance(e.Caller())
		seen.senderNonce = e.Nonce(e.Caller())
		seen.targetCode = e.AccountCode(e.Address())
		seen.otherBalance = e.Balance(other)
		seen.listedSlot = e.Storage(e.Address(), [32]byte{31: 1})
		seen.hintedSlot = e.Storage(other, [32]byte{31: 2})
		seen.unlistedSlot = e.Storage(e.Address(), [32]byte{31: 3})
		seen.hardfork = e.Hardfork()
		return nativetest.Result{GasUsed: 30000}
	}}
	hints := func(tx guillotine.Transaction) []guillotine.AccessTuple {
		return []guillotine.AccessTuple{{Address: other, Keys: []guillotine.Key{{31: 2}}}}
	}
	a, _ := newTestAdapter(lib, WithStorageHints(hints))

	db := newDatabase()
	db.SetNonce(sender, 7)
	db.SetCode(recipient, guillotine.Code{0x60, 0x00})
	db.SetBalance(other, ethers(3))
	db.SetStorage(recipient, guillotine.Key{31: 1}, guillotine.Word{31: 11})
	db.SetStorage(other, guillotine.Key{31: 2}, guillotine.Word{31: 22})
	db.SetStorage(recipient, guillotine.Key{31: 3}, guillotine.Word{31: 33})

	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:     sender,
		Recipient:  &target,
		GasLimit:   100000,
		AccessList: []guillotine.AccessTuple{{Address: recipient, Keys: []guillotine.Key{{31: 1}}}, {Address: other}},
	}, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := ethers(10); guillotine.ValueFromUint256(seen.senderBalance) != want {
		t.Errorf("unexpected sender balance %v", seen.senderBalance)
	}
	if seen.senderNonce != 7 {
		t.Errorf("unexpected sender nonce %d", seen.senderNonce)
	}
	if string(seen.targetCode) != "\x60\x00" {
		t.Errorf("unexpected target code %x", seen.targetCode)
	}
	if want := ethers(3); guillotine.ValueFromUint256(seen.otherBalance) != want {
		t.Errorf("access listed account was not synced, balance %v", seen.otherBalance)
	}
	if seen.listedSlot != ([32]byte{31: 11}) || seen.hintedSlot != ([32]byte{31: 22}) {
		t.Errorf("listed or hinted slots were not synced: %x, %x", seen.listedSlot, seen.hintedSlot)
	}
	if seen.unlistedSlot != ([32]byte{}) {
		t.Errorf("unlisted slot should not be synced, got %x", seen.unlistedSlot)
	}
	if seen.hardfork != "Cancun" {
		t.Errorf("unexpected hardfork %q", seen.hardfork)
	}
}

func TestAdapter_AccessListStorageSyncCanBeDisabled(t *testing.T) {
	var slot [32]byte
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		slot = e.Storage(e.Address(), [32]byte{31: 1})
		return nativetest.Result{GasUsed: 30000}
	}}
	a, _ := newTestAdapter(lib, WithAccessListStorageSync(false))
	db := newDatabase()
	db.SetStorage(recipient, guillotine.Key{31: 1}, guillotine.Word{31: 11})

	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:     sender,
		Recipient:  &target,
		GasLimit:   100000,
		AccessList: []guillotine.AccessTuple{{Address: recipient, Keys: []guillotine.Key{{31: 1}}}},
	}, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != ([32]byte{}) {
		t.Errorf("slot should not have been synced, got %x", slot)
	}
}

func TestAdapter_ContextIsForwarded(t *testing.T) {
	var (
		caller, address [20]byte
		value           [32]byte
		gas             int64
		input           []byte
		block           native.BlockContext
		accounts        [][20]byte
		keys            []native.AccessKey
		blobs           [][32]byte
	)
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		caller, address, value, gas, input = e.Caller(), e.Address(), e.Value(), e.Gas(), e.Input()
		block = e.Block()
		accounts, keys = e.AccessList()
		blobs = e.BlobHashes()
		return nativetest.Result{GasUsed: 30000}
	}}
	a, _ := newTestAdapter(lib)
	params := cancunBlock()
	params.Coinbase = guillotine.Address{0xcb}
	params.BaseFee = guillotine.NewValue(7)
	params.BlobBaseFee = guillotine.NewValue(3)
	params.PrevRandao = guillotine.Hash{0x42}

	target := recipient
	_, err := transact(t, a, params, guillotine.Transaction{
		Sender:    sender,
		Recipient: &target,
		Value:     ethers(2),
		GasLimit:  100000,
		Input:     guillotine.Data{1, 2, 3},
		AccessList: []guillotine.AccessTuple{
			{Address: recipient, Keys: []guillotine.Key{{1}, {1}}},
			{Address: recipient, Keys: []guillotine.Key{{2}}},
		},
		BlobHashes: []guillotine.Hash{{0x01}, {0x02}},
	}, newDatabase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller != sender || address != recipient || value != ethers(2) || gas != 100000 || string(input) != "\x01\x02\x03" {
		t.Errorf("unexpected execution context: %x %x %x %d %x", caller, address, value, gas, input)
	}
	if block.Coinbase != params.Coinbase || block.BaseFee != params.BaseFee || block.BlobBaseFee != params.BlobBaseFee ||
		block.PrevRandao != params.PrevRandao || block.Number != params.BlockNumber || block.ChainID != params.ChainID {
		t.Errorf("unexpected block context: %+v", block)
	}
	if len(accounts) != 1 || len(keys) != 2 {
		t.Errorf("access list was not deduplicated: %v, %v", accounts, keys)
	}
	if len(blobs) != 2 {
		t.Errorf("unexpected blob hashes: %v", blobs)
	}
}

func TestAdapter_CreationRunsInputAsInitCode(t *testing.T) {
	var address [20]byte
	var code, input []byte
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		address, code, input = e.Address(), e.Code(), e.Input()
		return nativetest.Result{GasUsed: 60000}
	}}
	a, _ := newTestAdapter(lib)
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:   sender,
		GasLimit: 100000,
		Input:    guillotine.Data{0x60, 0x00, 0xf3},
	}, newDatabase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != ([20]byte{}) || string(code) != "\x60\x00\xf3" || len(input) != 0 {
		t.Errorf("unexpected creation context: %x, %x, %x", address, code, input)
	}
}

func TestAdapter_EngineConfigAndCallbacksReachTheEngine(t *testing.T) {
	overridden := false
	registry := NewRegistry()
	if err := registry.OverrideOpcode(0x01, func(frame uintptr, opcode byte) bool {
		overridden = true
		return true
	}); err != nil {
		t.Fatalf("failed to register opcode handler: %v", err)
	}
	precompile := guillotine.Address{19: 0x42}
	if err := registry.OverridePrecompile(precompile, func(_ guillotine.Address, input guillotine.Data, _ guillotine.Gas) (guillotine.Data, guillotine.Gas, error) {
		return append(guillotine.Data{0xff}, input...), 100, nil
	}); err != nil {
		t.Fatalf("failed to register precompile: %v", err)
	}

	var handled bool
	var result native.PrecompileResult
	lib := &nativetest.Library{Script: func(e *nativetest.Execution) nativetest.Result {
		_, handled = e.InvokeOpcode(0, 0x01)
		_, result, _ = e.CallPrecompile(precompile, []byte{1}, 1000)
		return nativetest.Result{GasUsed: 30000}
	}}
	config := DefaultEngineConfig()
	config.StackSize = 512
	config.LoopQuota = 1000
	config.LogLevel = native.LogWarn
	config.Callbacks = registry
	a, _ := newTestAdapter(lib, WithEngineConfig(config))

	callbacksBefore := native.LiveCallbacks()
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 100000}, newDatabase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !overridden || !handled {
		t.Errorf("opcode override was not invoked")
	}
	if string(result.Output) != "\xff\x01" || result.GasUsed != 100 {
		t.Errorf("unexpected precompile result: %+v", result)
	}
	if after := native.LiveCallbacks(); callbacksBefore != after {
		t.Errorf("callbacks were not released: %d before, %d after", callbacksBefore, after)
	}
	if lib.LiveConfigs() != 0 {
		t.Errorf("configuration object was not consumed")
	}

	settings := lib.Settings()[0]
	if !settings.Configured || settings.Hardfork != "Cancun" || settings.StackSize != 512 ||
		settings.LoopQuota != 1000 || settings.LogLevel != native.LogWarn || settings.MaxCallDepth != 1024 {
		t.Errorf("unexpected engine settings: %+v", settings)
	}
}

func TestAdapter_FailedCallbackRegistrationReleasesCallbacks(t *testing.T) {
	registry := NewRegistry()
	registry.OverrideOpcode(0x01, func(uintptr, byte) bool { return true })
	registry.OverrideOpcode(0x02, func(uintptr, byte) bool { return true })
	lib := &nativetest.Library{Faults: nativetest.Faults{Fail: map[string]bool{"evm_config_add_opcode_override": true}}}
	config := DefaultEngineConfig()
	config.Callbacks = registry
	a, _ := newTestAdapter(lib, WithEngineConfig(config))

	before := native.LiveCallbacks()
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{Sender: sender, Recipient: &target, GasLimit: 100000}, newDatabase())
	var boundaryErr *BoundaryCallError
	if !errors.As(err, &boundaryErr) || boundaryErr.Op != "evm_config_add_opcode_override" {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := native.LiveCallbacks(); before != after {
		t.Errorf("callbacks were not released: %d before, %d after", before, after)
	}
	if lib.Created() != 0 || lib.LiveConfigs() != 0 {
		t.Errorf("native resources were leaked")
	}
}

func TestAdapter_ConcurrentTransactionsUseIndependentInstances(t *testing.T) {
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib)
	const N = 16
	var wg sync.WaitGroup
	errs := make([]error, N)
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := guillotine.Address{0x10, byte(i)}
			_, errs[i] = a.Transact(context.Background(), cancunBlock(), guillotine.Transaction{
				Sender:    sender,
				Recipient: &target,
				Value:     ethers(1),
				GasLimit:  21000,
			}, newDatabase())
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("transaction %d failed: %v", i, err)
		}
	}
	if lib.Created() != N || lib.Live() != 0 {
		t.Errorf("unexpected instance accounting: %d created, %d live", lib.Created(), lib.Live())
	}
}

func TestAdapter_StagesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lib := &nativetest.Library{}
	a, _ := newTestAdapter(lib, WithLogger(zap.New(core)))
	target := recipient
	_, err := transact(t, a, cancunBlock(), guillotine.Transaction{
		Sender:    sender,
		Recipient: &target,
		GasLimit:  21000,
		GasPrice:  guillotine.NewValue(1),
	}, newDatabase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stages []string
	for _, entry := range logs.FilterMessage("native stage").All() {
		stages = append(stages, entry.ContextMap()["stage"].(string))
	}
	want := []string{"created", "prestate-synced", "context-set", "executed", "extracted", "destroyed"}
	if len(stages) != len(want) {
		t.Fatalf("unexpected stages, wanted %v, got %v", want, stages)
	}
	for i := range want {
		if want[i] != stages[i] {
			t.Errorf("unexpected stage %d, wanted %s, got %s", i, want[i], stages[i])
		}
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Errorf("expected a warning for the gas price")
	}
}

func TestOptionsFrom_AcceptsOptionsOnly(t *testing.T) {
	if opts, err := OptionsFrom(nil); err != nil || opts != nil {
		t.Errorf("unexpected result for nil: %v, %v", opts, err)
	}
	if opts, err := OptionsFrom(WithAccessListStorageSync(false)); err != nil || len(opts) != 1 {
		t.Errorf("unexpected result for single option: %v, %v", opts, err)
	}
	if opts, err := OptionsFrom([]Option{WithLogger(zap.NewNop()), WithAccessListStorageSync(false)}); err != nil || len(opts) != 2 {
		t.Errorf("unexpected result for option list: %v, %v", opts, err)
	}
	if _, err := OptionsFrom("foo"); err == nil {
		t.Errorf("expected error for unsupported configuration")
	}
}
