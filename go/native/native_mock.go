// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package native is a generated GoMock package.
package native

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockLibrary is a mock of Library interface.
type MockLibrary struct {
	ctrl     *gomock.Controller
	recorder *MockLibraryMockRecorder
}

// MockLibraryMockRecorder is the mock recorder for MockLibrary.
type MockLibraryMockRecorder struct {
	mock *MockLibrary
}

// NewMockLibrary creates a new mock instance.
func NewMockLibrary(ctrl *gomock.Controller) *MockLibrary {
	mock := &MockLibrary{ctrl: ctrl}
	mock.recorder = &MockLibraryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLibrary) EXPECT() *MockLibraryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockLibrary) Create(arg0 string, arg1 LogLevel) Instance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", arg0, arg1)
	ret0, _ := ret[0].(Instance)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockLibraryMockRecorder) Create(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockLibrary)(nil).Create), arg0, arg1)
}

// CreateConfig mocks base method.
func (m *MockLibrary) CreateConfig() Config {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateConfig")
	ret0, _ := ret[0].(Config)
	return ret0
}

// CreateConfig indicates an expected call of CreateConfig.
func (mr *MockLibraryMockRecorder) CreateConfig() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateConfig", reflect.TypeOf((*MockLibrary)(nil).CreateConfig))
}

// CreateWithConfig mocks base method.
func (m *MockLibrary) CreateWithConfig(arg0 Config, arg1 LogLevel) Instance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateWithConfig", arg0, arg1)
	ret0, _ := ret[0].(Instance)
	return ret0
}

// CreateWithConfig indicates an expected call of CreateWithConfig.
func (mr *MockLibraryMockRecorder) CreateWithConfig(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateWithConfig", reflect.TypeOf((*MockLibrary)(nil).CreateWithConfig), arg0, arg1)
}

// MockInstance is a mock of Instance interface.
type MockInstance struct {
	ctrl     *gomock.Controller
	recorder *MockInstanceMockRecorder
}

// MockInstanceMockRecorder is the mock recorder for MockInstance.
type MockInstanceMockRecorder struct {
	mock *MockInstance
}

// NewMockInstance creates a new mock instance.
func NewMockInstance(ctrl *gomock.Controller) *MockInstance {
	mock := &MockInstance{ctrl: ctrl}
	mock.recorder = &MockInstanceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInstance) EXPECT() *MockInstanceMockRecorder {
	return m.recorder
}

// CodeLen mocks base method.
func (m *MockInstance) CodeLen(arg0 [20]byte) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CodeLen", arg0)
	ret0, _ := ret[0].(int)
	return ret0
}

// CodeLen indicates an expected call of CodeLen.
func (mr *MockInstanceMockRecorder) CodeLen(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CodeLen", reflect.TypeOf((*MockInstance)(nil).CodeLen), arg0)
}

// CopyCode mocks base method.
func (m *MockInstance) CopyCode(arg0 [20]byte, arg1 []byte) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CopyCode", arg0, arg1)
	ret0, _ := ret[0].(int)
	return ret0
}

// CopyCode indicates an expected call of CopyCode.
func (mr *MockInstanceMockRecorder) CopyCode(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CopyCode", reflect.TypeOf((*MockInstance)(nil).CopyCode), arg0, arg1)
}

// CopyOutput mocks base method.
func (m *MockInstance) CopyOutput(arg0 []byte) int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CopyOutput", arg0)
	ret0, _ := ret[0].(int)
	return ret0
}

// CopyOutput indicates an expected call of CopyOutput.
func (mr *MockInstanceMockRecorder) CopyOutput(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CopyOutput", reflect.TypeOf((*MockInstance)(nil).CopyOutput), arg0)
}

// Destroy mocks base method.
func (m *MockInstance) Destroy() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Destroy")
}

// Destroy indicates an expected call of Destroy.
func (mr *MockInstanceMockRecorder) Destroy() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Destroy", reflect.TypeOf((*MockInstance)(nil).Destroy))
}

// Execute mocks base method.
func (m *MockInstance) Execute() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute")
	ret0, _ := ret[0].(bool)
	return ret0
}

// Execute indicates an expected call of Execute.
func (mr *MockInstanceMockRecorder) Execute() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute", reflect.TypeOf((*MockInstance)(nil).Execute))
}

// GasRefund mocks base method.
func (m *MockInstance) GasRefund() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GasRefund")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// GasRefund indicates an expected call of GasRefund.
func (mr *MockInstanceMockRecorder) GasRefund() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GasRefund", reflect.TypeOf((*MockInstance)(nil).GasRefund))
}

// GasRemaining mocks base method.
func (m *MockInstance) GasRemaining() int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GasRemaining")
	ret0, _ := ret[0].(int64)
	return ret0
}

// GasRemaining indicates an expected call of GasRemaining.
func (mr *MockInstanceMockRecorder) GasRemaining() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GasRemaining", reflect.TypeOf((*MockInstance)(nil).GasRemaining))
}

// GasUsed mocks base method.
func (m *MockInstance) GasUsed() int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GasUsed")
	ret0, _ := ret[0].(int64)
	return ret0
}

// GasUsed indicates an expected call of GasUsed.
func (mr *MockInstanceMockRecorder) GasUsed() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GasUsed", reflect.TypeOf((*MockInstance)(nil).GasUsed))
}

// GetBalance mocks base method.
func (m *MockInstance) GetBalance(arg0 [20]byte) ([32]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalance", arg0)
	ret0, _ := ret[0].([32]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetBalance indicates an expected call of GetBalance.
func (mr *MockInstanceMockRecorder) GetBalance(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalance", reflect.TypeOf((*MockInstance)(nil).GetBalance), arg0)
}

// GetLog mocks base method.
func (m *MockInstance) GetLog(arg0 int, arg1 *LogEntry) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLog", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// GetLog indicates an expected call of GetLog.
func (mr *MockInstanceMockRecorder) GetLog(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLog", reflect.TypeOf((*MockInstance)(nil).GetLog), arg0, arg1)
}

// GetNonce mocks base method.
func (m *MockInstance) GetNonce(arg0 [20]byte) (uint64, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetNonce", arg0)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetNonce indicates an expected call of GetNonce.
func (mr *MockInstanceMockRecorder) GetNonce(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetNonce", reflect.TypeOf((*MockInstance)(nil).GetNonce), arg0)
}

// GetStorage mocks base method.
func (m *MockInstance) GetStorage(arg0 [20]byte, arg1 [32]byte) ([32]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorage", arg0, arg1)
	ret0, _ := ret[0].([32]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetStorage indicates an expected call of GetStorage.
func (mr *MockInstanceMockRecorder) GetStorage(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorage", reflect.TypeOf((*MockInstance)(nil).GetStorage), arg0, arg1)
}

// GetStorageChange mocks base method.
func (m *MockInstance) GetStorageChange(arg0 int) ([20]byte, [32]byte, [32]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorageChange", arg0)
	ret0, _ := ret[0].([20]byte)
	ret1, _ := ret[1].([32]byte)
	ret2, _ := ret[2].([32]byte)
	ret3, _ := ret[3].(bool)
	return ret0, ret1, ret2, ret3
}

// GetStorageChange indicates an expected call of GetStorageChange.
func (mr *MockInstanceMockRecorder) GetStorageChange(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorageChange", reflect.TypeOf((*MockInstance)(nil).GetStorageChange), arg0)
}

// IsSuccess mocks base method.
func (m *MockInstance) IsSuccess() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsSuccess")
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsSuccess indicates an expected call of IsSuccess.
func (mr *MockInstanceMockRecorder) IsSuccess() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsSuccess", reflect.TypeOf((*MockInstance)(nil).IsSuccess))
}

// LogCount mocks base method.
func (m *MockInstance) LogCount() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogCount")
	ret0, _ := ret[0].(int)
	return ret0
}

// LogCount indicates an expected call of LogCount.
func (mr *MockInstanceMockRecorder) LogCount() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogCount", reflect.TypeOf((*MockInstance)(nil).LogCount))
}

// OutputLen mocks base method.
func (m *MockInstance) OutputLen() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OutputLen")
	ret0, _ := ret[0].(int)
	return ret0
}

// OutputLen indicates an expected call of OutputLen.
func (mr *MockInstanceMockRecorder) OutputLen() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OutputLen", reflect.TypeOf((*MockInstance)(nil).OutputLen))
}

// SetAccessListAddresses mocks base method.
func (m *MockInstance) SetAccessListAddresses(arg0 [][20]byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccessListAddresses", arg0)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetAccessListAddresses indicates an expected call of SetAccessListAddresses.
func (mr *MockInstanceMockRecorder) SetAccessListAddresses(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccessListAddresses", reflect.TypeOf((*MockInstance)(nil).SetAccessListAddresses), arg0)
}

// SetAccessListStorageKeys mocks base method.
func (m *MockInstance) SetAccessListStorageKeys(arg0 []AccessKey) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccessListStorageKeys", arg0)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetAccessListStorageKeys indicates an expected call of SetAccessListStorageKeys.
func (mr *MockInstanceMockRecorder) SetAccessListStorageKeys(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccessListStorageKeys", reflect.TypeOf((*MockInstance)(nil).SetAccessListStorageKeys), arg0)
}

// SetBalance mocks base method.
func (m *MockInstance) SetBalance(arg0 [20]byte, arg1 [32]byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetBalance", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetBalance indicates an expected call of SetBalance.
func (mr *MockInstanceMockRecorder) SetBalance(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBalance", reflect.TypeOf((*MockInstance)(nil).SetBalance), arg0, arg1)
}

// SetBlobHashes mocks base method.
func (m *MockInstance) SetBlobHashes(arg0 [][32]byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetBlobHashes", arg0)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetBlobHashes indicates an expected call of SetBlobHashes.
func (mr *MockInstanceMockRecorder) SetBlobHashes(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBlobHashes", reflect.TypeOf((*MockInstance)(nil).SetBlobHashes), arg0)
}

// SetBlockchainContext mocks base method.
func (m *MockInstance) SetBlockchainContext(arg0 BlockContext) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetBlockchainContext", arg0)
}

// SetBlockchainContext indicates an expected call of SetBlockchainContext.
func (mr *MockInstanceMockRecorder) SetBlockchainContext(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBlockchainContext", reflect.TypeOf((*MockInstance)(nil).SetBlockchainContext), arg0)
}

// SetBytecode mocks base method.
func (m *MockInstance) SetBytecode(arg0 []byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetBytecode", arg0)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetBytecode indicates an expected call of SetBytecode.
func (mr *MockInstanceMockRecorder) SetBytecode(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBytecode", reflect.TypeOf((*MockInstance)(nil).SetBytecode), arg0)
}

// SetCode mocks base method.
func (m *MockInstance) SetCode(arg0 [20]byte, arg1 []byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetCode", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetCode indicates an expected call of SetCode.
func (mr *MockInstanceMockRecorder) SetCode(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetCode", reflect.TypeOf((*MockInstance)(nil).SetCode), arg0, arg1)
}

// SetExecutionContext mocks base method.
func (m *MockInstance) SetExecutionContext(arg0 int64, arg1 [20]byte, arg2 [20]byte, arg3 [32]byte, arg4 []byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetExecutionContext", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetExecutionContext indicates an expected call of SetExecutionContext.
func (mr *MockInstanceMockRecorder) SetExecutionContext(arg0, arg1, arg2, arg3, arg4 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetExecutionContext", reflect.TypeOf((*MockInstance)(nil).SetExecutionContext), arg0, arg1, arg2, arg3, arg4)
}

// SetNonce mocks base method.
func (m *MockInstance) SetNonce(arg0 [20]byte, arg1 uint64) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetNonce", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetNonce indicates an expected call of SetNonce.
func (mr *MockInstanceMockRecorder) SetNonce(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetNonce", reflect.TypeOf((*MockInstance)(nil).SetNonce), arg0, arg1)
}

// SetStorage mocks base method.
func (m *MockInstance) SetStorage(arg0 [20]byte, arg1 [32]byte, arg2 [32]byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetStorage", arg0, arg1, arg2)
	ret0, _ := ret[0].(bool)
	return ret0
}

// SetStorage indicates an expected call of SetStorage.
func (mr *MockInstanceMockRecorder) SetStorage(arg0, arg1, arg2 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetStorage", reflect.TypeOf((*MockInstance)(nil).SetStorage), arg0, arg1, arg2)
}

// StorageChangeCount mocks base method.
func (m *MockInstance) StorageChangeCount() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StorageChangeCount")
	ret0, _ := ret[0].(int)
	return ret0
}

// StorageChangeCount indicates an expected call of StorageChangeCount.
func (mr *MockInstanceMockRecorder) StorageChangeCount() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StorageChangeCount", reflect.TypeOf((*MockInstance)(nil).StorageChangeCount))
}

// MockConfig is a mock of Config interface.
type MockConfig struct {
	ctrl     *gomock.Controller
	recorder *MockConfigMockRecorder
}

// MockConfigMockRecorder is the mock recorder for MockConfig.
type MockConfigMockRecorder struct {
	mock *MockConfig
}

// NewMockConfig creates a new mock instance.
func NewMockConfig(ctrl *gomock.Controller) *MockConfig {
	mock := &MockConfig{ctrl: ctrl}
	mock.recorder = &MockConfigMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConfig) EXPECT() *MockConfigMockRecorder {
	return m.recorder
}

// AddOpcodeOverride mocks base method.
func (m *MockConfig) AddOpcodeOverride(arg0 byte, arg1 CallbackID) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddOpcodeOverride", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// AddOpcodeOverride indicates an expected call of AddOpcodeOverride.
func (mr *MockConfigMockRecorder) AddOpcodeOverride(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddOpcodeOverride", reflect.TypeOf((*MockConfig)(nil).AddOpcodeOverride), arg0, arg1)
}

// AddPrecompileOverride mocks base method.
func (m *MockConfig) AddPrecompileOverride(arg0 [20]byte, arg1 CallbackID) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddPrecompileOverride", arg0, arg1)
	ret0, _ := ret[0].(bool)
	return ret0
}

// AddPrecompileOverride indicates an expected call of AddPrecompileOverride.
func (mr *MockConfigMockRecorder) AddPrecompileOverride(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddPrecompileOverride", reflect.TypeOf((*MockConfig)(nil).AddPrecompileOverride), arg0, arg1)
}

// Destroy mocks base method.
func (m *MockConfig) Destroy() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Destroy")
}

// Destroy indicates an expected call of Destroy.
func (mr *MockConfigMockRecorder) Destroy() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Destroy", reflect.TypeOf((*MockConfig)(nil).Destroy))
}

// EnableSystemContracts mocks base method.
func (m *MockConfig) EnableSystemContracts(arg0 bool, arg1 bool, arg2 bool, arg3 bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "EnableSystemContracts", arg0, arg1, arg2, arg3)
}

// EnableSystemContracts indicates an expected call of EnableSystemContracts.
func (mr *MockConfigMockRecorder) EnableSystemContracts(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnableSystemContracts", reflect.TypeOf((*MockConfig)(nil).EnableSystemContracts), arg0, arg1, arg2, arg3)
}

// SetBlockGasLimit mocks base method.
func (m *MockConfig) SetBlockGasLimit(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetBlockGasLimit", arg0)
}

// SetBlockGasLimit indicates an expected call of SetBlockGasLimit.
func (mr *MockConfigMockRecorder) SetBlockGasLimit(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBlockGasLimit", reflect.TypeOf((*MockConfig)(nil).SetBlockGasLimit), arg0)
}

// SetHardfork mocks base method.
func (m *MockConfig) SetHardfork(arg0 string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetHardfork", arg0)
}

// SetHardfork indicates an expected call of SetHardfork.
func (mr *MockConfigMockRecorder) SetHardfork(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetHardfork", reflect.TypeOf((*MockConfig)(nil).SetHardfork), arg0)
}

// SetLoopQuota mocks base method.
func (m *MockConfig) SetLoopQuota(arg0 uint32) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetLoopQuota", arg0)
}

// SetLoopQuota indicates an expected call of SetLoopQuota.
func (mr *MockConfigMockRecorder) SetLoopQuota(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetLoopQuota", reflect.TypeOf((*MockConfig)(nil).SetLoopQuota), arg0)
}

// SetMaxBytecodeSize mocks base method.
func (m *MockConfig) SetMaxBytecodeSize(arg0 uint32) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetMaxBytecodeSize", arg0)
}

// SetMaxBytecodeSize indicates an expected call of SetMaxBytecodeSize.
func (mr *MockConfigMockRecorder) SetMaxBytecodeSize(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMaxBytecodeSize", reflect.TypeOf((*MockConfig)(nil).SetMaxBytecodeSize), arg0)
}

// SetMaxCallDepth mocks base method.
func (m *MockConfig) SetMaxCallDepth(arg0 uint16) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetMaxCallDepth", arg0)
}

// SetMaxCallDepth indicates an expected call of SetMaxCallDepth.
func (mr *MockConfigMockRecorder) SetMaxCallDepth(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMaxCallDepth", reflect.TypeOf((*MockConfig)(nil).SetMaxCallDepth), arg0)
}

// SetMaxInitcodeSize mocks base method.
func (m *MockConfig) SetMaxInitcodeSize(arg0 uint32) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetMaxInitcodeSize", arg0)
}

// SetMaxInitcodeSize indicates an expected call of SetMaxInitcodeSize.
func (mr *MockConfigMockRecorder) SetMaxInitcodeSize(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMaxInitcodeSize", reflect.TypeOf((*MockConfig)(nil).SetMaxInitcodeSize), arg0)
}

// SetMemoryInitialCapacity mocks base method.
func (m *MockConfig) SetMemoryInitialCapacity(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetMemoryInitialCapacity", arg0)
}

// SetMemoryInitialCapacity indicates an expected call of SetMemoryInitialCapacity.
func (mr *MockConfigMockRecorder) SetMemoryInitialCapacity(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMemoryInitialCapacity", reflect.TypeOf((*MockConfig)(nil).SetMemoryInitialCapacity), arg0)
}

// SetMemoryLimit mocks base method.
func (m *MockConfig) SetMemoryLimit(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetMemoryLimit", arg0)
}

// SetMemoryLimit indicates an expected call of SetMemoryLimit.
func (mr *MockConfigMockRecorder) SetMemoryLimit(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMemoryLimit", reflect.TypeOf((*MockConfig)(nil).SetMemoryLimit), arg0)
}

// SetStackSize mocks base method.
func (m *MockConfig) SetStackSize(arg0 uint16) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetStackSize", arg0)
}

// SetStackSize indicates an expected call of SetStackSize.
func (mr *MockConfigMockRecorder) SetStackSize(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetStackSize", reflect.TypeOf((*MockConfig)(nil).SetStackSize), arg0)
}
