// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package native

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// This file provides the process-wide table of Go closures reachable from
// native code. Native engines only ever see a CallbackID, passed back to
// Go through a trampoline together with the call's arguments. The table
// keeps each closure alive until its id is released.

// CallbackID identifies a registered closure. The zero id is never handed
// out and represents "no callback".
type CallbackID uintptr

// OpcodeHandler is invoked by the engine instead of its built-in handler of
// an overridden opcode. Returning true signals that the opcode was handled
// and the default handler must be skipped; returning false makes the engine
// run its default handler.
type OpcodeHandler func(frame uintptr, opcode byte) bool

// PrecompileHandler implements a precompiled contract. A non-nil error
// reports a failed precompile call to the engine.
type PrecompileHandler func(address [20]byte, input []byte, gasLimit uint64) (PrecompileResult, error)

// PrecompileResult is the outcome of a successful precompile call.
type PrecompileResult struct {
	Output  []byte
	GasUsed uint64
}

var (
	ErrPrecompileOutOfGas     = errors.New("precompile out of gas")
	ErrPrecompileInvalidInput = errors.New("precompile invalid input")
)

var (
	callbacks     sync.Map // map[CallbackID]any
	callbackSeq   atomic.Uintptr
	liveCallbacks atomic.Int64
)

// RegisterOpcodeHandler registers the given handler and returns the id
// under which native code may invoke it. A nil handler yields the zero id.
func RegisterOpcodeHandler(handler OpcodeHandler) CallbackID {
	if handler == nil {
		return 0
	}
	return register(handler)
}

// RegisterPrecompileHandler registers the given handler and returns the id
// under which native code may invoke it. A nil handler yields the zero id.
func RegisterPrecompileHandler(handler PrecompileHandler) CallbackID {
	if handler == nil {
		return 0
	}
	return register(handler)
}

func register(handler any) CallbackID {
	id := CallbackID(callbackSeq.Add(1))
	callbacks.Store(id, handler)
	liveCallbacks.Add(1)
	return id
}

// ReleaseCallback removes the closure registered under the given id. After
// this call, invocations of the id are reported as unhandled. Releasing an
// unknown id is a no-op.
func ReleaseCallback(id CallbackID) {
	if _, found := callbacks.LoadAndDelete(id); found {
		liveCallbacks.Add(-1)
	}
}

// LiveCallbacks returns the number of currently registered closures.
func LiveCallbacks() int {
	return int(liveCallbacks.Load())
}

// InvokeOpcodeHandler runs the opcode handler registered under the given
// id. Unknown ids, ids of other handler kinds, and panicking handlers are
// reported as unhandled.
func InvokeOpcodeHandler(id CallbackID, frame uintptr, opcode byte) (handled bool) {
	entry, found := callbacks.Load(id)
	if !found {
		return false
	}
	handler, ok := entry.(OpcodeHandler)
	if !ok {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("opcode handler panicked",
				zap.Uint8("opcode", opcode), zap.Any("panic", r))
			handled = false
		}
	}()
	return handler(frame, opcode)
}

// InvokePrecompileHandler runs the precompile handler registered under the
// given id. The result is false if the id is unknown, the handler fails, or
// the handler panics.
func InvokePrecompileHandler(id CallbackID, address [20]byte, input []byte, gasLimit uint64) (res PrecompileResult, success bool) {
	entry, found := callbacks.Load(id)
	if !found {
		return PrecompileResult{}, false
	}
	handler, ok := entry.(PrecompileHandler)
	if !ok {
		return PrecompileResult{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("precompile handler panicked",
				zap.String("address", fmt.Sprintf("0x%x", address[:])), zap.Any("panic", r))
			res, success = PrecompileResult{}, false
		}
	}()
	res, err := handler(address, input, gasLimit)
	if err != nil {
		Logger().Debug("precompile handler failed",
			zap.String("address", fmt.Sprintf("0x%x", address[:])), zap.Error(err))
		return PrecompileResult{}, false
	}
	if res.GasUsed > gasLimit {
		return PrecompileResult{}, false
	}
	return res, true
}
