// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

//go:build guillotine

package mini

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/Fantom-foundation/Guillotine/go/native"
)

// The functions in this file are called by the engine through the gateways
// declared in guillotine.go. They run on whatever thread the engine uses
// and must not panic; the callback table already recovers handler panics.

//export guillotineOpcodeTrampoline
func guillotineOpcodeTrampoline(id C.uintptr_t, frame C.size_t, opcode C.uint8_t) C.bool {
	return C.bool(native.InvokeOpcodeHandler(native.CallbackID(id), uintptr(frame), byte(opcode)))
}

//export guillotinePrecompileTrampoline
func guillotinePrecompileTrampoline(
	id C.uintptr_t,
	address *C.uint8_t,
	input *C.uint8_t,
	inputLen C.size_t,
	gasLimit C.uint64_t,
	output **C.uint8_t,
	outputLen *C.size_t,
	gasUsed *C.uint64_t,
) C.bool {
	if address == nil || output == nil || outputLen == nil || gasUsed == nil {
		return false
	}
	var addr [20]byte
	copy(addr[:], unsafe.Slice((*byte)(unsafe.Pointer(address)), len(addr)))

	var data []byte
	if input != nil && inputLen > 0 {
		// The input is copied since handlers may retain it.
		data = C.GoBytes(unsafe.Pointer(input), C.int(inputLen))
	}

	res, ok := native.InvokePrecompileHandler(native.CallbackID(id), addr, data, uint64(gasLimit))
	if !ok {
		return false
	}

	// The output buffer is allocated with malloc and owned by the engine
	// from here on.
	*output = nil
	if len(res.Output) > 0 {
		*output = (*C.uint8_t)(C.CBytes(res.Output))
	}
	*outputLen = C.size_t(len(res.Output))
	*gasUsed = C.uint64_t(res.GasUsed)
	return true
}
