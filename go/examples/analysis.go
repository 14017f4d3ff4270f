// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// maxAnalysisCodeSize is the largest contract an engine accepts from
// Spurious Dragon on.
const maxAnalysisCodeSize = 0x6000

// analysisCode builds a contract of maximum size returning its argument.
// The bulk of the code is the repeated filler which is jumped over, so the
// cost of executing it is dominated by the engine's code analysis.
func analysisCode(filler []byte) []byte {
	prefix := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH2), 0, 0, // patched below
		byte(vm.JUMP),
	}
	suffix := []byte{
		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	repetitions := (maxAnalysisCodeSize - len(prefix) - len(suffix)) / len(filler)
	code := make([]byte, 0, maxAnalysisCodeSize)
	code = append(code, prefix...)
	for i := 0; i < repetitions; i++ {
		code = append(code, filler...)
	}
	target := len(code)
	code[7] = byte(target >> 8)
	code[8] = byte(target)
	return append(code, suffix...)
}

// GetJumpdestAnalysisExample provides a contract consisting mostly of jump
// destinations.
func GetJumpdestAnalysisExample() Example {
	return Example{
		Name:      "jumpdest",
		Code:      analysisCode([]byte{byte(vm.JUMPDEST)}),
		reference: identity,
	}
}

// GetPush1AnalysisExample provides a contract consisting mostly of PUSH1
// instructions whose data looks like jump destinations.
func GetPush1AnalysisExample() Example {
	return Example{
		Name:      "push1",
		Code:      analysisCode([]byte{byte(vm.PUSH1), byte(vm.JUMPDEST)}),
		reference: identity,
	}
}
