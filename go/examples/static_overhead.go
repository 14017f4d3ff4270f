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

// GetStaticOverheadExample provides a minimal contract returning its
// argument. It copies call data into memory and returns a non-empty output,
// so its cost is dominated by the per-transaction overhead of an engine.
func GetStaticOverheadExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4, // size
		byte(vm.PUSH1), 32, // offset in call data
		byte(vm.PUSH1), 28, // offset in memory
		byte(vm.CALLDATACOPY),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}
	return Example{
		Name:      "static_overhead",
		Code:      code,
		reference: identity,
	}
}

func identity(x int) int {
	return x
}
