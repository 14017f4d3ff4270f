// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmc

import "github.com/ethereum/evmc/v11/bindings/go/evmc"

const (
	TxGas                     = 21_000
	TxGasContractCreation     = 53_000
	TxDataZeroGas             = 4
	TxDataNonZeroGasFrontier  = 68
	TxDataNonZeroGasEIP2028   = 16
	TxAccessListAddressGas    = 2400
	TxAccessListStorageKeyGas = 1900
	InitCodeWordGas           = 2
)

// intrinsicGas computes the gas charged for a transaction before any code
// is executed. For creations, data is the init code.
func intrinsicGas(revision evmc.Revision, creation bool, data []byte, addresses, keys int) int64 {
	gas := int64(TxGas)
	if creation && revision >= evmc.Homestead {
		gas = TxGasContractCreation
	}

	nonZeroCost := int64(TxDataNonZeroGasFrontier)
	if revision >= evmc.Istanbul {
		nonZeroCost = TxDataNonZeroGasEIP2028
	}
	for _, b := range data {
		if b == 0 {
			gas += TxDataZeroGas
		} else {
			gas += nonZeroCost
		}
	}

	if creation && revision >= evmc.Shanghai {
		gas += int64((len(data)+31)/32) * InitCodeWordGas
	}

	gas += int64(addresses) * TxAccessListAddressGas
	gas += int64(keys) * TxAccessListStorageKeyGas
	return gas
}
