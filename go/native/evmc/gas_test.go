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

import (
	"testing"

	"github.com/ethereum/evmc/v11/bindings/go/evmc"
)

func TestIntrinsicGas(t *testing.T) {
	tests := map[string]struct {
		revision  evmc.Revision
		creation  bool
		data      []byte
		addresses int
		keys      int
		want      int64
	}{
		"transfer":              {revision: evmc.Cancun, want: TxGas},
		"calldata":              {revision: evmc.Cancun, data: []byte{0, 1, 0}, want: TxGas + 2*TxDataZeroGas + TxDataNonZeroGasEIP2028},
		"calldata pre Istanbul": {revision: evmc.Petersburg, data: []byte{1}, want: TxGas + TxDataNonZeroGasFrontier},
		"frontier creation":     {revision: evmc.Frontier, creation: true, want: TxGas},
		"creation":              {revision: evmc.London, creation: true, data: []byte{0}, want: TxGasContractCreation + TxDataZeroGas},
		"shanghai creation":     {revision: evmc.Shanghai, creation: true, data: make([]byte, 33), want: TxGasContractCreation + 33*TxDataZeroGas + 2*InitCodeWordGas},
		"access list":           {revision: evmc.Berlin, addresses: 2, keys: 3, want: TxGas + 2*TxAccessListAddressGas + 3*TxAccessListStorageKeyGas},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := intrinsicGas(test.revision, test.creation, test.data, test.addresses, test.keys)
			if got != test.want {
				t.Errorf("unexpected intrinsic gas, wanted %d, got %d", test.want, got)
			}
		})
	}
}
