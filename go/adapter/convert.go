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
	"math"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// This file contains the conversions between the host's value types and the
// fixed-width byte arrays of the native ABI. All 256-bit quantities are
// big-endian on both sides.

// GasFromNative converts a signed gas value reported by a native engine into
// a host gas value. Negative values are clamped to zero.
func GasFromNative(gas int64) guillotine.Gas {
	if gas < 0 {
		return 0
	}
	return guillotine.Gas(gas)
}

// GasToNative converts a host gas value into the signed representation used
// by the native ABI. The second result is false if the value is not
// representable.
func GasToNative(gas guillotine.Gas) (int64, bool) {
	if gas > math.MaxInt64 {
		return math.MaxInt64, false
	}
	return int64(gas), true
}

func toNativeBlockContext(block guillotine.BlockParameters) native.BlockContext {
	return native.BlockContext{
		ChainID:     block.ChainID,
		Number:      block.BlockNumber,
		Timestamp:   block.Timestamp,
		Difficulty:  block.Difficulty,
		PrevRandao:  block.PrevRandao,
		Coinbase:    block.Coinbase,
		GasLimit:    uint64(block.GasLimit),
		BaseFee:     block.BaseFee,
		BlobBaseFee: block.BlobBaseFee,
	}
}

// toNativeAccessList flattens an access list into its distinct addresses
// and distinct (address, key) pairs, both in order of first occurrence.
func toNativeAccessList(list []guillotine.AccessTuple) ([][20]byte, []native.AccessKey) {
	var addresses [][20]byte
	var keys []native.AccessKey
	seenAddresses := map[guillotine.Address]struct{}{}
	seenKeys := map[native.AccessKey]struct{}{}
	for _, tuple := range list {
		if _, found := seenAddresses[tuple.Address]; !found {
			seenAddresses[tuple.Address] = struct{}{}
			addresses = append(addresses, tuple.Address)
		}
		for _, key := range tuple.Keys {
			entry := native.AccessKey{Address: tuple.Address, Key: key}
			if _, found := seenKeys[entry]; !found {
				seenKeys[entry] = struct{}{}
				keys = append(keys, entry)
			}
		}
	}
	return addresses, keys
}

func toNativeHashes(hashes []guillotine.Hash) [][32]byte {
	res := make([][32]byte, len(hashes))
	for i, hash := range hashes {
		res[i] = hash
	}
	return res
}

func logFromNative(entry *native.LogEntry) guillotine.Log {
	log := guillotine.Log{
		Address: entry.Address,
		Topics:  make([]guillotine.Hash, entry.TopicCount),
		Data:    guillotine.Data(entry.Data[:entry.DataLen:entry.DataLen]),
	}
	for i := range log.Topics {
		log.Topics[i] = entry.Topics[i]
	}
	return log
}

// ToGethLogs converts logs into go-ethereum's representation, annotated with
// the given block and transaction coordinates. Log indices are assigned in
// emission order starting at firstIndex.
func ToGethLogs(logs []guillotine.Log, blockNumber uint64, txHash common.Hash, txIndex uint, firstIndex uint) []*types.Log {
	res := make([]*types.Log, 0, len(logs))
	for i, log := range logs {
		topics := make([]common.Hash, len(log.Topics))
		for j, topic := range log.Topics {
			topics[j] = common.Hash(topic)
		}
		res = append(res, &types.Log{
			Address:     common.Address(log.Address),
			Topics:      topics,
			Data:        common.CopyBytes(log.Data),
			BlockNumber: blockNumber,
			TxHash:      txHash,
			TxIndex:     txIndex,
			Index:       firstIndex + uint(i),
		})
	}
	return res
}
