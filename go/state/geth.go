// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

//go:generate mockgen -source geth.go -destination geth_mock.go -package state

import (
	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// GethStateReader is the read-only subset of go-ethereum's vm.StateDB
// needed to serve a guillotine.Database.
type GethStateReader interface {
	Exist(common.Address) bool
	GetBalance(common.Address) *uint256.Int
	GetNonce(common.Address) uint64
	GetCodeHash(common.Address) common.Hash
	GetCode(common.Address) []byte
	GetState(common.Address, common.Hash) common.Hash
}

// Geth serves a guillotine.Database from a go-ethereum state. Reads of the
// same code are served from an optional CodeCache.
type Geth struct {
	state GethStateReader
	codes *CodeCache
}

var _ guillotine.Database = (*Geth)(nil)

// NewGeth creates a database reading from the given state. The cache may be
// nil.
func NewGeth(state GethStateReader, codes *CodeCache) *Geth {
	return &Geth{state: state, codes: codes}
}

func (g *Geth) Basic(address guillotine.Address) (*guillotine.AccountInfo, error) {
	addr := common.Address(address)
	if !g.state.Exist(addr) {
		return nil, nil
	}
	res := &guillotine.AccountInfo{
		Balance: guillotine.ValueFromUint256(g.state.GetBalance(addr)),
		Nonce:   g.state.GetNonce(addr),
	}
	hash := g.state.GetCodeHash(addr)
	if hash == (common.Hash{}) || hash == types.EmptyCodeHash {
		return res, nil
	}
	res.Code = g.codes.Get(guillotine.Hash(hash), func() guillotine.Code {
		return g.state.GetCode(addr)
	})
	return res, nil
}

func (g *Geth) Storage(address guillotine.Address, key guillotine.Key) (guillotine.Word, error) {
	return guillotine.Word(g.state.GetState(common.Address(address), common.Hash(key))), nil
}
