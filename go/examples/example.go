// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides contracts with a (uint32)->uint32 entry point
// and a Go reference of the computed function. They are used to check and
// compare native engines on real bytecode.
package examples

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/state"
)

// Example is a contract and an entry point with a (uint32)->uint32 signature.
type Example struct {
	Name      string
	Code      guillotine.Code
	function  uint32        // selector of the function called in the contract
	reference func(int) int // computes the same function in Go
}

// Result summarizes the execution of an example.
type Result struct {
	Result  int
	UsedGas guillotine.Gas
}

var (
	// Caller is the sender of example transactions.
	Caller = guillotine.Address{0x10}
	// Contract is the address example code is installed at.
	Contract = guillotine.Address{0xC0}
)

const gasLimit guillotine.Gas = 10_000_000

// RunOn executes the example in a transaction calling the contract with the
// given argument in the given revision.
func (e *Example) RunOn(ctx context.Context, executor guillotine.Executor, revision guillotine.Revision, argument int) (Result, error) {
	db := state.NewMemory()
	db.SetCode(Contract, e.Code)

	block := guillotine.BlockParameters{
		ChainID:  guillotine.Word{31: 1},
		GasLimit: gasLimit,
		Revision: revision,
	}
	tx := guillotine.Transaction{
		Sender:    Caller,
		Recipient: &Contract,
		Input:     e.input(argument),
		GasLimit:  gasLimit,
	}
	outcome, err := executor.Transact(ctx, block, tx, db)
	if err != nil {
		return Result{}, err
	}
	if _, reverted := outcome.(guillotine.Revert); reverted {
		return Result{}, fmt.Errorf("%s reverted after %d gas", e.Name, outcome.Used())
	}
	result, err := decodeOutput(outcome.Returned())
	if err != nil {
		return Result{}, err
	}
	return Result{
		Result:  result,
		UsedGas: outcome.Used(),
	}, nil
}

// RunReference computes the expected result of the example in Go.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

// input encodes a call of the example's function following the Solidity
// ABI: a big-endian selector followed by the argument padded to 32 bytes.
func (e *Example) input(argument int) guillotine.Data {
	data := make([]byte, 4+32)
	binary.BigEndian.PutUint32(data, e.function)
	binary.BigEndian.PutUint32(data[4+28:], uint32(argument))
	return data
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return int(binary.BigEndian.Uint32(output[28:])), nil
}

// GetExample looks up an example by name. The result is nil if there is no
// such example.
func GetExample(name string) *Example {
	for _, example := range GetAllExamples() {
		if example.Name == name {
			return &example
		}
	}
	return nil
}

// GetAllExamples lists all examples ordered by name.
func GetAllExamples() []Example {
	res := []Example{
		GetArithmeticExample(),
		GetSha3Example(),
		GetStaticOverheadExample(),
		GetJumpdestAnalysisExample(),
		GetPush1AnalysisExample(),
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}
