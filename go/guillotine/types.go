// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package guillotine

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Key represents the 256-bit (32 bytes) key of a storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 byte) word in the EVM.
type Word [32]byte

// Value represents an amount of chain currency, typically wei, encoded as a
// big-endian 256-bit unsigned integer.
type Value [32]byte

// Hash represents the 256-bit (32 bytes) hash of a code, a block, a topic
// or similar sequence of cryptographic summary information.
type Hash [32]byte

// Code represents the byte-code of a contract. A nil and an empty code are
// the same state.
type Code []byte

// Data represents the input or output of contract invocations.
type Data []byte

// Gas represents the type used to represent the Gas values.
type Gas uint64

// emptyCodeHash is the keccak256 hash of an empty code.
var emptyCodeHash = Hash(crypto.Keccak256Hash(nil))

// Hash computes the keccak256 hash of the code. The hash of an empty code
// is the well known empty-code hash.
func (c Code) Hash() Hash {
	if len(c) == 0 {
		return emptyCodeHash
	}
	return Hash(crypto.Keccak256Hash(c))
}

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

func (k Key) String() string {
	return fmt.Sprintf("0x%x", k[:])
}

func (k Key) MarshalText() ([]byte, error) {
	return bytesToText(k[:])
}

func (k *Key) UnmarshalText(data []byte) error {
	return textToBytes(k[:], data)
}

func (w Word) String() string {
	return fmt.Sprintf("0x%x", w[:])
}

func (w Word) MarshalText() ([]byte, error) {
	return bytesToText(w[:])
}

func (w *Word) UnmarshalText(data []byte) error {
	return textToBytes(w[:], data)
}

func (w Word) IsZero() bool {
	return w == Word{}
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

// NewValue creates a new Value instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a value of zero.
func NewValue(args ...uint64) (result Value) {
	if len(args) > 4 {
		panic("Too many arguments")
	}
	offset := 4 - len(args)
	for i, arg := range args {
		start := (offset + i) * 8
		binary.BigEndian.PutUint64(result[start:start+8], arg)
	}
	return
}

// ValueFromUint256 converts a *uint256.Int to a Value. A nil input is zero.
func ValueFromUint256(value *uint256.Int) (result Value) {
	if value == nil {
		return result
	}
	return value.Bytes32()
}

// ValueFromBig converts a non-negative *big.Int to a Value. The conversion
// fails for negative inputs and inputs exceeding 256 bits.
func ValueFromBig(value *big.Int) (Value, error) {
	if value == nil {
		return Value{}, nil
	}
	v, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return Value{}, fmt.Errorf("value %v out of range", value)
	}
	return v.Bytes32(), nil
}

// ParseValue parses a decimal or 0x-prefixed hexadecimal number.
func ParseValue(s string) (Value, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return Value{}, fmt.Errorf("invalid value %q", s)
		}
		return ValueFromBig(b)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v.Bytes32(), nil
}

func (v Value) ToBig() *big.Int {
	return new(big.Int).SetBytes(v[:])
}

func (v Value) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(v[:])
}

func (v Value) IsZero() bool {
	return v == Value{}
}

func (v Value) String() string {
	return v.ToUint256().String()
}

func (v Value) Cmp(o Value) int {
	return bytes.Compare(v[:], o[:])
}

func (v Value) MarshalText() ([]byte, error) {
	return bytesToText(v[:])
}

// UnmarshalText accepts every format supported by ParseValue.
func (v *Value) UnmarshalText(data []byte) error {
	res, err := ParseValue(string(data))
	if err != nil {
		return err
	}
	*v = res
	return nil
}

func (c Code) MarshalText() ([]byte, error) {
	return bytesToText(c)
}

func (c *Code) UnmarshalText(data []byte) error {
	res, err := textToVarBytes(data)
	if err != nil {
		return err
	}
	*c = res
	return nil
}

func (d Data) MarshalText() ([]byte, error) {
	return bytesToText(d)
}

func (d *Data) UnmarshalText(data []byte) error {
	res, err := textToVarBytes(data)
	if err != nil {
		return err
	}
	*d = res
	return nil
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	decoded, err := textToVarBytes(data)
	if err != nil {
		return err
	}
	if want, got := len(trg), len(decoded); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg, decoded)
	return nil
}

func textToVarBytes(data []byte) ([]byte, error) {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return nil, fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	return hex.DecodeString(s[2:])
}
