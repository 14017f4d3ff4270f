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
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rand"
)

func TestAddress_JSON_Encoding(t *testing.T) {
	addr := Address{0x01, 0x02, 19: 0xff}
	encoded, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("failed to encode address: %v", err)
	}
	if want, got := `"0x01020000000000000000000000000000000000ff"`, string(encoded); want != got {
		t.Errorf("unexpected encoding, wanted %s, got %s", want, got)
	}
	var restored Address
	if err := json.Unmarshal(encoded, &restored); err != nil {
		t.Fatalf("failed to decode address: %v", err)
	}
	if restored != addr {
		t.Errorf("unexpected decoded address, wanted %v, got %v", addr, restored)
	}
}

func TestAddress_JSON_InvalidValueDecodingFails(t *testing.T) {
	inputs := []string{
		`"01020000000000000000000000000000000000ff"`,
		`"0x0102"`,
		`"0x01020000000000000000000000000000000000ff00"`,
		`"0xzz020000000000000000000000000000000000ff"`,
		`12`,
	}
	for _, input := range inputs {
		var addr Address
		if err := json.Unmarshal([]byte(input), &addr); err == nil {
			t.Errorf("expected decoding of %s to fail, got %v", input, addr)
		}
	}
}

func TestCode_EmptyAndNilCodeHaveTheSameHash(t *testing.T) {
	if want, got := Code(nil).Hash(), (Code{}).Hash(); want != got {
		t.Errorf("unexpected hash of empty code, wanted %v, got %v", want, got)
	}
	want := Hash{0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c, 0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7, 0x03, 0xc0,
		0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b, 0x7b, 0xfa, 0xd8, 0x04, 0x5d, 0x85, 0xa4, 0x70}
	if got := Code(nil).Hash(); want != got {
		t.Errorf("unexpected empty code hash, wanted %v, got %v", want, got)
	}
	if Code([]byte{0x00}).Hash() == want {
		t.Errorf("non-empty code should not have the empty code hash")
	}
}

func TestData_JSON_Encoding(t *testing.T) {
	tests := map[string]Data{
		`"0x"`:       {},
		`"0x010203"`: {1, 2, 3},
	}
	for want, data := range tests {
		encoded, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("failed to encode data: %v", err)
		}
		if got := string(encoded); want != got {
			t.Errorf("unexpected encoding, wanted %s, got %s", want, got)
		}
	}
}

func TestValue_NewValue(t *testing.T) {
	tests := map[string]Value{
		"0":                    NewValue(),
		"1":                    NewValue(1),
		"18446744073709551616": NewValue(1, 0),
	}
	for want, value := range tests {
		if got := value.String(); want != got {
			t.Errorf("unexpected value, wanted %s, got %s", want, got)
		}
	}
}

func TestValue_ParseValue(t *testing.T) {
	tests := map[string]Value{
		"0":                    {},
		"1000":                 NewValue(1000),
		"0x10":                 NewValue(16),
		"0x0010":               NewValue(16),
		"18446744073709551616": NewValue(1, 0),
	}
	for input, want := range tests {
		got, err := ParseValue(input)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", input, err)
		}
		if want != got {
			t.Errorf("unexpected result for %q, wanted %v, got %v", input, want, got)
		}
	}
}

func TestValue_ParseValueRejectsInvalidInput(t *testing.T) {
	tooLarge := "0x1" + strings.Repeat("0", 64)
	inputs := []string{"", "abc", "-1", "0x", "0xgg", tooLarge}
	for _, input := range inputs {
		if _, err := ParseValue(input); err == nil {
			t.Errorf("expected parsing of %q to fail", input)
		}
	}
}

func TestValue_FromBigRejectsOutOfRangeValues(t *testing.T) {
	tooLarge := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := ValueFromBig(tooLarge); err == nil {
		t.Errorf("expected conversion of 2^256 to fail")
	}
	if _, err := ValueFromBig(big.NewInt(-1)); err == nil {
		t.Errorf("expected conversion of negative value to fail")
	}
	if got, err := ValueFromBig(nil); err != nil || !got.IsZero() {
		t.Errorf("expected nil to convert to zero, got %v, %v", got, err)
	}
}

func TestValue_ConversionsRoundTrip(t *testing.T) {
	r := rand.New(42)
	for i := 0; i < 100; i++ {
		var v Value
		r.Read(v[:])

		if got := ValueFromUint256(v.ToUint256()); got != v {
			t.Errorf("uint256 round trip failed, wanted %v, got %v", v, got)
		}
		got, err := ValueFromBig(v.ToBig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != v {
			t.Errorf("big.Int round trip failed, wanted %v, got %v", v, got)
		}
		parsed, err := ParseValue(v.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != v {
			t.Errorf("decimal round trip failed, wanted %v, got %v", v, parsed)
		}
	}
}

func TestValue_Comparison(t *testing.T) {
	a := NewValue(1)
	b := NewValue(1, 0)
	if a.Cmp(b) >= 0 || b.Cmp(a) <= 0 || a.Cmp(a) != 0 {
		t.Errorf("unexpected comparison results")
	}
	if !ValueFromUint256(nil).IsZero() {
		t.Errorf("nil uint256 should convert to zero")
	}
	if got := ValueFromUint256(uint256.NewInt(7)); got != NewValue(7) {
		t.Errorf("unexpected conversion, got %v", got)
	}
}
