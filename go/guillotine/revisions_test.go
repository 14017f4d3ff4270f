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
	"testing"

	"github.com/ethereum/go-ethereum/params"
)

func TestRevisions_Marshal(t *testing.T) {
	tests := map[Revision]string{
		R00_Frontier:            "\"Frontier\"",
		R09_Istanbul:            "\"Istanbul\"",
		R11_Berlin:              "\"Berlin\"",
		R12_London:              "\"London\"",
		R17_Cancun:              "\"Cancun\"",
		R19_Osaka:               "\"Osaka\"",
		R99_UnknownNextRevision: "\"UnknownNextRevision\"",
	}

	for input, expected := range tests {
		marshaled, err := input.MarshalJSON()
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if !bytes.Equal(marshaled, []byte(expected)) {
			t.Errorf("Unexpected marshaled revision, wanted: %v vs got: %v", expected, string(marshaled))
		}
	}
}

func TestRevisions_MarshalError(t *testing.T) {
	revisions := []Revision{Revision(-1), Revision(42), Revision(100)}
	for _, rev := range revisions {
		marshaled, err := rev.MarshalJSON()
		if err == nil {
			t.Errorf("Expected error but got: %v", marshaled)
		}
	}
}

func TestRevisions_UnmarshalRoundTrip(t *testing.T) {
	for _, rev := range append(GetAllKnownRevisions(), R99_UnknownNextRevision) {
		encoded, err := rev.MarshalJSON()
		if err != nil {
			t.Fatalf("failed to encode %v: %v", rev, err)
		}
		var restored Revision
		if err := restored.UnmarshalJSON(encoded); err != nil {
			t.Fatalf("failed to decode %s: %v", encoded, err)
		}
		if restored != rev {
			t.Errorf("unexpected revision, wanted %v, got %v", rev, restored)
		}
	}
}

func TestRevisions_UnmarshalError(t *testing.T) {
	inputs := []string{"Error", "\"Revision(42)\"", "Istanbul", "\"istanbul\""}
	for _, input := range inputs {
		var rev Revision
		err := rev.UnmarshalJSON([]byte(input))
		if err == nil {
			t.Errorf("Expected error but got: %v", rev)
		}
	}
}

func TestRevisions_KnownRevisionsAreOrdered(t *testing.T) {
	revisions := GetAllKnownRevisions()
	if want, got := int(R19_Osaka)+1, len(revisions); want != got {
		t.Fatalf("unexpected number of revisions, wanted %d, got %d", want, got)
	}
	for i, rev := range revisions {
		if int(rev) != i {
			t.Errorf("unexpected revision at position %d: %v", i, rev)
		}
	}
}

func TestRevisions_FromChainRules(t *testing.T) {
	tests := []struct {
		rules params.Rules
		want  Revision
	}{
		{params.Rules{}, R00_Frontier},
		{params.Rules{IsHomestead: true}, R02_Homestead},
		{params.Rules{IsHomestead: true, IsEIP150: true}, R04_Tangerine},
		{params.Rules{IsHomestead: true, IsEIP150: true, IsEIP158: true}, R05_SpuriousDragon},
		{params.Rules{IsByzantium: true}, R06_Byzantium},
		{params.Rules{IsByzantium: true, IsConstantinople: true, IsPetersburg: true}, R08_Petersburg},
		{params.Rules{IsIstanbul: true}, R09_Istanbul},
		{params.Rules{IsBerlin: true}, R11_Berlin},
		{params.Rules{IsBerlin: true, IsLondon: true}, R12_London},
		{params.Rules{IsLondon: true, IsMerge: true}, R15_Merge},
		{params.Rules{IsMerge: true, IsShanghai: true}, R16_Shanghai},
		{params.Rules{IsShanghai: true, IsCancun: true}, R17_Cancun},
		{params.Rules{IsCancun: true, IsPrague: true}, R18_Prague},
	}
	for _, test := range tests {
		if got := RevisionFromChainRules(test.rules); got != test.want {
			t.Errorf("unexpected revision for %+v, wanted %v, got %v", test.rules, test.want, got)
		}
	}
}
