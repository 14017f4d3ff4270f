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
	"fmt"

	"github.com/ethereum/go-ethereum/params"
)

// Revision is an enumeration for EVM specification revisions (aka. Hard-Forks)
// as identified by the host runtime. Not every revision is necessarily
// supported by every native engine.
type Revision int

// The list of revisions known to the host runtime.
const (
	R00_Frontier Revision = iota
	R01_FrontierThawing
	R02_Homestead
	R03_DAOFork
	R04_Tangerine
	R05_SpuriousDragon
	R06_Byzantium
	R07_Constantinople
	R08_Petersburg
	R09_Istanbul
	R10_MuirGlacier
	R11_Berlin
	R12_London
	R13_ArrowGlacier
	R14_GrayGlacier
	R15_Merge
	R16_Shanghai
	R17_Cancun
	R18_Prague
	R19_Osaka
	numRevisions int = iota
)

// R99_UnknownNextRevision is a revision known to the host but not yet to any
// native engine. It is mainly used to exercise unsupported-revision paths.
const R99_UnknownNextRevision Revision = 99

var revisionNames = [numRevisions]string{
	"Frontier",
	"FrontierThawing",
	"Homestead",
	"DAOFork",
	"Tangerine",
	"SpuriousDragon",
	"Byzantium",
	"Constantinople",
	"Petersburg",
	"Istanbul",
	"MuirGlacier",
	"Berlin",
	"London",
	"ArrowGlacier",
	"GrayGlacier",
	"Merge",
	"Shanghai",
	"Cancun",
	"Prague",
	"Osaka",
}

// GetAllKnownRevisions lists all revisions in chronological order, excluding
// R99_UnknownNextRevision.
func GetAllKnownRevisions() []Revision {
	res := make([]Revision, 0, numRevisions)
	for r := 0; r < numRevisions; r++ {
		res = append(res, Revision(r))
	}
	return res
}

func (r Revision) String() string {
	if r >= 0 && int(r) < numRevisions {
		return revisionNames[r]
	}
	if r == R99_UnknownNextRevision {
		return "UnknownNextRevision"
	}
	return fmt.Sprintf("Revision(%d)", r)
}

func (r Revision) isKnown() bool {
	return (r >= 0 && int(r) < numRevisions) || r == R99_UnknownNextRevision
}

func (r Revision) MarshalJSON() ([]byte, error) {
	if !r.isKnown() {
		return nil, &json.UnsupportedValueError{Str: r.String()}
	}
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	revision, err := ParseRevision(s)
	if err != nil {
		return err
	}
	*r = revision
	return nil
}

// ParseRevision resolves a revision by its name as produced by String.
func ParseRevision(name string) (Revision, error) {
	for i, cur := range revisionNames {
		if cur == name {
			return Revision(i), nil
		}
	}
	if name == "UnknownNextRevision" {
		return R99_UnknownNextRevision, nil
	}
	return 0, fmt.Errorf("unknown revision: %q", name)
}

// RevisionFromChainRules derives the host revision active under the given
// go-ethereum chain rules. Forks that only adjust the difficulty bomb
// (Muir, Arrow and Gray Glacier) are indistinguishable from their
// predecessor at the rules level and are reported as such.
func RevisionFromChainRules(rules params.Rules) Revision {
	switch {
	case rules.IsPrague:
		return R18_Prague
	case rules.IsCancun:
		return R17_Cancun
	case rules.IsShanghai:
		return R16_Shanghai
	case rules.IsMerge:
		return R15_Merge
	case rules.IsLondon:
		return R12_London
	case rules.IsBerlin:
		return R11_Berlin
	case rules.IsIstanbul:
		return R09_Istanbul
	case rules.IsPetersburg:
		return R08_Petersburg
	case rules.IsConstantinople:
		return R07_Constantinople
	case rules.IsByzantium:
		return R06_Byzantium
	case rules.IsEIP158:
		return R05_SpuriousDragon
	case rules.IsEIP150:
		return R04_Tangerine
	case rules.IsHomestead:
		return R02_Homestead
	default:
		return R00_Frontier
	}
}
