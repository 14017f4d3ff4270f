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
	"fmt"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
)

// hardforkNames maps host revisions to the hardfork names understood by the
// native engine. Forks that only shifted the difficulty bomb share the name
// of their predecessor. Revisions missing in this table are rejected.
var hardforkNames = map[guillotine.Revision]string{
	guillotine.R00_Frontier:        "Frontier",
	guillotine.R01_FrontierThawing: "Frontier",
	guillotine.R02_Homestead:       "Homestead",
	guillotine.R03_DAOFork:         "Homestead",
	guillotine.R04_Tangerine:       "Tangerine",
	guillotine.R05_SpuriousDragon:  "Spurious",
	guillotine.R06_Byzantium:       "Byzantium",
	guillotine.R07_Constantinople:  "Constantinople",
	guillotine.R08_Petersburg:      "Constantinople",
	guillotine.R09_Istanbul:        "Istanbul",
	guillotine.R10_MuirGlacier:     "Istanbul",
	guillotine.R11_Berlin:          "Berlin",
	guillotine.R12_London:          "London",
	guillotine.R13_ArrowGlacier:    "London",
	guillotine.R14_GrayGlacier:     "London",
	guillotine.R15_Merge:           "Merge",
	guillotine.R16_Shanghai:        "Shanghai",
	guillotine.R17_Cancun:          "Cancun",
	guillotine.R18_Prague:          "Prague",
	guillotine.R19_Osaka:           "Osaka",
}

// HardforkName resolves the native hardfork name of the given revision. An
// unmapped revision is reported as a *ConfigurationError.
func HardforkName(revision guillotine.Revision) (string, error) {
	name, found := hardforkNames[revision]
	if !found {
		return "", &ConfigurationError{Reason: fmt.Sprintf("no native hardfork for revision %v", revision)}
	}
	return name, nil
}

// HardforkMapping is a single entry of the revision to hardfork table.
type HardforkMapping struct {
	Revision guillotine.Revision
	Hardfork string
}

// HardforkTable lists the native hardfork name of every known revision in
// chronological order. Unmapped revisions have an empty name.
func HardforkTable() []HardforkMapping {
	revisions := guillotine.GetAllKnownRevisions()
	res := make([]HardforkMapping, 0, len(revisions))
	for _, revision := range revisions {
		res = append(res, HardforkMapping{Revision: revision, Hardfork: hardforkNames[revision]})
	}
	return res
}
