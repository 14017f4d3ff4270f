// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

//go:build !guillotine

package mini

import "github.com/Fantom-foundation/Guillotine/go/native"

// Available reports whether this build is linked against libguillotine_mini.
// Build with the guillotine tag to enable the binding.
const Available = false

// Open fails in builds without the guillotine tag.
func Open() (native.Library, error) {
	return nil, ErrUnavailable
}
