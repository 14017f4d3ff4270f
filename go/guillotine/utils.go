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

// MaxRefund computes the upper bound of the gas refund granted to a
// transaction that consumed the given amount of gas. Before London the
// refund is capped at half of the gas used (EIP-3529 lowered it to a fifth).
func MaxRefund(revision Revision, gasUsed Gas) Gas {
	if revision >= R12_London {
		return gasUsed / 5
	}
	return gasUsed / 2
}

// CapRefund limits the given refund to the bound imposed by MaxRefund.
func CapRefund(revision Revision, gasUsed, refund Gas) Gas {
	return min(refund, MaxRefund(revision, gasUsed))
}
