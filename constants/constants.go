// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constants - protocol level constants for the registry
package constants

// registry limits
const (
	// MaximumSharesPerAsset - cap on total shares for a fractional asset
	MaximumSharesPerAsset = 1000000

	// MaximumRoyaltyPercent - royalty percentage is limited so the
	// seller always receives at least 45% of a sale
	MaximumRoyaltyPercent = 50

	// PlatformFeePercent - fixed percentage routed to the platform
	// account on every paid transfer
	PlatformFeePercent = 5

	// MinimumEscrowBlocks - an escrow must be open for at least one block
	MinimumEscrowBlocks = 1
)
