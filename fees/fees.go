// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fees - escrow settlement arithmetic and disbursement
//
// all fees round down, the seller absorbs the rounding remainder so
// platform fee + royalty + seller amount always equals the price
package fees

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/constants"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/payment"
	"github.com/bitmark-inc/registryd/record"
)

// Distribution - the split of one settled price
type Distribution struct {
	PlatformFee  uint64 `json:"platformFee"`
	RoyaltyFee   uint64 `json:"royaltyFee"`
	SellerAmount uint64 `json:"sellerAmount"`
}

// globals for this module
type feesData struct {
	sync.RWMutex // to allow locking

	log      *logger.L
	platform *account.Account

	// set once during initialise
	initialised bool
}

// global data
var globalData feesData

// Initialise - set the account collecting platform fees
func Initialise(platform *account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == platform {
		return fault.InvalidParameters
	}

	globalData.log = logger.New("fees")
	globalData.log.Info("starting…")
	globalData.platform = platform
	globalData.initialised = true

	return nil
}

// Finalise - shut down fee handling
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// Platform - the configured platform fee account
func Platform() *account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.platform
}

// Split - compute the fee distribution for a price
//
// royaltyPercent is taken from the asset being sold
func Split(amount uint64, royaltyPercent uint64) Distribution {
	platformFee := percentage(amount, constants.PlatformFeePercent)
	royaltyFee := percentage(amount, royaltyPercent)
	return Distribution{
		PlatformFee:  platformFee,
		RoyaltyFee:   royaltyFee,
		SellerAmount: amount - platformFee - royaltyFee,
	}
}

// floor(amount*percent/100) without the intermediate product, which
// overflows uint64 for large prices
func percentage(amount uint64, percent uint64) uint64 {
	return amount/100*percent + amount%100*percent/100
}

// Settle - disburse a buyer's escrowed price
//
// must be inside a transaction
//
// the royalty goes to the recorded asset owner, skipped entirely when
// that owner is the seller so nobody pays a royalty to themselves; any
// failed disbursement is a payment failure and the caller must abort
func Settle(payer *account.Account, seller *account.Account, amount uint64, asset *record.Asset) (Distribution, error) {

	d := Split(amount, asset.RoyaltyPercent)

	err := payment.Pay(payer, Platform(), d.PlatformFee)
	if nil != err {
		return Distribution{}, fault.PaymentFailed
	}

	if !asset.Owner.IsSame(seller) {
		err = payment.Pay(payer, asset.Owner, d.RoyaltyFee)
		if nil != err {
			return Distribution{}, fault.PaymentFailed
		}
	}

	err = payment.Pay(payer, seller, d.SellerAmount)
	if nil != err {
		return Distribution{}, fault.PaymentFailed
	}
	return d, nil
}
