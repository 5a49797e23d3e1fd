// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/registryd/fault"
)

// ensure that the error classifiers pick out the correct classes
func TestErrorClasses(t *testing.T) {

	if !fault.IsErrAuthorization(fault.NotAuthorized) {
		t.Errorf("NotAuthorized is not an authorization error")
	}
	if !fault.IsErrAuthorization(fault.NotOwner) {
		t.Errorf("NotOwner is not an authorization error")
	}
	if !fault.IsErrNotFound(fault.AssetNotFound) {
		t.Errorf("AssetNotFound is not a not found error")
	}
	if !fault.IsErrNotFound(fault.EscrowNotFound) {
		t.Errorf("EscrowNotFound is not a not found error")
	}
	if !fault.IsErrNotFound(fault.InvalidVerifier) {
		t.Errorf("InvalidVerifier is not a not found error")
	}
	if !fault.IsErrExists(fault.AlreadyRegistered) {
		t.Errorf("AlreadyRegistered is not an exists error")
	}
	if !fault.IsErrConflict(fault.AssetLocked) {
		t.Errorf("AssetLocked is not a conflict error")
	}
	if !fault.IsErrConflict(fault.InsufficientShares) {
		t.Errorf("InsufficientShares is not a conflict error")
	}
	if !fault.IsErrConflict(fault.SharesOutstanding) {
		t.Errorf("SharesOutstanding is not a conflict error")
	}
	if !fault.IsErrInvalid(fault.InvalidParameters) {
		t.Errorf("InvalidParameters is not an invalid error")
	}
	if !fault.IsErrProcess(fault.PaymentFailed) {
		t.Errorf("PaymentFailed is not a process error")
	}

	if fault.IsErrInvalid(fault.AssetNotFound) {
		t.Errorf("AssetNotFound claims to be an invalid error")
	}
	if fault.IsErrProcess(fault.NotAuthorized) {
		t.Errorf("NotAuthorized claims to be a process error")
	}
}

// check the error text is stable
func TestErrorText(t *testing.T) {
	if "asset is locked" != fault.AssetLocked.Error() {
		t.Errorf("unexpected error text: %q", fault.AssetLocked.Error())
	}
	if "payment failed" != fault.PaymentFailed.Error() {
		t.Errorf("unexpected error text: %q", fault.PaymentFailed.Error())
	}
}
