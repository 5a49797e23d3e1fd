// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
)

// TransactionType - tag of an ownership changing event
type TransactionType byte

// all possible transaction types
const (
	Creation TransactionType = iota
	Transfer
	Fractional
	invalidTransactionType
)

// String - the transaction type as text
func (t TransactionType) String() string {
	switch t {
	case Creation:
		return "Creation"
	case Transfer:
		return "Transfer"
	case Fractional:
		return "Fractional"
	default:
		return "*Unknown*"
	}
}

// MarshalText - convert a transaction type to its JSON form
func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// EscrowStatus - state of an escrow
type EscrowStatus byte

// all possible escrow states
//
// Expired is never stored: it is derived by comparing the expiration
// time with the current block height when an Active record is read
const (
	ActiveEscrow EscrowStatus = iota
	CompletedEscrow
	CancelledEscrow
	ExpiredEscrow
	invalidEscrowStatus
)

// String - the escrow status as text
func (s EscrowStatus) String() string {
	switch s {
	case ActiveEscrow:
		return "Active"
	case CompletedEscrow:
		return "Completed"
	case CancelledEscrow:
		return "Cancelled"
	case ExpiredEscrow:
		return "Expired"
	default:
		return "*Unknown*"
	}
}

// MarshalText - convert an escrow status to its JSON form
func (s EscrowStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Asset - the canonical record of a registered asset
type Asset struct {
	Owner          *account.Account `json:"owner"`
	Description    string           `json:"description"`
	AssetType      string           `json:"assetType"`
	Location       string           `json:"location"`
	Valuation      uint64           `json:"valuation"`
	CreatedAt      uint64           `json:"createdAt"`
	Verified       bool             `json:"verified"`
	Verifier       *account.Account `json:"verifier,omitempty"`
	VerifiedAt     uint64           `json:"verifiedAt,omitempty"`
	Fractional     bool             `json:"fractional"`
	TotalShares    uint64           `json:"totalShares"`
	RoyaltyPercent uint64           `json:"royaltyPercent"`
	MetadataURL    string           `json:"metadataUrl"`
	Locked         bool             `json:"locked"`
}

// Pack - the asset as its binary stored form
func (asset *Asset) Pack() []byte {
	buffer := appendAccount(nil, asset.Owner)
	buffer = appendString(buffer, asset.Description)
	buffer = appendString(buffer, asset.AssetType)
	buffer = appendString(buffer, asset.Location)
	buffer = appendUint64(buffer, asset.Valuation)
	buffer = appendUint64(buffer, asset.CreatedAt)
	buffer = appendBool(buffer, asset.Verified)
	buffer = appendAccount(buffer, asset.Verifier)
	buffer = appendUint64(buffer, asset.VerifiedAt)
	buffer = appendBool(buffer, asset.Fractional)
	buffer = appendUint64(buffer, asset.TotalShares)
	buffer = appendUint64(buffer, asset.RoyaltyPercent)
	buffer = appendString(buffer, asset.MetadataURL)
	buffer = appendBool(buffer, asset.Locked)
	return buffer
}

// UnpackAsset - rebuild an asset from its binary stored form
func UnpackAsset(buffer []byte) (*Asset, error) {
	u := &unpacker{buffer: buffer}

	asset := &Asset{
		Owner:          u.account(),
		Description:    u.text(),
		AssetType:      u.text(),
		Location:       u.text(),
		Valuation:      u.uint64(),
		CreatedAt:      u.uint64(),
		Verified:       u.boolean(),
		Verifier:       u.account(),
		VerifiedAt:     u.uint64(),
		Fractional:     u.boolean(),
		TotalShares:    u.uint64(),
		RoyaltyPercent: u.uint64(),
		MetadataURL:    u.text(),
		Locked:         u.boolean(),
	}
	if err := u.done(); nil != err {
		return nil, err
	}
	if nil == asset.Owner {
		return nil, fault.RecordCorrupted
	}
	return asset, nil
}

// Verifier - one authorised attestation identity
type Verifier struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	ApprovedAt uint64 `json:"approvedAt"`
	Active     bool   `json:"active"`
}

// Pack - the verifier as its binary stored form
func (verifier *Verifier) Pack() []byte {
	buffer := appendString(nil, verifier.Name)
	buffer = appendString(buffer, verifier.Specialty)
	buffer = appendUint64(buffer, verifier.ApprovedAt)
	buffer = appendBool(buffer, verifier.Active)
	return buffer
}

// UnpackVerifier - rebuild a verifier from its binary stored form
func UnpackVerifier(buffer []byte) (*Verifier, error) {
	u := &unpacker{buffer: buffer}

	verifier := &Verifier{
		Name:       u.text(),
		Specialty:  u.text(),
		ApprovedAt: u.uint64(),
		Active:     u.boolean(),
	}
	if err := u.done(); nil != err {
		return nil, err
	}
	return verifier, nil
}

// Escrow - one bilateral sale agreement
type Escrow struct {
	AssetId    uint64           `json:"assetId"`
	Seller     *account.Account `json:"seller"`
	Buyer      *account.Account `json:"buyer"`
	Price      uint64           `json:"price"`
	Fractional bool             `json:"fractional"`
	Shares     uint64           `json:"shares"`
	CreatedAt  uint64           `json:"createdAt"`
	ExpiresAt  uint64           `json:"expiresAt"`
	Status     EscrowStatus     `json:"status"`
}

// Pack - the escrow as its binary stored form
func (escrow *Escrow) Pack() []byte {
	buffer := appendUint64(nil, escrow.AssetId)
	buffer = appendAccount(buffer, escrow.Seller)
	buffer = appendAccount(buffer, escrow.Buyer)
	buffer = appendUint64(buffer, escrow.Price)
	buffer = appendBool(buffer, escrow.Fractional)
	buffer = appendUint64(buffer, escrow.Shares)
	buffer = appendUint64(buffer, escrow.CreatedAt)
	buffer = appendUint64(buffer, escrow.ExpiresAt)
	buffer = append(buffer, byte(escrow.Status))
	return buffer
}

// UnpackEscrow - rebuild an escrow from its binary stored form
func UnpackEscrow(buffer []byte) (*Escrow, error) {
	u := &unpacker{buffer: buffer}

	escrow := &Escrow{
		AssetId:    u.uint64(),
		Seller:     u.account(),
		Buyer:      u.account(),
		Price:      u.uint64(),
		Fractional: u.boolean(),
		Shares:     u.uint64(),
		CreatedAt:  u.uint64(),
		ExpiresAt:  u.uint64(),
		Status:     EscrowStatus(u.byte()),
	}
	if err := u.done(); nil != err {
		return nil, err
	}
	if nil == escrow.Seller || nil == escrow.Buyer || escrow.Status >= invalidEscrowStatus {
		return nil, fault.RecordCorrupted
	}
	return escrow, nil
}

// HistoryEntry - one ownership changing event
//
// asset id and sequence form the storage key, not part of the value
type HistoryEntry struct {
	AssetId       uint64           `json:"assetId"`
	Sequence      uint64           `json:"sequence"`
	PreviousOwner *account.Account `json:"previousOwner,omitempty"`
	NewOwner      *account.Account `json:"newOwner"`
	Timestamp     uint64           `json:"timestamp"`
	TxType        TransactionType  `json:"txType"`
	Amount        uint64           `json:"amount"`
}

// Pack - the history entry as its binary stored form
func (entry *HistoryEntry) Pack() []byte {
	buffer := appendAccount(nil, entry.PreviousOwner)
	buffer = appendAccount(buffer, entry.NewOwner)
	buffer = appendUint64(buffer, entry.Timestamp)
	buffer = append(buffer, byte(entry.TxType))
	buffer = appendUint64(buffer, entry.Amount)
	return buffer
}

// UnpackHistoryEntry - rebuild a history entry from its binary stored form
//
// asset id and sequence are supplied from the storage key
func UnpackHistoryEntry(assetId uint64, sequence uint64, buffer []byte) (*HistoryEntry, error) {
	u := &unpacker{buffer: buffer}

	entry := &HistoryEntry{
		AssetId:       assetId,
		Sequence:      sequence,
		PreviousOwner: u.account(),
		NewOwner:      u.account(),
		Timestamp:     u.uint64(),
		TxType:        TransactionType(u.byte()),
		Amount:        u.uint64(),
	}
	if err := u.done(); nil != err {
		return nil, err
	}
	if nil == entry.NewOwner || entry.TxType >= invalidTransactionType {
		return nil, fault.RecordCorrupted
	}
	return entry, nil
}
