// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/history"
	"github.com/bitmark-inc/registryd/mode"
	"github.com/bitmark-inc/registryd/record"
	"github.com/bitmark-inc/registryd/registry"
	"github.com/bitmark-inc/registryd/rpc/auth"
	"github.com/bitmark-inc/registryd/rpc/gate"
	"github.com/bitmark-inc/registryd/rpc/ratelimit"
)

const (
	rateLimitAsset = 200
	rateBurstAsset = 100
)

// limit for provenance listing
const maximumProvenanceCount = 100

// Asset - type for RPC
type Asset struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Is      func(mode.Mode) bool
	Testnet bool
}

// New - create the asset service
func New(log *logger.L, is func(mode.Mode) bool, testnet bool) *Asset {
	return &Asset{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAsset, rateBurstAsset),
		Is:      is,
		Testnet: testnet,
	}
}

// Register a new asset
// --------------------

// RegisterArguments - signed registration request
type RegisterArguments struct {
	Caller         *account.Account  `json:"caller"`
	Signature      account.Signature `json:"signature"`
	Description    string            `json:"description"`
	AssetType      string            `json:"assetType"`
	Location       string            `json:"location"`
	Valuation      uint64            `json:"valuation"`
	Fractional     bool              `json:"fractional"`
	TotalShares    uint64            `json:"totalShares"`
	RoyaltyPercent uint64            `json:"royaltyPercent"`
	MetadataURL    string            `json:"metadataUrl"`
}

// message - the canonical signing message
func (arguments *RegisterArguments) message() []byte {
	fractional := "false"
	if arguments.Fractional {
		fractional = "true"
	}
	return auth.Message("Asset.Register",
		arguments.Description,
		arguments.AssetType,
		arguments.Location,
		auth.Uint(arguments.Valuation),
		fractional,
		auth.Uint(arguments.TotalShares),
		auth.Uint(arguments.RoyaltyPercent),
		arguments.MetadataURL,
	)
}

// RegisterReply - the allocated asset id
type RegisterReply struct {
	AssetId uint64 `json:"assetId"`
}

// Register - create a new asset owned by the signer
func (asset *Asset) Register(arguments *RegisterArguments, reply *RegisterReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(asset.Is); nil != err {
		return err
	}
	if err := auth.Verify(arguments.Caller, arguments.Signature, arguments.message(), asset.Testnet); nil != err {
		return err
	}

	asset.Log.Infof("Asset.Register: %q by %s", arguments.Description, arguments.Caller)

	assetId, err := registry.Register(arguments.Caller, registry.Registration{
		Description:    arguments.Description,
		AssetType:      arguments.AssetType,
		Location:       arguments.Location,
		Valuation:      arguments.Valuation,
		Fractional:     arguments.Fractional,
		TotalShares:    arguments.TotalShares,
		RoyaltyPercent: arguments.RoyaltyPercent,
		MetadataURL:    arguments.MetadataURL,
	})
	if nil != err {
		return err
	}
	reply.AssetId = assetId
	return nil
}

// Get one asset record
// --------------------

// GetArguments - asset selector
type GetArguments struct {
	AssetId uint64 `json:"assetId"`
}

// GetReply - the stored asset record
type GetReply struct {
	AssetId uint64        `json:"assetId"`
	Asset   *record.Asset `json:"asset"`
}

// Get - read one asset record
func (asset *Asset) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Query(asset.Is); nil != err {
		return err
	}

	rec, err := registry.Get(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Asset = rec
	return nil
}

// Verify an asset
// ---------------

// VerifyArguments - signed attestation request
type VerifyArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	AssetId   uint64            `json:"assetId"`
}

// VerifyReply - attestation confirmation
type VerifyReply struct {
	AssetId  uint64 `json:"assetId"`
	Verified bool   `json:"verified"`
}

// Verify - attest an asset, caller must be an active verifier
func (asset *Asset) Verify(arguments *VerifyArguments, reply *VerifyReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(asset.Is); nil != err {
		return err
	}
	message := auth.Message("Asset.Verify", auth.Uint(arguments.AssetId))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, asset.Testnet); nil != err {
		return err
	}

	asset.Log.Infof("Asset.Verify: %d by %s", arguments.AssetId, arguments.Caller)

	err := registry.Verify(arguments.Caller, arguments.AssetId)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Verified = true
	return nil
}

// Update the descriptive fields
// -----------------------------

// UpdateArguments - signed metadata update
type UpdateArguments struct {
	Caller      *account.Account  `json:"caller"`
	Signature   account.Signature `json:"signature"`
	AssetId     uint64            `json:"assetId"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Valuation   uint64            `json:"valuation"`
	MetadataURL string            `json:"metadataUrl"`
}

func (arguments *UpdateArguments) message() []byte {
	return auth.Message("Asset.UpdateMetadata",
		auth.Uint(arguments.AssetId),
		arguments.Description,
		arguments.Location,
		auth.Uint(arguments.Valuation),
		arguments.MetadataURL,
	)
}

// UpdateReply - update confirmation
type UpdateReply struct {
	AssetId uint64 `json:"assetId"`
}

// UpdateMetadata - overwrite the mutable fields, owner only
func (asset *Asset) UpdateMetadata(arguments *UpdateArguments, reply *UpdateReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(asset.Is); nil != err {
		return err
	}
	if err := auth.Verify(arguments.Caller, arguments.Signature, arguments.message(), asset.Testnet); nil != err {
		return err
	}

	asset.Log.Infof("Asset.UpdateMetadata: %d by %s", arguments.AssetId, arguments.Caller)

	err := registry.UpdateMetadata(arguments.Caller, arguments.AssetId, registry.Update{
		Description: arguments.Description,
		Location:    arguments.Location,
		Valuation:   arguments.Valuation,
		MetadataURL: arguments.MetadataURL,
	})
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	return nil
}

// Transfer a whole asset
// ----------------------

// TransferArguments - signed direct transfer
type TransferArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	AssetId   uint64            `json:"assetId"`
	Recipient *account.Account  `json:"recipient"`
}

// TransferReply - transfer confirmation
type TransferReply struct {
	AssetId uint64           `json:"assetId"`
	Owner   *account.Account `json:"owner"`
}

// Transfer - unpaid whole asset transfer, owner only
func (asset *Asset) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(asset.Is); nil != err {
		return err
	}
	if nil == arguments.Recipient {
		return fault.MissingParameters
	}
	message := auth.Message("Asset.Transfer",
		auth.Uint(arguments.AssetId),
		arguments.Recipient.String(),
	)
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, asset.Testnet); nil != err {
		return err
	}

	asset.Log.Infof("Asset.Transfer: %d to %s", arguments.AssetId, arguments.Recipient)

	err := registry.Transfer(arguments.Caller, arguments.AssetId, arguments.Recipient)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Owner = arguments.Recipient
	return nil
}

// Retire an asset
// ---------------

// RetireArguments - signed retirement
type RetireArguments struct {
	Caller    *account.Account  `json:"caller"`
	Signature account.Signature `json:"signature"`
	AssetId   uint64            `json:"assetId"`
}

// RetireReply - retirement confirmation
type RetireReply struct {
	AssetId uint64 `json:"assetId"`
	Retired bool   `json:"retired"`
}

// Retire - permanently lock an asset, owner only
func (asset *Asset) Retire(arguments *RetireArguments, reply *RetireReply) error {
	if err := ratelimit.Limit(asset.Limiter); nil != err {
		return err
	}
	if err := gate.Mutate(asset.Is); nil != err {
		return err
	}
	message := auth.Message("Asset.Retire", auth.Uint(arguments.AssetId))
	if err := auth.Verify(arguments.Caller, arguments.Signature, message, asset.Testnet); nil != err {
		return err
	}

	asset.Log.Infof("Asset.Retire: %d by %s", arguments.AssetId, arguments.Caller)

	err := registry.Retire(arguments.Caller, arguments.AssetId)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Retired = true
	return nil
}

// Provenance of an asset
// ----------------------

// ProvenanceArguments - provenance selector
type ProvenanceArguments struct {
	AssetId uint64 `json:"assetId"`
	Count   int    `json:"count"`
}

// ProvenanceReply - the audit trail, oldest first
type ProvenanceReply struct {
	AssetId uint64                 `json:"assetId"`
	Entries []*record.HistoryEntry `json:"entries"`
}

// Provenance - list the ownership history of an asset
func (asset *Asset) Provenance(arguments *ProvenanceArguments, reply *ProvenanceReply) error {
	if err := ratelimit.LimitN(asset.Limiter, arguments.Count, maximumProvenanceCount); nil != err {
		return err
	}
	if err := gate.Query(asset.Is); nil != err {
		return err
	}

	entries, err := history.List(arguments.AssetId, arguments.Count)
	if nil != err {
		return err
	}
	reply.AssetId = arguments.AssetId
	reply.Entries = entries
	return nil
}
