// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/rpc/asset"
	"github.com/bitmark-inc/registryd/rpc/auth"
)

// RegisterData - parameters for a new asset
type RegisterData struct {
	Owner          *account.PrivateKey
	Description    string
	AssetType      string
	Location       string
	Valuation      uint64
	Fractional     bool
	TotalShares    uint64
	RoyaltyPercent uint64
	MetadataURL    string
}

// RegisterAsset - register a new asset owned by the signer
func (client *Client) RegisterAsset(registerConfig *RegisterData) (*asset.RegisterReply, error) {

	fractional := "false"
	if registerConfig.Fractional {
		fractional = "true"
	}
	message := auth.Message("Asset.Register",
		registerConfig.Description,
		registerConfig.AssetType,
		registerConfig.Location,
		auth.Uint(registerConfig.Valuation),
		fractional,
		auth.Uint(registerConfig.TotalShares),
		auth.Uint(registerConfig.RoyaltyPercent),
		registerConfig.MetadataURL,
	)

	registerArgs := asset.RegisterArguments{
		Caller:         registerConfig.Owner.Account(),
		Signature:      registerConfig.Owner.Sign(message),
		Description:    registerConfig.Description,
		AssetType:      registerConfig.AssetType,
		Location:       registerConfig.Location,
		Valuation:      registerConfig.Valuation,
		Fractional:     registerConfig.Fractional,
		TotalShares:    registerConfig.TotalShares,
		RoyaltyPercent: registerConfig.RoyaltyPercent,
		MetadataURL:    registerConfig.MetadataURL,
	}

	client.printJson("Register Request", registerArgs)

	var reply asset.RegisterReply
	err := client.client.Call("Asset.Register", &registerArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Register Reply", reply)

	return &reply, nil
}

// GetAsset - read one asset record
func (client *Client) GetAsset(assetId uint64) (*asset.GetReply, error) {

	getArgs := asset.GetArguments{
		AssetId: assetId,
	}

	client.printJson("Asset Request", getArgs)

	var reply asset.GetReply
	err := client.client.Call("Asset.Get", &getArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Asset Reply", reply)

	return &reply, nil
}

// VerifyData - parameters for an attestation
type VerifyData struct {
	Verifier *account.PrivateKey
	AssetId  uint64
}

// VerifyAsset - attest an asset, the signer must be an active verifier
func (client *Client) VerifyAsset(verifyConfig *VerifyData) (*asset.VerifyReply, error) {

	message := auth.Message("Asset.Verify", auth.Uint(verifyConfig.AssetId))

	verifyArgs := asset.VerifyArguments{
		Caller:    verifyConfig.Verifier.Account(),
		Signature: verifyConfig.Verifier.Sign(message),
		AssetId:   verifyConfig.AssetId,
	}

	client.printJson("Verify Request", verifyArgs)

	var reply asset.VerifyReply
	err := client.client.Call("Asset.Verify", &verifyArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Verify Reply", reply)

	return &reply, nil
}

// UpdateData - parameters for a metadata update
type UpdateData struct {
	Owner       *account.PrivateKey
	AssetId     uint64
	Description string
	Location    string
	Valuation   uint64
	MetadataURL string
}

// UpdateAsset - overwrite the mutable fields of an asset
func (client *Client) UpdateAsset(updateConfig *UpdateData) (*asset.UpdateReply, error) {

	message := auth.Message("Asset.UpdateMetadata",
		auth.Uint(updateConfig.AssetId),
		updateConfig.Description,
		updateConfig.Location,
		auth.Uint(updateConfig.Valuation),
		updateConfig.MetadataURL,
	)

	updateArgs := asset.UpdateArguments{
		Caller:      updateConfig.Owner.Account(),
		Signature:   updateConfig.Owner.Sign(message),
		AssetId:     updateConfig.AssetId,
		Description: updateConfig.Description,
		Location:    updateConfig.Location,
		Valuation:   updateConfig.Valuation,
		MetadataURL: updateConfig.MetadataURL,
	}

	client.printJson("Update Request", updateArgs)

	var reply asset.UpdateReply
	err := client.client.Call("Asset.UpdateMetadata", &updateArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Update Reply", reply)

	return &reply, nil
}

// TransferData - parameters for a whole asset transfer
type TransferData struct {
	Owner    *account.PrivateKey
	AssetId  uint64
	NewOwner *account.Account
}

// TransferAsset - unpaid whole asset transfer
func (client *Client) TransferAsset(transferConfig *TransferData) (*asset.TransferReply, error) {

	message := auth.Message("Asset.Transfer",
		auth.Uint(transferConfig.AssetId),
		transferConfig.NewOwner.String(),
	)

	transferArgs := asset.TransferArguments{
		Caller:    transferConfig.Owner.Account(),
		Signature: transferConfig.Owner.Sign(message),
		AssetId:   transferConfig.AssetId,
		Recipient: transferConfig.NewOwner,
	}

	client.printJson("Transfer Request", transferArgs)

	var reply asset.TransferReply
	err := client.client.Call("Asset.Transfer", &transferArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return &reply, nil
}

// RetireData - parameters for a retirement
type RetireData struct {
	Owner   *account.PrivateKey
	AssetId uint64
}

// RetireAsset - permanently lock an asset
func (client *Client) RetireAsset(retireConfig *RetireData) (*asset.RetireReply, error) {

	message := auth.Message("Asset.Retire", auth.Uint(retireConfig.AssetId))

	retireArgs := asset.RetireArguments{
		Caller:    retireConfig.Owner.Account(),
		Signature: retireConfig.Owner.Sign(message),
		AssetId:   retireConfig.AssetId,
	}

	client.printJson("Retire Request", retireArgs)

	var reply asset.RetireReply
	err := client.client.Call("Asset.Retire", &retireArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Retire Reply", reply)

	return &reply, nil
}

// ProvenanceData - parameters for a provenance listing
type ProvenanceData struct {
	AssetId uint64
	Count   int
}

// GetProvenance - list the ownership history of an asset
func (client *Client) GetProvenance(provenanceConfig *ProvenanceData) (*asset.ProvenanceReply, error) {

	provenanceArgs := asset.ProvenanceArguments{
		AssetId: provenanceConfig.AssetId,
		Count:   provenanceConfig.Count,
	}

	client.printJson("Provenance Request", provenanceArgs)

	var reply asset.ProvenanceReply
	err := client.client.Call("Asset.Provenance", &provenanceArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Provenance Reply", reply)

	return &reply, nil
}
