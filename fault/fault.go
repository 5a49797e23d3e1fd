// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AuthorizationError GenericError
	ConflictError      GenericError
	ExistsError        GenericError
	InvalidError       GenericError
	NotFoundError      GenericError
	ProcessError       GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ProcessError("already initialised")
	AlreadyRegistered         = ExistsError("already registered")
	AssetLocked               = ConflictError("asset is locked")
	AssetNotFound             = NotFoundError("asset not found")
	CannotDecodeAccount       = InvalidError("cannot decode account")
	CertificateFileExists     = ExistsError("certificate file already exists")
	ChecksumMismatch          = InvalidError("checksum mismatch")
	EscrowNotFound            = NotFoundError("escrow not found")
	IncompatibleVersion       = ProcessError("incompatible database version")
	InsufficientFunds         = ProcessError("insufficient funds")
	InsufficientShares        = ConflictError("insufficient shares")
	InvalidChain              = InvalidError("invalid chain")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidKeyLength          = InvalidError("invalid key length")
	InvalidParameters         = InvalidError("invalid parameters")
	InvalidPrivateKey         = InvalidError("invalid private key")
	InvalidSignature          = InvalidError("invalid signature")
	InvalidVerifier           = NotFoundError("invalid verifier")
	KeyFileExists             = ExistsError("key file already exists")
	MissingParameters         = InvalidError("missing parameters")
	NotAuthorized             = AuthorizationError("not authorized")
	NotAvailableInStoppedMode = ProcessError("not available in stopped mode")
	NotAvailableWhenReadOnly  = ProcessError("not available when read only")
	NotInitialised            = ProcessError("not initialised")
	NotOwner                  = AuthorizationError("not the owner")
	NotPublicKey              = InvalidError("not a public key")
	NotVerified               = InvalidError("not verified") // reserved: no current operation returns this
	PaymentFailed             = ProcessError("payment failed")
	RateLimiting              = ProcessError("rate limiting")
	RecordCorrupted           = ProcessError("record corrupted")
	SharesOutstanding         = ConflictError("shares outstanding")
	TransactionInUse          = ProcessError("transaction in use")
	WrongNetworkForPublicKey  = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ConflictError) Error() string      { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// IsErrAuthorization - determine if an authorization class error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrConflict - determine if a conflict class error
func IsErrConflict(e error) bool { _, ok := e.(ConflictError); return ok }

// IsErrExists - determine if an exists class error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an invalid class error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if a not found class error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if a process class error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
