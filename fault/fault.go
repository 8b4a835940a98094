// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PaymentError GenericError
type PermissionError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	AlreadyListed                = ExistsError("already listed")
	AssetAlreadyExists           = ExistsError("asset already exists")
	AssetNotFound                = NotFoundError("asset not found")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DatabaseIsReadOnly           = ProcessError("database is read only")
	InsufficientFunds            = PaymentError("insufficient funds")
	InvalidAccount               = InvalidError("invalid account")
	InvalidChecksum              = InvalidError("invalid checksum")
	InvalidCollection            = InvalidError("invalid collection")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidPackedKey             = InvalidError("invalid packed key")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidPublicKey             = InvalidError("invalid public key")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MintingDisabled              = PermissionError("minting is disabled")
	MissingParameters            = InvalidError("missing parameters")
	NoProceeds                   = PaymentError("no proceeds")
	NonceTooLow                  = PermissionError("nonce too low")
	NotApproved                  = PermissionError("not approved")
	NotApprovedForMarketplace    = PermissionError("not approved for marketplace")
	NotInitialised               = NotFoundError("not initialised")
	NotListed                    = NotFoundError("not listed")
	NotOwner                     = PermissionError("not owner")
	PriceMustBeAboveZero         = InvalidError("price must be above zero")
	PriceNotMet                  = PaymentError("price not met")
	ProceedsOverflow             = PaymentError("proceeds overflow")
	RateLimiting                 = ProcessError("rate limiting")
	ReentrantCall                = PermissionError("reentrant call")
	TransactionIsFinished        = ProcessError("transaction is finished")
	TransferFailed               = ProcessError("transfer failed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PaymentError) Error() string    { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool     { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool    { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool   { var x NotFoundError; return errors.As(e, &x) }
func IsErrPayment(e error) bool    { var x PaymentError; return errors.As(e, &x) }
func IsErrPermission(e error) bool { var x PermissionError; return errors.As(e, &x) }
func IsErrProcess(e error) bool    { var x ProcessError; return errors.As(e, &x) }
