// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = ed25519.PublicKeySize
	checksumLength  = 4
)

// Account - an identity, the ED25519 public key of its holder
//
// the zero value is not a valid identity for any caller
type Account [PublicKeyLength]byte

// FromBytes - create an account from a raw public key
func FromBytes(publicKey []byte) (Account, error) {
	a := Account{}
	if PublicKeyLength != len(publicKey) {
		return a, fault.InvalidKeyLength
	}
	copy(a[:], publicKey)
	return a, nil
}

// FromBase58 - convert a Base58 encoded string to an account
//
// encoded form is: public key ⧺ SHA3-256(public key)[:4]
func FromBase58(encoded string) (Account, error) {
	a := Account{}

	decoded, err := base58.Decode(encoded)
	if nil != err {
		return a, fault.InvalidAccount
	}
	if PublicKeyLength+checksumLength != len(decoded) {
		return a, fault.InvalidKeyLength
	}

	checksum := sha3.Sum256(decoded[:PublicKeyLength])
	if !bytes.Equal(checksum[:checksumLength], decoded[PublicKeyLength:]) {
		return a, fault.InvalidChecksum
	}

	copy(a[:], decoded[:PublicKeyLength])
	return a, nil
}

// Bytes - the raw public key
func (a Account) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, a[:])
	return b
}

// IsZero - true for the unset account
func (a Account) IsZero() bool {
	return Account{} == a
}

// String - Base58 encoded form with checksum
func (a Account) String() string {
	checksum := sha3.Sum256(a[:])
	buffer := make([]byte, 0, PublicKeyLength+checksumLength)
	buffer = append(buffer, a[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for %#v
func (a Account) GoString() string {
	return "<account:" + a.String() + ">"
}

// MarshalText - convert an account to its Base58 text
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (a *Account) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}

// CheckSignature - verify an ED25519 signature made by this account
func (a Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(a[:], message, signature) {
		return fault.InvalidSignature
	}
	return nil
}
