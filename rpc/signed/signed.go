// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signed - authentication of state changing RPC requests
//
// a request is signed over its method name, nonce and arguments, each
// packed as a length prefixed field so no two argument lists share a
// signature
package signed

import (
	"encoding/binary"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
)

// Envelope - the authentication fields carried by a signed request
type Envelope struct {
	Caller    account.Account   `json:"caller"`
	Nonce     uint64            `json:"nonce,string"`
	Signature account.Signature `json:"signature"`
}

// Nonces - replay protection
type Nonces interface {
	Use(account.Account, uint64) error
}

// Message - the bytes that are signed for a request
func Message(method string, nonce uint64, fields ...string) []byte {
	buffer := make([]byte, 0, 64)
	buffer = appendField(buffer, method)

	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)
	buffer = append(buffer, n...)

	for _, f := range fields {
		buffer = appendField(buffer, f)
	}
	return buffer
}

func appendField(buffer []byte, field string) []byte {
	l := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(l, uint64(len(field)))
	buffer = append(buffer, l[:n]...)
	return append(buffer, field...)
}

// Sign - build the envelope for a request
func Sign(key *account.PrivateKey, method string, nonce uint64, fields ...string) Envelope {
	return Envelope{
		Caller:    key.Account(),
		Nonce:     nonce,
		Signature: key.Sign(Message(method, nonce, fields...)),
	}
}

// Verify - check the signature then consume the nonce
//
// the nonce is only consumed for a correctly signed request
func (e Envelope) Verify(nonces Nonces, method string, fields ...string) error {
	if e.Caller.IsZero() {
		return fault.InvalidAccount
	}
	if err := e.Caller.CheckSignature(Message(method, e.Nonce, fields...), e.Signature); nil != err {
		return err
	}
	return nonces.Use(e.Caller, e.Nonce)
}
