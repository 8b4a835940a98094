// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/marketd/fault"
)

// tag on the single line of a private key file
const taggedSeed = "SEED:"

// PrivateKey - an ED25519 signing key and its account
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed - create the key from a 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidPrivateKey
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// ParsePrivateKey - decode "SEED:<hex>" text
func ParsePrivateKey(text string) (*PrivateKey, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, taggedSeed) {
		return nil, fault.InvalidPrivateKey
	}
	seed, err := hex.DecodeString(text[len(taggedSeed):])
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return PrivateKeyFromSeed(seed)
}

// ReadPrivateKeyFile - read a key written by WriteFile
func ReadPrivateKeyFile(fileName string) (*PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return ParsePrivateKey(string(data))
}

// WriteFile - store the seed, readable only by the owner
func (p *PrivateKey) WriteFile(fileName string) error {
	return ioutil.WriteFile(fileName, []byte(p.String()+"\n"), 0600)
}

// Account - the public half
func (p *PrivateKey) Account() Account {
	a := Account{}
	copy(a[:], p.key.Public().(ed25519.PublicKey))
	return a
}

// Sign - sign a message
func (p *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(p.key, message)
}

// String - tagged hex seed
func (p *PrivateKey) String() string {
	return taggedSeed + hex.EncodeToString(p.key.Seed())
}
