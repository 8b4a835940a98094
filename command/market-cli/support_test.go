// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/fixtures"
)

func TestSigner(t *testing.T) {
	dir, err := ioutil.TempDir("", "market-cli-test-")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	key := fixtures.PrivateKey(3)
	file := filepath.Join(dir, "test.private")
	assert.Nil(t, key.WriteFile(file), "write key")

	m := &metadata{keyFile: file, nonce: 42, e: ioutil.Discard}
	s, err := signer(m)
	assert.Nil(t, err, "signer")
	assert.Equal(t, key.Account(), s.Key.Account(), "wrong account")
	assert.Equal(t, uint64(42), s.Nonce, "wrong nonce")

	m.nonce = 0
	first, _ := signer(m)
	second, _ := signer(m)
	assert.True(t, first.Nonce > 0, "zero clock nonce")
	assert.True(t, second.Nonce >= first.Nonce, "clock nonce went backwards")

	_, err = signer(&metadata{})
	assert.NotNil(t, err, "missing key file accepted")
}

func TestCheckAccount(t *testing.T) {
	a := fixtures.Account(5)
	parsed, err := checkAccount(a.String())
	assert.Nil(t, err, "parse")
	assert.Equal(t, a, parsed, "wrong account")

	_, err = checkAccount("")
	assert.NotNil(t, err, "blank accepted")

	_, err = checkAccount("not-base58!")
	assert.NotNil(t, err, "junk accepted")
}
