// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signed_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

// accepts strictly increasing nonces
type nonces map[account.Account]uint64

func (n nonces) Use(a account.Account, nonce uint64) error {
	if nonce <= n[a] {
		return fault.NonceTooLow
	}
	n[a] = nonce
	return nil
}

func TestVerify(t *testing.T) {
	key := fixtures.PrivateKey(1)
	used := nonces{}

	e := signed.Sign(key, "Market.List", 5, "sample/7", "100")
	assert.Equal(t, key.Account(), e.Caller, "caller")

	assert.Nil(t, e.Verify(used, "Market.List", "sample/7", "100"), "first use")
	assert.Equal(t, fault.NonceTooLow, e.Verify(used, "Market.List", "sample/7", "100"), "replay")
}

func TestVerifyRejectsAlteredRequests(t *testing.T) {
	key := fixtures.PrivateKey(1)

	e := signed.Sign(key, "Market.List", 5, "sample/7", "100")

	tests := []struct {
		method string
		fields []string
	}{
		{"Market.Update", []string{"sample/7", "100"}},
		{"Market.List", []string{"sample/7", "1"}},
		{"Market.List", []string{"sample/71", "00"}},
		{"Market.List", []string{"sample/7"}},
	}
	for i, item := range tests {
		used := nonces{}
		err := e.Verify(used, item.method, item.fields...)
		assert.Equal(t, fault.InvalidSignature, err, "%d: accepted", i)
		assert.Equal(t, 0, len(used), "%d: nonce consumed", i)
	}

	other := e
	other.Caller = fixtures.Account(2)
	assert.Equal(t, fault.InvalidSignature, other.Verify(nonces{}, "Market.List", "sample/7", "100"), "wrong caller")

	other.Caller = account.Account{}
	assert.Equal(t, fault.InvalidAccount, other.Verify(nonces{}, "Market.List", "sample/7", "100"), "zero caller")

	other = e
	other.Nonce = 6
	assert.Equal(t, fault.InvalidSignature, other.Verify(nonces{}, "Market.List", "sample/7", "100"), "altered nonce")
}

func TestEnvelopeJSON(t *testing.T) {
	e := signed.Sign(fixtures.PrivateKey(3), "Market.Withdraw", 12)

	data, err := json.Marshal(e)
	assert.Nil(t, err, "marshal")

	var fields map[string]interface{}
	_ = json.Unmarshal(data, &fields)
	assert.Equal(t, "12", fields["nonce"], "nonce is a string")
	assert.Equal(t, e.Caller.String(), fields["caller"], "caller text")

	var decoded signed.Envelope
	assert.Nil(t, json.Unmarshal(data, &decoded), "unmarshal")
	assert.Nil(t, decoded.Verify(nonces{}, "Market.Withdraw"), "decoded verifies")
}
