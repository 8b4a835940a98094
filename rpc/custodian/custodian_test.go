// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custodian_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/custody"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/nonce"
	"github.com/bitmark-inc/marketd/rpc/custodian"
	"github.com/bitmark-inc/marketd/rpc/signed"
	"github.com/bitmark-inc/marketd/storage"
)

var sampleKey = asset.Key{Collection: "sample", Id: 7}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T, allowMint bool) (*custodian.Custody, func()) {
	teardown := fixtures.SetupTestStorage(t)
	log := logger.New(fixtures.LogCategory)
	registry := custody.NewRegistry(log, storage.Pool.Owners, storage.Pool.Approvals)
	return custodian.New(log, registry, nonce.New(storage.Pool.Nonces), allowMint), teardown
}

func mint(t *testing.T, c *custodian.Custody, owner *account.PrivateKey, n uint64) {
	args := custodian.MintArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Envelope:   signed.Sign(owner, custodian.MethodMint, n, custodian.KeyFields(sampleKey)...),
	}
	var reply custodian.OwnerReply
	if err := c.Mint(&args, &reply); nil != err {
		t.Fatalf("mint error: %s", err)
	}
}

func TestMintDisabled(t *testing.T) {
	c, teardown := setup(t, false)
	defer teardown()

	args := custodian.MintArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Envelope:   signed.Sign(fixtures.PrivateKey(1), custodian.MethodMint, 1, custodian.KeyFields(sampleKey)...),
	}
	var reply custodian.OwnerReply
	assert.Equal(t, fault.MintingDisabled, c.Mint(&args, &reply), "mint allowed")
}

func TestMintAndOwner(t *testing.T) {
	c, teardown := setup(t, true)
	defer teardown()

	owner := fixtures.PrivateKey(1)
	mint(t, c, owner, 1)

	var reply custodian.OwnerReply
	err := c.Owner(&custodian.OwnerArguments{Collection: "sample", AssetId: 7}, &reply)
	assert.Nil(t, err, "owner")
	assert.Equal(t, owner.Account(), reply.Owner, "owner account")
	assert.Nil(t, reply.Approved, "no approval")

	args := custodian.MintArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Envelope:   signed.Sign(owner, custodian.MethodMint, 2, custodian.KeyFields(sampleKey)...),
	}
	assert.Equal(t, fault.AssetAlreadyExists, c.Mint(&args, &reply), "second mint")

	err = c.Owner(&custodian.OwnerArguments{Collection: "sample", AssetId: 8}, &reply)
	assert.Equal(t, fault.AssetNotFound, err, "missing asset")
}

func TestApprove(t *testing.T) {
	c, teardown := setup(t, true)
	defer teardown()

	owner := fixtures.PrivateKey(1)
	market := fixtures.Account(9)
	mint(t, c, owner, 1)

	var reply custodian.OwnerReply
	args := custodian.ApproveArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Approved:   market,
		Envelope:   signed.Sign(owner, custodian.MethodApprove, 2, custodian.AccountFields(sampleKey, market)...),
	}
	assert.Nil(t, c.Approve(&args, &reply), "approve")
	assert.Equal(t, market, *reply.Approved, "approved reply")

	assert.Nil(t, c.Owner(&custodian.OwnerArguments{Collection: "sample", AssetId: 7}, &reply), "owner")
	assert.Equal(t, market, *reply.Approved, "approval stored")

	stranger := fixtures.PrivateKey(3)
	args.Envelope = signed.Sign(stranger, custodian.MethodApprove, 1, custodian.AccountFields(sampleKey, market)...)
	assert.Equal(t, fault.NotOwner, c.Approve(&args, &reply), "stranger approve")

	// clear
	args.Approved = account.Account{}
	args.Envelope = signed.Sign(owner, custodian.MethodApprove, 3, custodian.AccountFields(sampleKey, account.Account{})...)
	assert.Nil(t, c.Approve(&args, &reply), "clear")
	assert.Nil(t, reply.Approved, "cleared reply")
}

func TestTransfer(t *testing.T) {
	c, teardown := setup(t, true)
	defer teardown()

	owner := fixtures.PrivateKey(1)
	receiver := fixtures.PrivateKey(2)
	mint(t, c, owner, 1)

	var reply custodian.OwnerReply
	args := custodian.TransferArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		To:         receiver.Account(),
		Envelope:   signed.Sign(owner, custodian.MethodTransfer, 2, custodian.AccountFields(sampleKey, receiver.Account())...),
	}
	assert.Nil(t, c.Transfer(&args, &reply), "transfer")
	assert.Equal(t, receiver.Account(), reply.Owner, "new owner")

	// old owner can no longer move it
	args.To = owner.Account()
	args.Envelope = signed.Sign(owner, custodian.MethodTransfer, 3, custodian.AccountFields(sampleKey, owner.Account())...)
	assert.Equal(t, fault.NotOwner, c.Transfer(&args, &reply), "old owner")
}
