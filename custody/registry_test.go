// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"context"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/custody"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newRegistry() *custody.Registry {
	return custody.NewRegistry(logger.New(fixtures.LogCategory), storage.Pool.Owners, storage.Pool.Approvals)
}

func TestMint(t *testing.T) {
	defer fixtures.SetupTestStorage(t)()

	r := newRegistry()
	ctx := context.Background()
	key := asset.Key{Collection: "sample", Id: 1}
	owner := fixtures.Account(1)

	_, err := r.OwnerOf(ctx, key)
	assert.Equal(t, fault.AssetNotFound, err, "owner before mint")

	assert.Nil(t, r.Mint(key, owner), "mint")
	assert.Equal(t, fault.AssetAlreadyExists, r.Mint(key, fixtures.Account(2)), "second mint")

	o, err := r.OwnerOf(ctx, key)
	assert.Nil(t, err, "owner")
	assert.Equal(t, owner, o, "owner after mint")

	a, err := r.GetApproved(ctx, key)
	assert.Nil(t, err, "approved")
	assert.True(t, a.IsZero(), "approved after mint")

	assert.Equal(t, fault.InvalidAccount, r.Mint(asset.Key{Collection: "sample", Id: 2}, account.Account{}), "zero owner")
	assert.Equal(t, fault.InvalidCollection, r.Mint(asset.Key{Collection: "", Id: 2}, owner), "empty collection")
}

func TestApprove(t *testing.T) {
	defer fixtures.SetupTestStorage(t)()

	r := newRegistry()
	ctx := context.Background()
	key := asset.Key{Collection: "sample", Id: 1}
	owner := fixtures.Account(1)
	market := fixtures.Account(9)

	assert.Equal(t, fault.AssetNotFound, r.Approve(key, owner, market), "approve unminted")

	assert.Nil(t, r.Mint(key, owner), "mint")
	assert.Equal(t, fault.NotOwner, r.Approve(key, fixtures.Account(2), market), "approve by stranger")

	assert.Nil(t, r.Approve(key, owner, market), "approve")
	a, err := r.GetApproved(ctx, key)
	assert.Nil(t, err, "approved")
	assert.Equal(t, market, a, "approved account")

	assert.Nil(t, r.Approve(key, owner, account.Account{}), "revoke")
	a, err = r.GetApproved(ctx, key)
	assert.Nil(t, err, "approved after revoke")
	assert.True(t, a.IsZero(), "revoked")
}

func TestTransferByApproved(t *testing.T) {
	defer fixtures.SetupTestStorage(t)()

	r := newRegistry()
	ctx := context.Background()
	key := asset.Key{Collection: "sample", Id: 1}
	seller := fixtures.Account(1)
	buyer := fixtures.Account(2)
	market := fixtures.Account(9)

	assert.Nil(t, r.Mint(key, seller), "mint")

	err := r.Spender(market).Transfer(ctx, seller, buyer, key)
	assert.Equal(t, fault.NotApproved, err, "transfer before approval")

	assert.Nil(t, r.Approve(key, seller, market), "approve")

	err = r.Spender(market).Transfer(ctx, buyer, market, key)
	assert.Equal(t, fault.NotOwner, err, "transfer from non owner")

	err = r.Spender(market).Transfer(ctx, seller, buyer, key)
	assert.Nil(t, err, "transfer")

	o, err := r.OwnerOf(ctx, key)
	assert.Nil(t, err, "owner")
	assert.Equal(t, buyer, o, "new owner")

	a, err := r.GetApproved(ctx, key)
	assert.Nil(t, err, "approved")
	assert.True(t, a.IsZero(), "approval not cleared")

	err = r.Spender(market).Transfer(ctx, buyer, seller, key)
	assert.Equal(t, fault.NotApproved, err, "stale approval used")
}

func TestTransferByOwner(t *testing.T) {
	defer fixtures.SetupTestStorage(t)()

	r := newRegistry()
	ctx := context.Background()
	key := asset.Key{Collection: "sample", Id: 1}
	owner := fixtures.Account(1)
	other := fixtures.Account(2)

	assert.Nil(t, r.Mint(key, owner), "mint")
	assert.Equal(t, fault.InvalidAccount, r.Spender(owner).Transfer(ctx, owner, account.Account{}, key), "to zero")
	assert.Nil(t, r.Spender(owner).Transfer(ctx, owner, other, key), "owner transfer")

	o, err := r.OwnerOf(ctx, key)
	assert.Nil(t, err, "owner")
	assert.Equal(t, other, o, "new owner")

	missing := asset.Key{Collection: "sample", Id: 99}
	assert.Equal(t, fault.AssetNotFound, r.Spender(owner).Transfer(ctx, owner, other, missing), "missing asset")
}

func TestCanceledContext(t *testing.T) {
	defer fixtures.SetupTestStorage(t)()

	r := newRegistry()
	key := asset.Key{Collection: "sample", Id: 1}
	assert.Nil(t, r.Mint(key, fixtures.Account(1)), "mint")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.OwnerOf(ctx, key)
	assert.Equal(t, context.Canceled, err, "owner")
	_, err = r.GetApproved(ctx, key)
	assert.Equal(t, context.Canceled, err, "approved")
	err = r.Spender(fixtures.Account(1)).Transfer(ctx, fixtures.Account(1), fixtures.Account(2), key)
	assert.Equal(t, context.Canceled, err, "transfer")
}
