// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/listing"
	"github.com/bitmark-inc/marketd/marketplace/mocks"
	"github.com/bitmark-inc/marketd/rpc/market"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

var sampleKey = asset.Key{Collection: "sample", Id: 7}

type nonces map[account.Account]uint64

func (n nonces) Use(a account.Account, nonce uint64) error {
	if nonce <= n[a] {
		return fault.NonceTooLow
	}
	n[a] = nonce
	return nil
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T) (*gomock.Controller, *mocks.MockMarketplace, *market.Market) {
	ctl := gomock.NewController(t)
	m := mocks.NewMockMarketplace(ctl)
	return ctl, m, market.New(logger.New(fixtures.LogCategory), m, nonces{})
}

func TestList(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.PrivateKey(1)
	m.EXPECT().ListItem(gomock.Any(), sampleKey, uint64(100), seller.Account()).Return(nil).Times(1)

	args := market.ListArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Price:      100,
		Envelope:   signed.Sign(seller, market.MethodList, 1, market.ListFields(sampleKey, 100)...),
	}
	var reply market.ItemReply
	err := h.List(&args, &reply)
	assert.Nil(t, err, "list")
	assert.Equal(t, market.ItemReply{Collection: "sample", AssetId: 7, Price: 100}, reply, "reply")

	// same nonce again is a replay and never reaches the market
	err = h.List(&args, &reply)
	assert.Equal(t, fault.NonceTooLow, err, "replay")
}

func TestListBadSignature(t *testing.T) {
	ctl, _, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.PrivateKey(1)
	args := market.ListArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Price:      1,
		Envelope:   signed.Sign(seller, market.MethodList, 1, market.ListFields(sampleKey, 100)...),
	}
	var reply market.ItemReply
	assert.Equal(t, fault.InvalidSignature, h.List(&args, &reply), "price changed after signing")
}

func TestBuy(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	buyer := fixtures.PrivateKey(2)
	gomock.InOrder(
		m.EXPECT().BuyItem(gomock.Any(), sampleKey, uint64(150), buyer.Account()).Return(nil),
		m.EXPECT().BuyItem(gomock.Any(), sampleKey, uint64(150), buyer.Account()).Return(fault.NotListed),
	)

	var reply market.ItemReply
	for i, expected := range []error{nil, fault.NotListed} {
		nonce := uint64(10 + i)
		args := market.BuyArguments{
			Collection: sampleKey.Collection,
			AssetId:    sampleKey.Id,
			Payment:    150,
			Envelope:   signed.Sign(buyer, market.MethodBuy, nonce, market.BuyFields(sampleKey, 150)...),
		}
		assert.Equal(t, expected, h.Buy(&args, &reply), "%d: buy", i)
	}
}

func TestCancelAndUpdate(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.PrivateKey(1)
	m.EXPECT().UpdateListing(gomock.Any(), sampleKey, uint64(200), seller.Account()).Return(nil).Times(1)
	m.EXPECT().CancelListing(gomock.Any(), sampleKey, seller.Account()).Return(nil).Times(1)

	var reply market.ItemReply
	update := market.UpdateArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Price:      200,
		Envelope:   signed.Sign(seller, market.MethodUpdate, 1, market.UpdateFields(sampleKey, 200)...),
	}
	assert.Nil(t, h.Update(&update, &reply), "update")
	assert.Equal(t, uint64(200), reply.Price, "updated price")

	// an update signature is not valid for a cancel
	cancel := market.CancelArguments{
		Collection: sampleKey.Collection,
		AssetId:    sampleKey.Id,
		Envelope:   signed.Sign(seller, market.MethodUpdate, 2, market.CancelFields(sampleKey)...),
	}
	assert.Equal(t, fault.InvalidSignature, h.Cancel(&cancel, &reply), "wrong method")

	cancel.Envelope = signed.Sign(seller, market.MethodCancel, 2, market.CancelFields(sampleKey)...)
	assert.Nil(t, h.Cancel(&cancel, &reply), "cancel")
	assert.Equal(t, market.ItemReply{Collection: "sample", AssetId: 7}, reply, "cancel reply")
}

func TestWithdraw(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.PrivateKey(1)
	payoutError := errors.New("payout failed")
	gomock.InOrder(
		m.EXPECT().WithdrawProceeds(gomock.Any(), seller.Account()).Return(uint64(150), nil),
		m.EXPECT().WithdrawProceeds(gomock.Any(), seller.Account()).Return(uint64(0), payoutError),
	)

	var reply market.WithdrawReply
	args := market.WithdrawArguments{Envelope: signed.Sign(seller, market.MethodWithdraw, 1)}
	assert.Nil(t, h.Withdraw(&args, &reply), "withdraw")
	assert.Equal(t, uint64(150), reply.Amount, "amount")

	args = market.WithdrawArguments{Envelope: signed.Sign(seller, market.MethodWithdraw, 2)}
	assert.Equal(t, payoutError, h.Withdraw(&args, &reply), "failed withdraw")
}

func TestListing(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.Account(1)
	gomock.InOrder(
		m.EXPECT().GetListing(sampleKey).Return(listing.Listing{Price: 100, Seller: seller}),
		m.EXPECT().GetListing(sampleKey).Return(listing.Listing{}),
	)

	var reply market.ListingReply
	args := market.ListingArguments{Collection: sampleKey.Collection, AssetId: sampleKey.Id}
	assert.Nil(t, h.Listing(&args, &reply), "listed")
	assert.True(t, reply.Listed, "listed flag")
	assert.Equal(t, uint64(100), reply.Price, "price")
	assert.Equal(t, seller, *reply.Seller, "seller")

	assert.Nil(t, h.Listing(&args, &reply), "absent")
	assert.Equal(t, market.ListingReply{}, reply, "absent reply")

	bad := market.ListingArguments{Collection: "", AssetId: 1}
	assert.Equal(t, fault.InvalidCollection, h.Listing(&bad, &reply), "empty collection")
}

func TestListings(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.Account(1)
	entries := []listing.Entry{
		{Key: asset.Key{Collection: "a", Id: 1}, Listing: listing.Listing{Price: 5, Seller: seller}},
		{Key: asset.Key{Collection: "b", Id: 2}, Listing: listing.Listing{Price: 6, Seller: seller}},
	}
	after := asset.Key{Collection: "a", Id: 0}
	gomock.InOrder(
		m.EXPECT().Listings(nil, 2).Return(entries, nil),
		m.EXPECT().Listings(&after, 2).Return([]listing.Entry{}, nil),
	)

	var reply market.ListingsReply
	assert.Nil(t, h.Listings(&market.ListingsArguments{Count: 2}, &reply), "first page")
	assert.Equal(t, 2, len(reply.Listings), "count")
	assert.Equal(t, "b", reply.Listings[1].Collection, "second collection")
	assert.Equal(t, "b/2", reply.Next, "next")

	assert.Nil(t, h.Listings(&market.ListingsArguments{After: "a/0", Count: 2}, &reply), "empty page")
	assert.Equal(t, 0, len(reply.Listings), "nothing")
	assert.Equal(t, "a/0", reply.Next, "next unchanged")

	assert.Equal(t, fault.InvalidCount, h.Listings(&market.ListingsArguments{Count: 0}, &reply), "zero count")
	assert.Equal(t, fault.InvalidCount, h.Listings(&market.ListingsArguments{Count: 101}, &reply), "big count")
}

func TestProceeds(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	seller := fixtures.Account(1)
	m.EXPECT().GetProceeds(seller).Return(uint64(150)).Times(1)

	var reply market.ProceedsReply
	assert.Nil(t, h.Proceeds(&market.ProceedsArguments{Seller: seller}, &reply), "proceeds")
	assert.Equal(t, uint64(150), reply.Amount, "amount")
}

func TestFunds(t *testing.T) {
	ctl, m, h := setup(t)
	defer ctl.Finish()

	buyer := fixtures.Account(2)
	m.EXPECT().GetFunds(buyer).Return(uint64(320)).Times(1)

	var reply market.FundsReply
	assert.Nil(t, h.Funds(&market.FundsArguments{Buyer: buyer}, &reply), "funds")
	assert.Equal(t, uint64(320), reply.Amount, "amount")
}
