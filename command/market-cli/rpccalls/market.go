// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/rpc/market"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

// Signer - the caller's key and the nonce for the next request
type Signer struct {
	Key   *account.PrivateKey
	Nonce uint64
}

func (s Signer) sign(method string, fields ...string) signed.Envelope {
	return signed.Sign(s.Key, method, s.Nonce, fields...)
}

// List - offer an asset for sale
func (c *Client) List(s Signer, key asset.Key, price uint64) (*market.ItemReply, error) {
	arguments := market.ListArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      price,
		Envelope:   s.sign(market.MethodList, market.ListFields(key, price)...),
	}
	var reply market.ItemReply
	if err := c.call(market.MethodList, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Buy - purchase a listed asset
func (c *Client) Buy(s Signer, key asset.Key, payment uint64) (*market.ItemReply, error) {
	arguments := market.BuyArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Payment:    payment,
		Envelope:   s.sign(market.MethodBuy, market.BuyFields(key, payment)...),
	}
	var reply market.ItemReply
	if err := c.call(market.MethodBuy, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Cancel - withdraw a listing
func (c *Client) Cancel(s Signer, key asset.Key) (*market.ItemReply, error) {
	arguments := market.CancelArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Envelope:   s.sign(market.MethodCancel, market.CancelFields(key)...),
	}
	var reply market.ItemReply
	if err := c.call(market.MethodCancel, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Update - change the price of a listing
func (c *Client) Update(s Signer, key asset.Key, price uint64) (*market.ItemReply, error) {
	arguments := market.UpdateArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      price,
		Envelope:   s.sign(market.MethodUpdate, market.UpdateFields(key, price)...),
	}
	var reply market.ItemReply
	if err := c.call(market.MethodUpdate, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Withdraw - pay out all of the caller's proceeds
func (c *Client) Withdraw(s Signer) (*market.WithdrawReply, error) {
	arguments := market.WithdrawArguments{
		Envelope: s.sign(market.MethodWithdraw),
	}
	var reply market.WithdrawReply
	if err := c.call(market.MethodWithdraw, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Listing - read one listing
func (c *Client) Listing(key asset.Key) (*market.ListingReply, error) {
	arguments := market.ListingArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
	}
	var reply market.ListingReply
	if err := c.call("Market.Listing", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Listings - one page of active listings
func (c *Client) Listings(after string, count int) (*market.ListingsReply, error) {
	arguments := market.ListingsArguments{
		After: after,
		Count: count,
	}
	var reply market.ListingsReply
	if err := c.call("Market.Listings", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Funds - a buyer's deposit
func (c *Client) Funds(buyer account.Account) (*market.FundsReply, error) {
	arguments := market.FundsArguments{
		Buyer: buyer,
	}
	var reply market.FundsReply
	if err := c.call("Market.Funds", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Proceeds - a seller's unwithdrawn balance
func (c *Client) Proceeds(seller account.Account) (*market.ProceedsReply, error) {
	arguments := market.ProceedsArguments{
		Seller: seller,
	}
	var reply market.ProceedsReply
	if err := c.call("Market.Proceeds", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
