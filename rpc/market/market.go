// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/marketplace"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100

	maximumListingsCount = 100
	callTimeout          = 30 * time.Second
)

// RPC method names, also the first signed field
const (
	MethodList     = "Market.List"
	MethodBuy      = "Market.Buy"
	MethodCancel   = "Market.Cancel"
	MethodUpdate   = "Market.Update"
	MethodWithdraw = "Market.Withdraw"
)

// Market - type for RPC calls
type Market struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Market  marketplace.Marketplace
	Nonces  signed.Nonces
}

// New - create the market RPC handler
func New(log *logger.L, m marketplace.Marketplace, nonces signed.Nonces) *Market {
	return &Market{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMarket, rateBurstMarket),
		Market:  m,
		Nonces:  nonces,
	}
}

// ItemReply - the asset a state change applied to
type ItemReply struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	Price      uint64 `json:"price,string,omitempty"`
}

// ---

// ListArguments - offer an asset
type ListArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	Price      uint64 `json:"price,string"`
	signed.Envelope
}

// ListFields - the signed fields of a list request
func ListFields(key asset.Key, price uint64) []string {
	return []string{key.String(), strconv.FormatUint(price, 10)}
}

// List - create a listing, the caller must own the asset
func (m *Market) List(arguments *ListArguments, reply *ItemReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(m.Nonces, MethodList, ListFields(key, arguments.Price)...); nil != err {
		return err
	}

	m.Log.Infof("list: %s  price: %d  caller: %s", key, arguments.Price, arguments.Caller)

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := m.Market.ListItem(ctx, key, arguments.Price, arguments.Caller); nil != err {
		return err
	}

	*reply = ItemReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      arguments.Price,
	}
	return nil
}

// ---

// BuyArguments - pay for a listed asset
type BuyArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	Payment    uint64 `json:"payment,string"`
	signed.Envelope
}

// BuyFields - the signed fields of a buy request
func BuyFields(key asset.Key, payment uint64) []string {
	return []string{key.String(), strconv.FormatUint(payment, 10)}
}

// Buy - purchase a listed asset paying from the caller's deposit, the
// reply carries the amount paid
func (m *Market) Buy(arguments *BuyArguments, reply *ItemReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(m.Nonces, MethodBuy, BuyFields(key, arguments.Payment)...); nil != err {
		return err
	}

	m.Log.Infof("buy: %s  payment: %d  caller: %s", key, arguments.Payment, arguments.Caller)

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := m.Market.BuyItem(ctx, key, arguments.Payment, arguments.Caller); nil != err {
		return err
	}

	*reply = ItemReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      arguments.Payment,
	}
	return nil
}

// ---

// CancelArguments - withdraw a listing
type CancelArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	signed.Envelope
}

// CancelFields - the signed fields of a cancel request
func CancelFields(key asset.Key) []string {
	return []string{key.String()}
}

// Cancel - remove a listing
func (m *Market) Cancel(arguments *CancelArguments, reply *ItemReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(m.Nonces, MethodCancel, CancelFields(key)...); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := m.Market.CancelListing(ctx, key, arguments.Caller); nil != err {
		return err
	}

	*reply = ItemReply{
		Collection: key.Collection,
		AssetId:    key.Id,
	}
	return nil
}

// ---

// UpdateArguments - reprice a listing
type UpdateArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	Price      uint64 `json:"price,string"`
	signed.Envelope
}

// UpdateFields - the signed fields of an update request
func UpdateFields(key asset.Key, price uint64) []string {
	return []string{key.String(), strconv.FormatUint(price, 10)}
}

// Update - change the price of a listing
func (m *Market) Update(arguments *UpdateArguments, reply *ItemReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(m.Nonces, MethodUpdate, UpdateFields(key, arguments.Price)...); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	if err := m.Market.UpdateListing(ctx, key, arguments.Price, arguments.Caller); nil != err {
		return err
	}

	*reply = ItemReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      arguments.Price,
	}
	return nil
}

// ---

// WithdrawArguments - only the signed envelope
type WithdrawArguments struct {
	signed.Envelope
}

// WithdrawReply - amount paid out
type WithdrawReply struct {
	Amount uint64 `json:"amount,string"`
}

// Withdraw - pay out all of the caller's proceeds
func (m *Market) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	if err := arguments.Verify(m.Nonces, MethodWithdraw); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	amount, err := m.Market.WithdrawProceeds(ctx, arguments.Caller)
	if nil != err {
		return err
	}
	reply.Amount = amount
	return nil
}

// ---

// ListingArguments - asset to look up
type ListingArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
}

// ListingReply - a listing, Listed is false when absent
type ListingReply struct {
	Listed bool             `json:"listed"`
	Price  uint64           `json:"price,string"`
	Seller *account.Account `json:"seller,omitempty"`
}

// Listing - read one listing
func (m *Market) Listing(arguments *ListingArguments, reply *ListingReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := key.Validate(); nil != err {
		return err
	}

	l := m.Market.GetListing(key)
	if !l.IsActive() {
		*reply = ListingReply{}
		return nil
	}
	seller := l.Seller
	*reply = ListingReply{
		Listed: true,
		Price:  l.Price,
		Seller: &seller,
	}
	return nil
}

// ---

// ListingsArguments - page request, After is a "collection/id" key or empty
type ListingsArguments struct {
	After string `json:"after"`
	Count int    `json:"count"`
}

// ListingsEntry - one active listing
type ListingsEntry struct {
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId,string"`
	Price      uint64          `json:"price,string"`
	Seller     account.Account `json:"seller"`
}

// ListingsReply - a page of listings, Next continues the scan
type ListingsReply struct {
	Listings []ListingsEntry `json:"listings"`
	Next     string          `json:"next"`
}

// Listings - page through active listings in key order
func (m *Market) Listings(arguments *ListingsArguments, reply *ListingsReply) error {
	if err := ratelimit.LimitN(m.Limiter, arguments.Count, maximumListingsCount); nil != err {
		return err
	}

	var after *asset.Key
	if "" != arguments.After {
		k, err := asset.Parse(arguments.After)
		if nil != err {
			return err
		}
		after = &k
	}

	entries, err := m.Market.Listings(after, arguments.Count)
	if nil != err {
		return err
	}

	reply.Listings = make([]ListingsEntry, len(entries))
	for i, e := range entries {
		reply.Listings[i] = ListingsEntry{
			Collection: e.Key.Collection,
			AssetId:    e.Key.Id,
			Price:      e.Listing.Price,
			Seller:     e.Listing.Seller,
		}
	}
	reply.Next = arguments.After
	if 0 != len(entries) {
		reply.Next = entries[len(entries)-1].Key.String()
	}
	return nil
}

// ---

// ProceedsArguments - seller to look up
type ProceedsArguments struct {
	Seller account.Account `json:"seller"`
}

// ProceedsReply - withdrawable balance
type ProceedsReply struct {
	Amount uint64 `json:"amount,string"`
}

// Proceeds - read a seller's balance
func (m *Market) Proceeds(arguments *ProceedsArguments, reply *ProceedsReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	reply.Amount = m.Market.GetProceeds(arguments.Seller)
	return nil
}

// ---

// FundsArguments - buyer to look up
type FundsArguments struct {
	Buyer account.Account `json:"buyer"`
}

// FundsReply - deposit available for buying
type FundsReply struct {
	Amount uint64 `json:"amount,string"`
}

// Funds - read a buyer's deposit
func (m *Market) Funds(arguments *FundsArguments, reply *FundsReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	reply.Amount = m.Market.GetFunds(arguments.Buyer)
	return nil
}
