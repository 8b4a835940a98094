// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/custody"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/listing"
	"github.com/bitmark-inc/marketd/payout"
	"github.com/bitmark-inc/marketd/proceeds"
	"github.com/bitmark-inc/marketd/storage"
)

// Marketplace - the operations offered to callers
type Marketplace interface {
	ListItem(ctx context.Context, key asset.Key, price uint64, caller account.Account) error
	BuyItem(ctx context.Context, key asset.Key, payment uint64, buyer account.Account) error
	CancelListing(ctx context.Context, key asset.Key, caller account.Account) error
	UpdateListing(ctx context.Context, key asset.Key, newPrice uint64, caller account.Account) error
	WithdrawProceeds(ctx context.Context, caller account.Account) (uint64, error)
	GetListing(key asset.Key) listing.Listing
	GetProceeds(seller account.Account) uint64
	GetFunds(buyer account.Account) uint64
	Listings(after *asset.Key, count int) ([]listing.Entry, error)
	Account() account.Account
}

// Market - the marketplace state machine
//
// operations run one at a time, a call made from inside a custody
// transfer or a payout carries the outer call's context and runs
// without taking the lock again
type Market struct {
	lock   sync.Mutex
	buying bool

	log      *logger.L
	self     account.Account
	listings listing.Registry
	proceeds proceeds.Ledger
	deposits proceeds.Ledger
	custody  custody.Custody
	payer    payout.Payer
}

// Config - the parts a market is built from
type Config struct {
	Account  account.Account // the market's own identity, approved by sellers
	Listings listing.Registry
	Proceeds proceeds.Ledger
	Deposits proceeds.Ledger // buyers' funds, payments are taken from here
	Custody  custody.Custody
	Payer    payout.Payer
}

// marks a context as belonging to a running operation
type callKey struct{}

// one running operation, it stops matching once the operation
// returns so a context kept beyond that cannot skip the lock
type call struct {
	market *Market
	active int32
}

// New - create a market
func New(log *logger.L, config Config) *Market {
	if nil == log {
		logger.Panic("marketplace: nil logger")
	}
	return &Market{
		log:      log,
		self:     config.Account,
		listings: config.Listings,
		proceeds: config.Proceeds,
		deposits: config.Deposits,
		custody:  config.Custody,
		payer:    config.Payer,
	}
}

// Account - the identity sellers must approve
func (m *Market) Account() account.Account {
	return m.self
}

// serialise calls, a nested call keeps the outer call's lock
func (m *Market) enter(ctx context.Context) (context.Context, func()) {
	if c, ok := ctx.Value(callKey{}).(*call); ok && m == c.market && 1 == atomic.LoadInt32(&c.active) {
		return ctx, func() {}
	}
	m.lock.Lock()
	c := &call{
		market: m,
		active: 1,
	}
	return context.WithValue(ctx, callKey{}, c), func() {
		atomic.StoreInt32(&c.active, 0)
		m.lock.Unlock()
	}
}

// ListItem - offer an asset for sale
func (m *Market) ListItem(ctx context.Context, key asset.Key, price uint64, caller account.Account) error {
	const op = "list"

	if err := key.Validate(); nil != err {
		return newError(op, key, 0, err)
	}

	ctx, exit := m.enter(ctx)
	defer exit()

	if m.listings.Get(key).IsActive() {
		return newError(op, key, 0, fault.AlreadyListed)
	}
	if err := m.isOwner(ctx, op, key, caller); nil != err {
		return err
	}
	if 0 == price {
		return newError(op, key, price, fault.PriceMustBeAboveZero)
	}

	approved, err := m.custody.GetApproved(ctx, key)
	if nil != err {
		return newError(op, key, 0, err)
	}
	if approved != m.self {
		return newError(op, key, 0, fault.NotApprovedForMarketplace)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return newError(op, key, 0, err)
	}
	err = m.listings.Put(trx, key, price, caller)
	if nil != err {
		trx.Abort()
		return newError(op, key, price, err)
	}
	err = trx.Commit()
	if nil != err {
		m.log.Errorf("list: %s  commit error: %s", key, err)
		return newError(op, key, price, err)
	}

	m.log.Infof("listed: %s  price: %d  seller: %s", key, price, caller)
	m.emit(ListedCommand, ItemListed{
		Seller:     caller,
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      price,
	})
	return nil
}

// BuyItem - pay for a listed asset
//
// the payment is taken from the buyer's deposit and the whole of it
// goes to the seller's proceeds even if it exceeds the price, this
// and clearing the listing are committed before the custody transfer
// is attempted, a failed transfer reverses all three
func (m *Market) BuyItem(ctx context.Context, key asset.Key, payment uint64, buyer account.Account) error {
	const op = "buy"

	if buyer.IsZero() {
		return newError(op, key, 0, fault.InvalidAccount)
	}

	ctx, exit := m.enter(ctx)
	defer exit()

	if m.buying {
		return newError(op, key, 0, fault.ReentrantCall)
	}
	m.buying = true
	defer func() {
		m.buying = false
	}()

	l := m.listings.Get(key)
	if !l.IsActive() {
		return newError(op, key, 0, fault.NotListed)
	}
	if payment < l.Price {
		return newError(op, key, l.Price, fault.PriceNotMet)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return newError(op, key, payment, err)
	}
	err = m.deposits.Debit(trx, buyer, payment)
	if nil != err {
		trx.Abort()
		return newError(op, key, payment, err)
	}
	err = m.proceeds.Credit(trx, l.Seller, payment)
	if nil != err {
		trx.Abort()
		return newError(op, key, payment, err)
	}
	m.listings.Clear(trx, key)
	err = trx.Commit()
	if nil != err {
		m.log.Errorf("buy: %s  commit error: %s", key, err)
		return newError(op, key, payment, err)
	}

	m.log.Infof("sold: %s  price: %d  payment: %d  seller: %s  buyer: %s", key, l.Price, payment, l.Seller, buyer)

	err = m.custody.Transfer(ctx, l.Seller, buyer, key)
	if nil != err {
		m.log.Errorf("buy: %s  transfer from: %s  to: %s  error: %s", key, l.Seller, buyer, err)
		m.unsell(key, l, payment, buyer)
		return newError(op, key, payment, fault.TransferFailed)
	}

	m.emit(BoughtCommand, ItemBought{
		Buyer:      buyer,
		Collection: key.Collection,
		AssetId:    key.Id,
		Price:      l.Price,
	})
	return nil
}

// reverse a sale whose transfer failed, must be called with the lock
// held by the buy
//
// if a nested call has already spent the credit or relisted the asset
// nothing is reversed and the sale is left for the operator
func (m *Market) unsell(key asset.Key, l listing.Listing, payment uint64, buyer account.Account) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		m.log.Criticalf("unsell: %s  error: %s", key, err)
		return
	}
	err = m.proceeds.Debit(trx, l.Seller, payment)
	if nil == err {
		err = m.deposits.Credit(trx, buyer, payment)
	}
	if nil == err {
		err = m.listings.Put(trx, key, l.Price, l.Seller)
	}
	if nil != err {
		trx.Abort()
		m.log.Criticalf("unsell: %s  seller: %s  buyer: %s  payment: %d  error: %s", key, l.Seller, buyer, payment, err)
		return
	}
	err = trx.Commit()
	if nil != err {
		m.log.Criticalf("unsell: %s  commit error: %s", key, err)
		return
	}
	m.log.Warnf("unsold: %s  price: %d  refunded: %d  to: %s", key, l.Price, payment, buyer)
}

// CancelListing - remove a listing
func (m *Market) CancelListing(ctx context.Context, key asset.Key, caller account.Account) error {
	const op = "cancel"

	ctx, exit := m.enter(ctx)
	defer exit()

	if err := m.isOwner(ctx, op, key, caller); nil != err {
		return err
	}
	if !m.listings.Get(key).IsActive() {
		return newError(op, key, 0, fault.NotListed)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return newError(op, key, 0, err)
	}
	m.listings.Clear(trx, key)
	err = trx.Commit()
	if nil != err {
		m.log.Errorf("cancel: %s  commit error: %s", key, err)
		return newError(op, key, 0, err)
	}

	m.log.Infof("canceled: %s  seller: %s", key, caller)
	m.emit(CanceledCommand, ItemCanceled{
		Seller:     caller,
		Collection: key.Collection,
		AssetId:    key.Id,
	})
	return nil
}

// UpdateListing - change the price of a listing
func (m *Market) UpdateListing(ctx context.Context, key asset.Key, newPrice uint64, caller account.Account) error {
	const op = "update"

	ctx, exit := m.enter(ctx)
	defer exit()

	if !m.listings.Get(key).IsActive() {
		return newError(op, key, 0, fault.NotListed)
	}
	if err := m.isOwner(ctx, op, key, caller); nil != err {
		return err
	}
	if 0 == newPrice {
		return newError(op, key, newPrice, fault.PriceMustBeAboveZero)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return newError(op, key, newPrice, err)
	}
	err = m.listings.SetPrice(trx, key, newPrice)
	if nil != err {
		trx.Abort()
		return newError(op, key, newPrice, err)
	}
	err = trx.Commit()
	if nil != err {
		m.log.Errorf("update: %s  commit error: %s", key, err)
		return newError(op, key, newPrice, err)
	}

	m.log.Infof("updated: %s  price: %d  seller: %s", key, newPrice, caller)
	m.emit(UpdatedCommand, ItemUpdated{
		Seller:     caller,
		Collection: key.Collection,
		AssetId:    key.Id,
		NewPrice:   newPrice,
	})
	return nil
}

// WithdrawProceeds - pay out the caller's whole balance
//
// the balance is zeroed and committed before the payout so a nested
// withdrawal finds nothing to take, a failed payout is not restored
func (m *Market) WithdrawProceeds(ctx context.Context, caller account.Account) (uint64, error) {
	const op = "withdraw"

	ctx, exit := m.enter(ctx)
	defer exit()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, newError(op, asset.Key{}, 0, err)
	}
	amount, err := m.proceeds.TakeAll(trx, caller)
	if nil != err {
		trx.Abort()
		return 0, newError(op, asset.Key{}, 0, err)
	}
	err = trx.Commit()
	if nil != err {
		m.log.Errorf("withdraw: %s  commit error: %s", caller, err)
		return 0, newError(op, asset.Key{}, amount, err)
	}

	err = m.payer.Pay(ctx, caller, amount)
	if nil != err {
		m.log.Criticalf("withdraw: %s  amount: %d  payout error: %s", caller, amount, err)
		return 0, newError(op, asset.Key{}, amount, fault.TransferFailed)
	}

	m.log.Infof("withdrew: %s  amount: %d", caller, amount)
	return amount, nil
}

// GetListing - the current listing, zero value if not listed
func (m *Market) GetListing(key asset.Key) listing.Listing {
	return m.listings.Get(key)
}

// GetProceeds - the seller's withdrawable balance
func (m *Market) GetProceeds(seller account.Account) uint64 {
	return m.proceeds.Get(seller)
}

// GetFunds - the buyer's deposit available for payments
func (m *Market) GetFunds(buyer account.Account) uint64 {
	return m.deposits.Get(buyer)
}

// Listings - page through active listings
func (m *Market) Listings(after *asset.Key, count int) ([]listing.Entry, error) {
	return m.listings.Fetch(after, count)
}

// the caller must be the asset's current owner, checked on every call
func (m *Market) isOwner(ctx context.Context, op string, key asset.Key, caller account.Account) error {
	owner, err := m.custody.OwnerOf(ctx, key)
	if nil != err {
		return newError(op, key, 0, err)
	}
	if owner != caller {
		return newError(op, key, 0, fault.NotOwner)
	}
	return nil
}
