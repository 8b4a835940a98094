// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listing

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/storage"
)

// Listing - an offer to sell one asset
//
// the zero value (price 0) means not listed
type Listing struct {
	Price  uint64          `json:"price"`
	Seller account.Account `json:"seller"`
}

// IsActive - true if the asset is listed
func (l Listing) IsActive() bool {
	return l.Price > 0
}

// Entry - a listing with its key
type Entry struct {
	Key     asset.Key `json:"key"`
	Listing Listing   `json:"listing"`
}

// Registry - access to active listings
type Registry interface {
	Put(storage.Transaction, asset.Key, uint64, account.Account) error
	Get(asset.Key) Listing
	Clear(storage.Transaction, asset.Key)
	SetPrice(storage.Transaction, asset.Key, uint64) error
	Fetch(*asset.Key, int) ([]Entry, error)
}

type registry struct {
	pool storage.Handle
}

// New - registry over the given pool
func New(pool storage.Handle) Registry {
	return &registry{
		pool: pool,
	}
}

// Put - create a listing, the asset must not already be listed
func (r *registry) Put(trx storage.Transaction, key asset.Key, price uint64, seller account.Account) error {
	if 0 == price {
		return fault.PriceMustBeAboveZero
	}
	packedKey := key.Pack()
	if trx.Has(r.pool, packedKey) {
		return fault.AlreadyListed
	}
	trx.Put(r.pool, packedKey, pack(price, seller))
	return nil
}

// Get - the committed listing, zero value if not listed
func (r *registry) Get(key asset.Key) Listing {
	return unpack(key.Pack(), r.pool.Get(key.Pack()))
}

// Clear - remove a listing, absent listings are ignored
func (r *registry) Clear(trx storage.Transaction, key asset.Key) {
	trx.Delete(r.pool, key.Pack())
}

// SetPrice - change the price keeping the seller
func (r *registry) SetPrice(trx storage.Transaction, key asset.Key, price uint64) error {
	if 0 == price {
		return fault.PriceMustBeAboveZero
	}
	packedKey := key.Pack()
	current := unpack(packedKey, trx.Get(r.pool, packedKey))
	if !current.IsActive() {
		return fault.NotListed
	}
	trx.Put(r.pool, packedKey, pack(price, current.Seller))
	return nil
}

// Fetch - up to count listings in key order starting after the given key
//
// a nil key starts at the beginning
func (r *registry) Fetch(after *asset.Key, count int) ([]Entry, error) {
	cursor := r.pool.NewFetchCursor()
	if nil != after {
		cursor.Seek(append(after.Pack(), 0x00))
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(elements))
	for _, e := range elements {
		key, err := asset.Unpack(e.Key)
		if nil != err {
			logger.Panicf("listing: corrupt key: %x  error: %s", e.Key, err)
		}
		entries = append(entries, Entry{
			Key:     key,
			Listing: unpack(e.Key, e.Value),
		})
	}
	return entries, nil
}

// record: price ++ seller
func pack(price uint64, seller account.Account) []byte {
	buffer := make([]byte, 8, 8+account.PublicKeyLength)
	binary.BigEndian.PutUint64(buffer, price)
	return append(buffer, seller[:]...)
}

func unpack(key []byte, record []byte) Listing {
	if nil == record {
		return Listing{}
	}
	if 8+account.PublicKeyLength != len(record) {
		logger.Panicf("listing: corrupt record for: %x: %x", key, record)
	}
	seller, err := account.FromBytes(record[8:])
	logger.PanicIfError("listing: seller", err)
	return Listing{
		Price:  binary.BigEndian.Uint64(record[:8]),
		Seller: seller,
	}
}
