// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/marketd/fault"
)

// Transaction - a set of writes across pools that are applied
// atomically by Commit or discarded by Abort
//
// reads see the transaction's own writes
type Transaction interface {
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Delete(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	GetNB(Handle, []byte) (uint64, []byte)
	Has(Handle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	sync.Mutex
	finished bool
	database *leveldb.DB
	batch    *leveldb.Batch
	cache    Cache
}

func newTransaction(database *leveldb.DB) Transaction {
	return &transactionData{
		database: database,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

func (t *transactionData) Put(handle Handle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()
	t.mustBeActive()

	prefixed := prefixKey(handle.Prefix(), key)
	t.cache.Set(dbPut, string(prefixed), value)
	t.batch.Put(prefixed, value)
}

func (t *transactionData) PutN(handle Handle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(handle, key, buffer)
}

func (t *transactionData) Delete(handle Handle, key []byte) {
	t.Lock()
	defer t.Unlock()
	t.mustBeActive()

	prefixed := prefixKey(handle.Prefix(), key)
	t.cache.Set(dbDelete, string(prefixed), nil)
	t.batch.Delete(prefixed)
}

func (t *transactionData) Get(handle Handle, key []byte) []byte {
	t.Lock()
	op, value, found := t.cache.Get(string(prefixKey(handle.Prefix(), key)))
	t.Unlock()

	if !found {
		return handle.Get(key)
	}
	if dbDelete == op {
		return nil
	}
	return value
}

func (t *transactionData) GetN(handle Handle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(handle, key))
}

func (t *transactionData) GetNB(handle Handle, key []byte) (uint64, []byte) {
	return decodeNB(key, t.Get(handle, key))
}

func (t *transactionData) Has(handle Handle, key []byte) bool {
	t.Lock()
	op, _, found := t.cache.Get(string(prefixKey(handle.Prefix(), key)))
	t.Unlock()

	if !found {
		return handle.Has(key)
	}
	return dbPut == op
}

func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	if t.finished {
		return fault.TransactionIsFinished
	}
	t.finished = true

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.DatabaseIsNotSet
	}

	err := t.database.Write(t.batch, nil)
	t.batch.Reset()
	t.cache.Clear()
	return err
}

func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.finished = true
	t.batch.Reset()
	t.cache.Clear()
}

func (t *transactionData) mustBeActive() {
	if t.finished {
		logger.Panic("storage: write to finished transaction")
	}
}
