// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nonce - per account request counters that prevent a
// signed request from being replayed
package nonce

import (
	"sync"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/storage"
)

// Ledger - last accepted nonce of each account
type Ledger struct {
	sync.Mutex
	pool storage.Handle
}

// New - nonce ledger over the given pool
func New(pool storage.Handle) *Ledger {
	return &Ledger{
		pool: pool,
	}
}

// Use - accept n only if it is greater than the last accepted value
//
// the nonce is consumed immediately whatever the outcome of the request
func (l *Ledger) Use(a account.Account, n uint64) error {
	if a.IsZero() {
		return fault.InvalidAccount
	}

	l.Lock()
	defer l.Unlock()

	last, _ := l.pool.GetN(a[:])
	if n <= last {
		return fault.NonceTooLow
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	trx.PutN(l.pool, a[:], n)
	return trx.Commit()
}

// Last - the last accepted nonce, zero if none
func (l *Ledger) Last(a account.Account) uint64 {
	last, _ := l.pool.GetN(a[:])
	return last
}
