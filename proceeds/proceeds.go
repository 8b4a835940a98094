// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proceeds

import (
	"math"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/storage"
)

// Ledger - balances held for accounts
//
// the market keeps sellers' withdrawable proceeds and buyers'
// deposited funds in two ledgers of this kind, a missing record is a
// zero balance
type Ledger interface {
	Credit(storage.Transaction, account.Account, uint64) error
	Debit(storage.Transaction, account.Account, uint64) error
	TakeAll(storage.Transaction, account.Account) (uint64, error)
	Get(account.Account) uint64
}

type ledger struct {
	pool storage.Handle
}

// New - ledger over the given pool
func New(pool storage.Handle) Ledger {
	return &ledger{
		pool: pool,
	}
}

// Credit - add to a seller's balance
func (l *ledger) Credit(trx storage.Transaction, seller account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	balance, _ := trx.GetN(l.pool, seller[:])
	if balance > math.MaxUint64-amount {
		return fault.ProceedsOverflow
	}
	trx.PutN(l.pool, seller[:], balance+amount)
	return nil
}

// Debit - remove part of a balance, all or nothing
//
// a balance reaching zero is deleted
func (l *ledger) Debit(trx storage.Transaction, holder account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	balance, _ := trx.GetN(l.pool, holder[:])
	if balance < amount {
		return fault.InsufficientFunds
	}
	if balance == amount {
		trx.Delete(l.pool, holder[:])
	} else {
		trx.PutN(l.pool, holder[:], balance-amount)
	}
	return nil
}

// TakeAll - zero a seller's balance returning what it was
func (l *ledger) TakeAll(trx storage.Transaction, seller account.Account) (uint64, error) {
	balance, found := trx.GetN(l.pool, seller[:])
	if !found || 0 == balance {
		return 0, fault.NoProceeds
	}
	trx.Delete(l.pool, seller[:])
	return balance, nil
}

// Get - committed balance
func (l *ledger) Get(seller account.Account) uint64 {
	balance, _ := l.pool.GetN(seller[:])
	return balance
}
