// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payout - deliver withdrawn proceeds to their owner
package payout

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/storage"
)

// Payer - the mechanism that moves value to an account
//
// calls back into the market must reuse ctx, see custody.Custody
type Payer interface {
	Pay(ctx context.Context, to account.Account, amount uint64) error
}

// Ledger - a payer that records the running total paid to each
// account and announces each payment
type Ledger struct {
	sync.Mutex
	log  *logger.L
	pool storage.Handle
}

// Payment - the announcement of one payout
type Payment struct {
	To     account.Account `json:"to"`
	Amount uint64          `json:"amount"`
	Total  uint64          `json:"total"`
}

// NewLedger - payout ledger over the given pool
func NewLedger(log *logger.L, pool storage.Handle) *Ledger {
	return &Ledger{
		log:  log,
		pool: pool,
	}
}

// Pay - add amount to the account's total
func (l *Ledger) Pay(ctx context.Context, to account.Account, amount uint64) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	if to.IsZero() {
		return fault.InvalidAccount
	}

	l.Lock()
	defer l.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	total, _ := trx.GetN(l.pool, to[:])
	if total > math.MaxUint64-amount {
		trx.Abort()
		return fault.ProceedsOverflow
	}
	total += amount
	trx.PutN(l.pool, to[:], total)

	err = trx.Commit()
	if nil != err {
		l.log.Errorf("pay: %s  amount: %d  error: %s", to, amount, err)
		return err
	}

	l.log.Infof("paid: %s  amount: %d  total: %d", to, amount, total)

	packed, err := json.Marshal(Payment{
		To:     to,
		Amount: amount,
		Total:  total,
	})
	logger.PanicIfError("payout: marshal", err)
	if missed := messagebus.Bus.Broadcast.Send("payout", packed); missed > 0 {
		l.log.Warnf("payout: %s  not delivered to: %d listeners", to, missed)
	}

	return nil
}

// Total - everything paid to an account so far
func (l *Ledger) Total(to account.Account) uint64 {
	total, _ := l.pool.GetN(to[:])
	return total
}
