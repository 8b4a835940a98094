// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace_test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	custodymocks "github.com/bitmark-inc/marketd/custody/mocks"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/listing"
	"github.com/bitmark-inc/marketd/marketplace"
	"github.com/bitmark-inc/marketd/messagebus"
	payoutmocks "github.com/bitmark-inc/marketd/payout/mocks"
	"github.com/bitmark-inc/marketd/proceeds"
	"github.com/bitmark-inc/marketd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var (
	sampleKey = asset.Key{Collection: "sample", Id: 7}
	seller    = fixtures.Account(1)
	buyer     = fixtures.Account(2)
	stranger  = fixtures.Account(3)
	marketId  = fixtures.Account(9)
)

type testMarket struct {
	market   *marketplace.Market
	custody  *custodymocks.MockCustody
	payer    *payoutmocks.MockPayer
	deposits proceeds.Ledger
	events   <-chan messagebus.Message
}

// a market over real storage with mocked custody and payout
func setupMarket(t *testing.T) (*testMarket, func()) {
	closeStorage := fixtures.SetupTestStorage(t)
	ctl := gomock.NewController(t)

	c := custodymocks.NewMockCustody(ctl)
	p := payoutmocks.NewMockPayer(ctl)
	deposits := proceeds.New(storage.Pool.Deposits)

	m := marketplace.New(logger.New(fixtures.LogCategory), marketplace.Config{
		Account:  marketId,
		Listings: listing.New(storage.Pool.Listings),
		Proceeds: proceeds.New(storage.Pool.Proceeds),
		Deposits: deposits,
		Custody:  c,
		Payer:    p,
	})

	events := messagebus.Bus.Broadcast.Chan(100)

	tm := &testMarket{
		market:   m,
		custody:  c,
		payer:    p,
		deposits: deposits,
		events:   events,
	}
	return tm, func() {
		messagebus.Bus.Broadcast.Unsubscribe(events)
		ctl.Finish()
		closeStorage()
	}
}

// set up custody answers so that seller owns the asset and has
// approved the market
func (tm *testMarket) ownedAndApproved(key asset.Key, owner account.Account) {
	tm.custody.EXPECT().OwnerOf(gomock.Any(), key).Return(owner, nil).AnyTimes()
	tm.custody.EXPECT().GetApproved(gomock.Any(), key).Return(marketId, nil).AnyTimes()
}

// add to an account's deposited funds
func fund(t *testing.T, deposits proceeds.Ledger, holder account.Account, amount uint64) {
	t.Helper()
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}
	if err := deposits.Credit(trx, holder, amount); nil != err {
		trx.Abort()
		t.Fatalf("fund: %s  amount: %d  error: %s", holder, amount, err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

// read the next event and decode it
func expectEvent(t *testing.T, events <-chan messagebus.Message, command string, v interface{}) {
	t.Helper()
	select {
	case m := <-events:
		if command != m.Command {
			t.Fatalf("event: %q  expected: %q", m.Command, command)
		}
		if 1 != len(m.Parameters) {
			t.Fatalf("event: %q  parameter count: %d", m.Command, len(m.Parameters))
		}
		if err := json.Unmarshal(m.Parameters[0], v); nil != err {
			t.Fatalf("event: %q  unmarshal error: %s", m.Command, err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for event: %q", command)
	}
}

func expectNoEvent(t *testing.T, events <-chan messagebus.Message) {
	t.Helper()
	select {
	case m := <-events:
		t.Fatalf("unexpected event: %q  data: %s", m.Command, m.Parameters)
	default:
	}
}
