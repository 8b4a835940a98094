// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/marketplace"
	"github.com/bitmark-inc/marketd/rpc/custodian"
	"github.com/bitmark-inc/marketd/rpc/market"
	"github.com/bitmark-inc/marketd/rpc/node"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

// Services - what the RPC handlers operate on
//
// Custody is nil when assets are held by an external authority
type Services struct {
	Market    marketplace.Marketplace
	Custody   custodian.Registry
	Nonces    signed.Nonces
	AllowMint bool
}

// Create - an RPC server with every handler registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services Services) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(market.New(log, services.Market, services.Nonces))
	_ = server.Register(node.New(log, start, version, services.Market.Account(), rpcCount))
	if nil != services.Custody {
		_ = server.Register(custodian.New(log, services.Custody, services.Nonces, services.AllowMint))
	}

	return server
}
