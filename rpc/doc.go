// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client access to the market
//
// TLS JSON-RPC methods:
//
//   Market.List, Market.Buy, Market.Cancel, Market.Update, Market.Withdraw
//   Market.Listing, Market.Listings, Market.Proceeds, Market.Funds
//   Custody.Mint, Custody.Approve, Custody.Transfer, Custody.Owner
//   Node.Info
//
// state changing methods carry a caller, nonce and signature, see
// the signed package
//
// HTTPS GET endpoints, each restricted by its own CIDR allow list:
//
//   /marketd/details
//   /marketd/listing?key=<collection>/<id>
//   /marketd/proceeds?seller=<account>
//
// and POST /marketd/rpc for JSON-RPC over HTTPS
package rpc
