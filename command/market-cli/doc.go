// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// market-cli - command line client for marketd
//
// state changing commands are signed with the key given by --key and
// carry a nonce that must increase for each account
//
//   market-cli --key=seller.private list --asset=art/12 --price=500
//   market-cli --key=buyer.private buy --asset=art/12 --payment=500
//   market-cli --key=seller.private withdraw
package main
