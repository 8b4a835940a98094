// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. asset key    = len(collection) ++ collection ++ asset id (big endian uint64)
// 4. account      = 32 byte ED25519 public key
// 5. amount       = big endian uint64 (8 bytes)
//
// Market:
//
//   L ++ asset key             - active listing
//                                data: price ++ seller
//   P ++ seller                - withdrawable proceeds, removed when zero
//                                data: amount
//
// Custody:
//
//   O ++ asset key             - current owner
//                                data: account
//   A ++ asset key             - account approved to transfer the asset
//                                data: account
//
// Payout:
//
//   W ++ account               - total paid out
//                                data: amount
//
// Requests:
//
//   N ++ account               - last accepted request nonce
//                                data: big endian uint64
//
// Testing:
//   Z ++ key                   - testing data
package storage
