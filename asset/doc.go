// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - identity of a tradable asset
//
// an asset is named by its collection and a numeric id, the packed
// form is the storage key shared by the listing, custody and approval
// pools so that all of them iterate in the same order
package asset
