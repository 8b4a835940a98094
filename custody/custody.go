// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custody - ownership and transfer authority for assets
//
// the marketplace never holds assets, it asks the custody authority
// who owns an asset, who is approved to move it and to move it
package custody

import (
	"context"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
)

// Custody - the asset authority as seen by one spender
//
// an implementation that calls back into the market must pass on the
// ctx it was given, a fresh context waits for the market lock
type Custody interface {
	OwnerOf(context.Context, asset.Key) (account.Account, error)
	GetApproved(context.Context, asset.Key) (account.Account, error)
	Transfer(ctx context.Context, from account.Account, to account.Account, key asset.Key) error
}
