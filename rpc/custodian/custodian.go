// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custodian - RPC access to the built-in custody registry
package custodian

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/custody"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
	"github.com/bitmark-inc/marketd/rpc/signed"
)

const (
	rateLimitCustody = 100
	rateBurstCustody = 50
)

// RPC method names
const (
	MethodMint     = "Custody.Mint"
	MethodApprove  = "Custody.Approve"
	MethodTransfer = "Custody.Transfer"
)

// Registry - the custody operations offered over RPC
type Registry interface {
	Mint(asset.Key, account.Account) error
	Approve(key asset.Key, owner account.Account, approved account.Account) error
	OwnerOf(context.Context, asset.Key) (account.Account, error)
	GetApproved(context.Context, asset.Key) (account.Account, error)
	Spender(account.Account) custody.Custody
}

// Custody - type for RPC calls
type Custody struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Registry  Registry
	Nonces    signed.Nonces
	AllowMint bool
}

// New - create the custody RPC handler
func New(log *logger.L, registry Registry, nonces signed.Nonces, allowMint bool) *Custody {
	return &Custody{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitCustody, rateBurstCustody),
		Registry:  registry,
		Nonces:    nonces,
		AllowMint: allowMint,
	}
}

// KeyFields - the signed fields of a mint request
func KeyFields(key asset.Key) []string {
	return []string{key.String()}
}

// AccountFields - the signed fields of approve and transfer requests
func AccountFields(key asset.Key, a account.Account) []string {
	return []string{key.String(), a.String()}
}

// ---

// MintArguments - a new asset owned by the caller
type MintArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
	signed.Envelope
}

// OwnerReply - the owner and approved account of an asset
type OwnerReply struct {
	Collection string           `json:"collection"`
	AssetId    uint64           `json:"assetId,string"`
	Owner      account.Account  `json:"owner"`
	Approved   *account.Account `json:"approved,omitempty"`
}

// Mint - create an asset, only on nodes that enable minting
func (c *Custody) Mint(arguments *MintArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	if !c.AllowMint {
		return fault.MintingDisabled
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(c.Nonces, MethodMint, KeyFields(key)...); nil != err {
		return err
	}

	if err := c.Registry.Mint(key, arguments.Caller); nil != err {
		return err
	}

	*reply = OwnerReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Owner:      arguments.Caller,
	}
	return nil
}

// ---

// ApproveArguments - the owner names an account allowed to transfer
//
// omitting Approved clears the approval
type ApproveArguments struct {
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId,string"`
	Approved   account.Account `json:"approved"`
	signed.Envelope
}

// Approve - set or clear the approved account, caller must be the owner
func (c *Custody) Approve(arguments *ApproveArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(c.Nonces, MethodApprove, AccountFields(key, arguments.Approved)...); nil != err {
		return err
	}

	if err := c.Registry.Approve(key, arguments.Caller, arguments.Approved); nil != err {
		return err
	}

	*reply = OwnerReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Owner:      arguments.Caller,
	}
	if !arguments.Approved.IsZero() {
		approved := arguments.Approved
		reply.Approved = &approved
	}
	return nil
}

// ---

// TransferArguments - the owner gives the asset away
type TransferArguments struct {
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId,string"`
	To         account.Account `json:"to"`
	signed.Envelope
}

// Transfer - move an asset owned by the caller
func (c *Custody) Transfer(arguments *TransferArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	if err := arguments.Verify(c.Nonces, MethodTransfer, AccountFields(key, arguments.To)...); nil != err {
		return err
	}

	err := c.Registry.Spender(arguments.Caller).Transfer(context.Background(), arguments.Caller, arguments.To, key)
	if nil != err {
		return err
	}

	*reply = OwnerReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Owner:      arguments.To,
	}
	return nil
}

// ---

// OwnerArguments - asset to look up
type OwnerArguments struct {
	Collection string `json:"collection"`
	AssetId    uint64 `json:"assetId,string"`
}

// Owner - read the owner and approved account
func (c *Custody) Owner(arguments *OwnerArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	ctx := context.Background()
	key := asset.Key{Collection: arguments.Collection, Id: arguments.AssetId}
	owner, err := c.Registry.OwnerOf(ctx, key)
	if nil != err {
		return err
	}
	approved, err := c.Registry.GetApproved(ctx, key)
	if nil != err {
		return err
	}

	*reply = OwnerReply{
		Collection: key.Collection,
		AssetId:    key.Id,
		Owner:      owner,
	}
	if !approved.IsZero() {
		reply.Approved = &approved
	}
	return nil
}
