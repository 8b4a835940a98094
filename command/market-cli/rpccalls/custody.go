// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/rpc/custodian"
)

// Mint - create a new asset owned by the signer
func (c *Client) Mint(s Signer, key asset.Key) (*custodian.OwnerReply, error) {
	arguments := custodian.MintArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Envelope:   s.sign(custodian.MethodMint, custodian.KeyFields(key)...),
	}
	var reply custodian.OwnerReply
	if err := c.call(custodian.MethodMint, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Approve - allow another account to move the asset
func (c *Client) Approve(s Signer, key asset.Key, approved account.Account) (*custodian.OwnerReply, error) {
	arguments := custodian.ApproveArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		Approved:   approved,
		Envelope:   s.sign(custodian.MethodApprove, custodian.AccountFields(key, approved)...),
	}
	var reply custodian.OwnerReply
	if err := c.call(custodian.MethodApprove, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - move an owned asset
func (c *Client) Transfer(s Signer, key asset.Key, to account.Account) (*custodian.OwnerReply, error) {
	arguments := custodian.TransferArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
		To:         to,
		Envelope:   s.sign(custodian.MethodTransfer, custodian.AccountFields(key, to)...),
	}
	var reply custodian.OwnerReply
	if err := c.call(custodian.MethodTransfer, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Owner - current owner and approval of an asset
func (c *Client) Owner(key asset.Key) (*custodian.OwnerReply, error) {
	arguments := custodian.OwnerArguments{
		Collection: key.Collection,
		AssetId:    key.Id,
	}
	var reply custodian.OwnerReply
	if err := c.call("Custody.Owner", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
