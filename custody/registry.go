// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/storage"
)

// Registry - stand-alone custody of assets
//
// each asset has one owner and at most one approved account
// which may transfer it on the owner's behalf
type Registry struct {
	sync.Mutex
	log       *logger.L
	owners    storage.Handle
	approvals storage.Handle
}

// NewRegistry - registry over the owner and approval pools
func NewRegistry(log *logger.L, owners storage.Handle, approvals storage.Handle) *Registry {
	return &Registry{
		log:       log,
		owners:    owners,
		approvals: approvals,
	}
}

// Mint - create a new asset owned by owner
func (r *Registry) Mint(key asset.Key, owner account.Account) error {
	if err := key.Validate(); nil != err {
		return err
	}
	if owner.IsZero() {
		return fault.InvalidAccount
	}

	r.Lock()
	defer r.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	packedKey := key.Pack()
	if trx.Has(r.owners, packedKey) {
		trx.Abort()
		return fault.AssetAlreadyExists
	}
	trx.Put(r.owners, packedKey, owner.Bytes())

	err = trx.Commit()
	if nil != err {
		r.log.Errorf("mint: %s  error: %s", key, err)
		return err
	}

	r.log.Infof("minted: %s  owner: %s", key, owner)
	return nil
}

// Approve - the owner authorises one account to transfer the asset
//
// approving the zero account removes any approval
func (r *Registry) Approve(key asset.Key, owner account.Account, approved account.Account) error {
	r.Lock()
	defer r.Unlock()

	current, err := r.ownerOf(key)
	if nil != err {
		return err
	}
	if current != owner {
		return fault.NotOwner
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	if approved.IsZero() {
		trx.Delete(r.approvals, key.Pack())
	} else {
		trx.Put(r.approvals, key.Pack(), approved.Bytes())
	}

	err = trx.Commit()
	if nil != err {
		r.log.Errorf("approve: %s  error: %s", key, err)
		return err
	}

	r.log.Infof("approved: %s  owner: %s  approved: %s", key, owner, approved)
	return nil
}

// OwnerOf - current owner of the asset
func (r *Registry) OwnerOf(ctx context.Context, key asset.Key) (account.Account, error) {
	if err := ctx.Err(); nil != err {
		return account.Account{}, err
	}
	return r.ownerOf(key)
}

// GetApproved - the account approved to transfer the asset, zero if none
func (r *Registry) GetApproved(ctx context.Context, key asset.Key) (account.Account, error) {
	if err := ctx.Err(); nil != err {
		return account.Account{}, err
	}
	if _, err := r.ownerOf(key); nil != err {
		return account.Account{}, err
	}
	return readAccount(key, r.approvals.Get(key.Pack())), nil
}

// Spender - view of the registry that transfers as the given account
func (r *Registry) Spender(spender account.Account) Custody {
	return &spenderView{
		Registry: r,
		spender:  spender,
	}
}

type spenderView struct {
	*Registry
	spender account.Account
}

// Transfer - move an asset from its owner to another account
//
// the spender must be the owner or the approved account, any
// approval is cleared
func (s *spenderView) Transfer(ctx context.Context, from account.Account, to account.Account, key asset.Key) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	if to.IsZero() {
		return fault.InvalidAccount
	}

	s.Lock()
	defer s.Unlock()

	owner, err := s.ownerOf(key)
	if nil != err {
		return err
	}
	if owner != from {
		return fault.NotOwner
	}

	packedKey := key.Pack()
	approved := readAccount(key, s.approvals.Get(packedKey))
	if s.spender != owner && s.spender != approved {
		return fault.NotApproved
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	trx.Put(s.owners, packedKey, to.Bytes())
	trx.Delete(s.approvals, packedKey)

	err = trx.Commit()
	if nil != err {
		s.log.Errorf("transfer: %s  error: %s", key, err)
		return err
	}

	s.log.Infof("transferred: %s  from: %s  to: %s  by: %s", key, from, to, s.spender)
	return nil
}

func (r *Registry) ownerOf(key asset.Key) (account.Account, error) {
	record := r.owners.Get(key.Pack())
	if nil == record {
		return account.Account{}, fault.AssetNotFound
	}
	return readAccount(key, record), nil
}

func readAccount(key asset.Key, record []byte) account.Account {
	if nil == record {
		return account.Account{}
	}
	a, err := account.FromBytes(record)
	if nil != err {
		logger.Panicf("custody: corrupt account for: %s: %x", key, record)
	}
	return a
}
