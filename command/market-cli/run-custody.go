// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/account"
)

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}
	s, err := signer(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Mint(s, key)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runApprove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}

	// blank clears the approval
	approved := account.Account{}
	if a := c.String("account"); "" != a {
		approved, err = checkAccount(a)
		if nil != err {
			return err
		}
	}

	s, err := signer(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Approve(s, key, approved)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}
	to, err := checkAccount(c.String("account"))
	if nil != err {
		return err
	}
	s, err := signer(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Transfer(s, key, to)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Owner(key)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}
