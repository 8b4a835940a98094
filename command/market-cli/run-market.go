// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/account"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info()
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}
	price, err := checkPrice(c, "price")
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

	response, err := client.List(s, key, price)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}
	payment, err := checkPrice(c, "payment")
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

	response, err := client.Buy(s, key, payment)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runCancel(c *cli.Context) error {

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

	response, err := client.Cancel(s, key)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runUpdate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkAsset(c)
	if nil != err {
		return err
	}
	price, err := checkPrice(c, "price")
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

	response, err := client.Update(s, key, price)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runWithdraw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := signer(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Withdraw(s)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runListing(c *cli.Context) error {

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

	response, err := client.Listing(key)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runListings(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Listings(c.String("after"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

// the --account flag or the signing account
func accountOrSigner(c *cli.Context, m *metadata) (account.Account, error) {
	if s := c.String("account"); "" != s {
		return checkAccount(s)
	}
	s, err := signer(m)
	if nil != err {
		return account.Account{}, err
	}
	return s.Key.Account(), nil
}

func runProceeds(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seller, err := accountOrSigner(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Proceeds(seller)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runFunds(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	buyer, err := accountOrSigner(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Funds(buyer)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}
