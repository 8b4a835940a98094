// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/command/market-cli/rpccalls"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

// the signing key and nonce for a state changing request
func signer(m *metadata) (rpccalls.Signer, error) {
	if "" == m.keyFile {
		return rpccalls.Signer{}, fmt.Errorf("signing key file is required")
	}
	key, err := account.ReadPrivateKeyFile(m.keyFile)
	if nil != err {
		return rpccalls.Signer{}, err
	}

	// nonces must increase for each account, the clock is a
	// reasonable source when one is not given
	nonce := m.nonce
	if 0 == nonce {
		nonce = uint64(time.Now().UnixNano())
	}
	if m.verbose {
		fmt.Fprintf(m.e, "account: %s  nonce: %d\n", key.Account(), nonce)
	}
	return rpccalls.Signer{Key: key, Nonce: nonce}, nil
}

func checkAsset(c *cli.Context) (asset.Key, error) {
	s := c.String("asset")
	if "" == s {
		return asset.Key{}, fmt.Errorf("asset is required")
	}
	return asset.Parse(s)
}

func checkPrice(c *cli.Context, name string) (uint64, error) {
	price := c.Uint64(name)
	if 0 == price {
		return 0, fmt.Errorf("%s must be above zero", name)
	}
	return price, nil
}

func checkAccount(s string) (account.Account, error) {
	if "" == s {
		return account.Account{}, fmt.Errorf("account is required")
	}
	return account.FromBase58(s)
}
