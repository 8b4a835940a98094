// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/util"
)

type accountReply struct {
	Account account.Account `json:"account"`
	File    string          `json:"file,omitempty"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("output")
	if "" == file {
		return fmt.Errorf("output file is required")
	}
	if util.EnsureFileExists(file) {
		return fault.KeyFileAlreadyExists
	}

	key, err := account.NewPrivateKey()
	if nil != err {
		return err
	}
	if err := key.WriteFile(file); nil != err {
		return err
	}

	return printJson(m.w, accountReply{Account: key.Account(), File: file})
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := signer(m)
	if nil != err {
		return err
	}
	return printJson(m.w, accountReply{Account: s.Key.Account(), File: m.keyFile})
}
