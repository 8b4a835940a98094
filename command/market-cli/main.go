// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	keyFile     string
	nonce       uint64
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "market-cli"
	app.Usage = "client for the marketd asset marketplace"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	assetFlag := cli.StringFlag{
		Name:  "asset, a",
		Value: "",
		Usage: "*asset key `COLLECTION/ID`",
	}
	priceFlag := cli.Uint64Flag{
		Name:  "price, p",
		Value: 0,
		Usage: "*price `AMOUNT`",
	}
	accountFlag := cli.StringFlag{
		Name:  "account, A",
		Value: "",
		Usage: "*base58 account `ACCOUNT`",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " marketd RPC `HOST:PORT`",
			EnvVar: "MARKET_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 certificate `HEX` fingerprint",
			EnvVar: "MARKET_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " private key `FILE` used to sign requests",
			EnvVar: "MARKET_KEY",
		},
		cli.Uint64Flag{
			Name:  "nonce, n",
			Value: 0,
			Usage: " request `NONCE` [default: current time in nanoseconds]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new private key file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: "*new key `FILE`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:   "account",
			Usage:  "display the account of the signing key",
			Action: runAccount,
		},
		{
			Name:   "info",
			Usage:  "display marketd status",
			Action: runInfo,
		},
		{
			Name:      "list",
			Usage:     "offer an owned asset for sale",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag, priceFlag},
			Action:    runList,
		},
		{
			Name:      "buy",
			Usage:     "purchase a listed asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.Uint64Flag{
					Name:  "payment, p",
					Value: 0,
					Usage: "*payment `AMOUNT`, at least the listed price",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "cancel",
			Usage:     "remove a listing",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runCancel,
		},
		{
			Name:      "update",
			Usage:     "change the price of a listing",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag, priceFlag},
			Action:    runUpdate,
		},
		{
			Name:   "withdraw",
			Usage:  "pay out all proceeds of the signing account",
			Action: runWithdraw,
		},
		{
			Name:      "listing",
			Usage:     "display one listing",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runListing,
		},
		{
			Name:      "listings",
			Usage:     "display active listings",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "after, s",
					Value: "",
					Usage: " start after `COLLECTION/ID`",
				},
				cli.IntFlag{
					Name:  "count, C",
					Value: 20,
					Usage: " maximum listings to display `COUNT`",
				},
			},
			Action: runListings,
		},
		{
			Name:      "proceeds",
			Usage:     "display a seller's withdrawable balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, A",
					Value: "",
					Usage: " seller `ACCOUNT` [default: signing account]",
				},
			},
			Action: runProceeds,
		},
		{
			Name:      "funds",
			Usage:     "display a buyer's deposit available for payments",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, A",
					Value: "",
					Usage: " buyer `ACCOUNT` [default: signing account]",
				},
			},
			Action: runFunds,
		},
		{
			Name:      "mint",
			Usage:     "create an asset owned by the signing account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runMint,
		},
		{
			Name:      "approve",
			Usage:     "allow an account to move an owned asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				assetFlag,
				cli.StringFlag{
					Name:  "account, A",
					Value: "",
					Usage: " approved `ACCOUNT` [default: clear approval]",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "transfer",
			Usage:     "move an owned asset to another account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag, accountFlag},
			Action:    runTransfer,
		},
		{
			Name:      "owner",
			Usage:     "display the owner of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runOwner,
		},
		{
			Name:  "version",
			Usage: "display market-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintln(c.App.Writer, version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			keyFile:     c.GlobalString("key"),
			nonce:       c.GlobalUint64("nonce"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
