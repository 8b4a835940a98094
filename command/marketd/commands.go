// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/listing"
	"github.com/bitmark-inc/marketd/proceeds"
	"github.com/bitmark-inc/marketd/storage"
	"github.com/bitmark-inc/marketd/util"
	"github.com/bitmark-inc/marketd/zmqutil"
)

const (
	marketKeyFilename = "market.private"

	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	publishPublicKeyFilename  = "publish.public"
	publishPrivateKeyFilename = "publish.private"

	listingsPageSize = 100
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-account", "account":
		privateKeyFilename := getFilenameWithDirectory(arguments, marketKeyFilename)
		a, err := makeAccount(privateKeyFilename)
		if nil != err {
			fmt.Printf("generate account key: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated account key: %q\n", privateKeyFilename)
		fmt.Printf("market account: %s\n", a)

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-publish-keys", "publish":
		publicKeyFilename := getFilenameWithDirectory(arguments, publishPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, publishPrivateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "listings", "ls":
		return false // defer processing until database is loaded

	case "deposit", "fund":
		return false // defer processing until database is loaded

	case "dump-config", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)       - display this message\n\n")
		fmt.Printf("  version                    (v)       - display version string\n\n")

		fmt.Printf("  gen-account [DIR]          (account) - create the market's key in: %q\n", "DIR/"+marketKeyFilename)
		fmt.Printf("                                         and display its account\n")
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                         and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-publish-keys [DIR]     (publish) - create private key in: %q\n", "DIR/"+publishPrivateKeyFilename)
		fmt.Printf("                                         and the public key in: %q\n", "DIR/"+publishPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)     - just run the program, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-config                (cfg)     - display the configuration as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  listings                   (ls)      - display all active listings as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  deposit ACCOUNT AMOUNT     (fund)    - add to a buyer's funds after payment\n")
		fmt.Printf("                                         is received outside the market\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "dump-config", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the storage pools are open so these commands can read the database
func processDataCommand(arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "listings", "ls":
		if err := dumpListings(os.Stdout); nil != err {
			exitwithstatus.Message("listings error: %s", err)
		}

	case "deposit", "fund":
		if err := depositFunds(arguments[1:], os.Stdout); nil != err {
			exitwithstatus.Message("deposit error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// write every active listing as a JSON array
func dumpListings(fd *os.File) error {
	type entry struct {
		Key    string          `json:"key"`
		Price  uint64          `json:"price,string"`
		Seller account.Account `json:"seller"`
	}

	registry := listing.New(storage.Pool.Listings)

	all := []entry{}
	var after *asset.Key
	for {
		page, err := registry.Fetch(after, listingsPageSize)
		if nil != err {
			return err
		}
		for _, e := range page {
			all = append(all, entry{
				Key:    e.Key.String(),
				Price:  e.Listing.Price,
				Seller: e.Listing.Seller,
			})
		}
		if len(page) < listingsPageSize {
			break
		}
		last := page[len(page)-1].Key
		after = &last
	}

	s, err := json.MarshalIndent(all, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(fd, "%s\n", s)
	return err
}

// credit a buyer's deposit and display the new balance
func depositFunds(arguments []string, fd io.Writer) error {
	if 2 != len(arguments) {
		return fault.MissingParameters
	}
	buyer, err := account.FromBase58(arguments[0])
	if nil != err {
		return err
	}
	amount, err := strconv.ParseUint(arguments[1], 10, 64)
	if nil != err {
		return err
	}
	if 0 == amount {
		return fault.InvalidCount
	}

	deposits := proceeds.New(storage.Pool.Deposits)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = deposits.Credit(trx, buyer, amount)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		return err
	}

	s, err := json.MarshalIndent(struct {
		Buyer  account.Account `json:"buyer"`
		Amount uint64          `json:"amount,string"`
		Funds  uint64          `json:"funds,string"`
	}{
		Buyer:  buyer,
		Amount: amount,
		Funds:  deposits.Get(buyer),
	}, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(fd, "%s\n", s)
	return err
}

// create the market's signing key
func makeAccount(privateKeyFilename string) (account.Account, error) {
	if util.EnsureFileExists(privateKeyFilename) {
		return account.Account{}, fault.KeyFileAlreadyExists
	}
	key, err := account.NewPrivateKey()
	if nil != err {
		return account.Account{}, err
	}
	if err := key.WriteFile(privateKeyFilename); nil != err {
		return account.Account{}, err
	}
	return key.Account(), nil
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "marketd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		_ = os.Remove(certificateFileName)
		return err
	}

	return nil
}

// first argument is an optional directory, default is the current one
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
