// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for package tests
package fixtures

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/storage"
)

// LogCategory - logger channel used by tests
const LogCategory = "testing"

const (
	testingDirName = "testing"
)

// SetupTestLogger - log to a local directory at critical level only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// SetupTestStorage - open a fresh database in a temporary directory
//
// the returned function closes and removes it
func SetupTestStorage(t *testing.T) func() {
	dir, err := ioutil.TempDir("", "marketd-test-")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}

	err = storage.Initialise(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("storage initialise error: %s", err)
	}

	return func() {
		storage.Finalise()
		os.RemoveAll(dir)
	}
}

// Account - a fixed account derived from a single seed byte
func Account(n byte) account.Account {
	return PrivateKey(n).Account()
}

// PrivateKey - a fixed key derived from a single seed byte
func PrivateKey(n byte) *account.PrivateKey {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = n
	}
	p, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		panic(err)
	}
	return p
}

// TLSKeyPair - a short lived self-signed certificate and its key in PEM form
func TLSKeyPair(t *testing.T) (string, string) {
	certificate, key, err := certgen.NewTLSCertPair("marketd testing", time.Now().Add(time.Hour), false, nil)
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	return string(certificate), string(key)
}
