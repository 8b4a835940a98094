// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/marketplace/mocks"
	"github.com/bitmark-inc/marketd/rpc"
	"github.com/bitmark-inc/marketd/rpc/listeners"
	"github.com/bitmark-inc/marketd/rpc/server"
)

func TestInitialiseAndFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "rpc-test-")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer, key := fixtures.TLSKeyPair(t)
	cerFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	_ = ioutil.WriteFile(cerFile, []byte(cer), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(key), 0600)

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	m := mocks.NewMockMarketplace(ctl)
	m.EXPECT().Account().Return(fixtures.Account(9)).AnyTimes()

	port := rand.Intn(30000) + 30000
	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
		Certificate:        cerFile,
		PrivateKey:         keyFile,
	}
	httpsConfiguration := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port+1)},
		Certificate:        cerFile,
		PrivateKey:         keyFile,
	}

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", server.Services{Market: m})
	assert.Nil(t, err, "initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", server.Services{Market: m})
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")

	assert.Nil(t, rpc.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	m := mocks.NewMockMarketplace(ctl)

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:2130"},
		Certificate:        "/nonexistent/rpc.crt",
		PrivateKey:         "/nonexistent/rpc.key",
	}
	err := rpc.Initialise(&rpcConfiguration, &listeners.HTTPSConfiguration{}, "1.0", server.Services{Market: m})
	assert.NotNil(t, err, "missing certificate accepted")
}
