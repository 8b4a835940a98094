// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/rpc/certificate"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key := fixtures.TLSKeyPair(t)

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, certificate.Fingerprint(sha3.Sum256(pair.Certificate[0])), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, _ := fixtures.TLSKeyPair(t)
	_, otherKey := fixtures.TLSKeyPair(t)

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, otherKey)
	assert.NotNil(t, err, "mismatched key accepted")

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", "junk", "junk")
	assert.NotNil(t, err, "junk accepted")
}

func TestRead(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate-test-")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer, key := fixtures.TLSKeyPair(t)
	cerFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	_ = ioutil.WriteFile(cerFile, []byte(cer), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(key), 0600)

	_, fromFiles, err := certificate.Read(logger.New(fixtures.LogCategory), "test", cerFile, keyFile)
	assert.Nil(t, err, "read")

	_, fromText, _ := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Equal(t, fromText, fromFiles, "fingerprints differ")

	_, _, err = certificate.Read(logger.New(fixtures.LogCategory), "test", filepath.Join(dir, "missing"), keyFile)
	assert.NotNil(t, err, "missing file accepted")
}

func TestParseFingerprint(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key := fixtures.TLSKeyPair(t)
	_, f, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "wrong Get")

	parsed, err := certificate.ParseFingerprint(f.String())
	assert.Nil(t, err, "parse error")
	assert.Equal(t, f, parsed, "round trip")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))
	assert.Equal(t, f, certificate.Of(pair.Certificate[0]), "wrong Of")

	_, err = certificate.ParseFingerprint("abcd")
	assert.Equal(t, fault.InvalidChecksum, err, "short fingerprint accepted")

	_, err = certificate.ParseFingerprint("not hex")
	assert.NotNil(t, err, "junk accepted")
}
