// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"encoding/hex"
	"io/ioutil"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
)

// Fingerprint - SHA3-256 of a DER certificate
type Fingerprint [32]byte

// Get - verify a PEM certificate and key pair and return a server TLS setup
func Get(log *logger.L, name, certificate, key string) (*tls.Config, Fingerprint, error) {
	var fin Fingerprint

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Read - load the certificate and key files then call Get
func Read(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, Fingerprint, error) {
	certificate, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFileName, err)
		return nil, Fingerprint{}, err
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFileName, err)
		return nil, Fingerprint{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in marketd-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) Fingerprint {
	return sha3.Sum256(certificate)
}

// Of - fingerprint of a DER certificate as seen by a client
func Of(certificate []byte) Fingerprint {
	return fingerprint(certificate)
}

// String - hex form
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// ParseFingerprint - convert hex text back to a fingerprint
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(s)
	if nil != err {
		return f, err
	}
	if len(b) != len(f) {
		return f, fault.InvalidChecksum
	}
	copy(f[:], b)
	return f, nil
}
