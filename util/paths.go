// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - placing marketd's files
//
// keys, certificates, the database and logs named in the
// configuration are relative to the data directory unless given as
// absolute paths
package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureAbsolute - a path relative to directory becomes absolute
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// PlainFileIn - place a bare file name in directory
//
// used for the database and log names whose directory is configured
// separately, a name carrying its own directory is rejected
func PlainFileIn(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
	default:
		return "", fmt.Errorf("file: %q is not a plain name", name)
	}
	if "" == directory {
		return name, nil
	}
	return EnsureAbsolute(directory, name), nil
}

// EnsureFileExists - a key or certificate is already present,
// generating commands refuse to overwrite it
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsureDirectory - create the database or log directory, owner only
func EnsureDirectory(directory string) error {
	return os.MkdirAll(directory, 0700)
}
