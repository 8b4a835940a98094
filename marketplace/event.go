// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/messagebus"
)

// broadcast commands for each event
const (
	ListedCommand   = "listed"
	BoughtCommand   = "bought"
	CanceledCommand = "canceled"
	UpdatedCommand  = "updated"
)

// ItemListed - an asset was listed
type ItemListed struct {
	Seller     account.Account `json:"seller"`
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Price      uint64          `json:"price"`
}

// ItemBought - an asset was sold at the listed price
type ItemBought struct {
	Buyer      account.Account `json:"buyer"`
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Price      uint64          `json:"price"`
}

// ItemCanceled - a listing was withdrawn
type ItemCanceled struct {
	Seller     account.Account `json:"seller"`
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId"`
}

// ItemUpdated - a listing was repriced
type ItemUpdated struct {
	Seller     account.Account `json:"seller"`
	Collection string          `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	NewPrice   uint64          `json:"newPrice"`
}

func (m *Market) emit(command string, event interface{}) {
	packed, err := json.Marshal(event)
	logger.PanicIfError("marketplace: marshal event", err)

	m.log.Debugf("event: %s  data: %s", command, packed)
	if missed := messagebus.Bus.Broadcast.Send(command, packed); missed > 0 {
		m.log.Warnf("event: %s  not delivered to: %d listeners", command, missed)
	}
}
