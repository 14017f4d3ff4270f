// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type logLevelFlagType struct {
	cli.StringFlag
}

var LogLevelFlag = &logLevelFlagType{
	cli.StringFlag{
		Name:    "log-level",
		Usage:   "minimum level of log messages (debug, info, warn, error)",
		EnvVars: []string{"GUILLOTINE_LOG_LEVEL"},
		Value:   "warn",
	},
}

func (f *logLevelFlagType) Fetch(context *cli.Context) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(context.String(f.Name))
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return level, nil
}

type logFormatFlagType struct {
	cli.StringFlag
}

var LogFormatFlag = &logFormatFlagType{
	cli.StringFlag{
		Name:  "log-format",
		Usage: "encoding of log messages (console or json)",
		Value: "console",
	},
}

func (f *logFormatFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Usage:     "TOML file with engine settings",
		EnvVars:   []string{"GUILLOTINE_CONFIG"},
		TakesFile: true,
	},
}

func (f *configFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type addressFlagType struct {
	cli.StringFlag
}

func (f *addressFlagType) Fetch(context *cli.Context) (*guillotine.Address, error) {
	s := context.String(f.Name)
	if s == "" {
		return nil, nil
	}
	address, err := parseAddress(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return &address, nil
}

var FromFlag = &addressFlagType{
	cli.StringFlag{
		Name:  "from",
		Usage: "sender of the transaction",
		Value: "0x1000000000000000000000000000000000000000",
	},
}

var ToFlag = &addressFlagType{
	cli.StringFlag{
		Name:  "to",
		Usage: "recipient of the transaction, a contract is created if omitted",
	},
}

var CoinbaseFlag = &addressFlagType{
	cli.StringFlag{
		Name:  "coinbase",
		Usage: "beneficiary of the block",
	},
}

type valueFlagType struct {
	cli.StringFlag
}

func (f *valueFlagType) Fetch(context *cli.Context) (guillotine.Value, error) {
	value, err := guillotine.ParseValue(context.String(f.Name))
	if err != nil {
		return guillotine.Value{}, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return value, nil
}

var ValueFlag = &valueFlagType{
	cli.StringFlag{
		Name:  "value",
		Usage: "amount transferred to the recipient, decimal or 0x-prefixed",
		Value: "0",
	},
}

var BaseFeeFlag = &valueFlagType{
	cli.StringFlag{
		Name:  "base-fee",
		Usage: "base fee of the block",
		Value: "0",
	},
}

var ChainIDFlag = &valueFlagType{
	cli.StringFlag{
		Name:  "chain-id",
		Usage: "chain id visible to the executed code",
		Value: "1",
	},
}

type inputFlagType struct {
	cli.StringFlag
}

var InputFlag = &inputFlagType{
	cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "0x-prefixed call data, or init code for creations",
	},
}

func (f *inputFlagType) Fetch(context *cli.Context) (guillotine.Data, error) {
	s := context.String(f.Name)
	if s == "" {
		return nil, nil
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return data, nil
}

type revisionFlagType struct {
	cli.StringFlag
}

var RevisionFlag = &revisionFlagType{
	cli.StringFlag{
		Name:    "revision",
		Aliases: []string{"r"},
		Usage:   "revision the transaction is executed in, see the hardforks command",
		Value:   guillotine.R17_Cancun.String(),
	},
}

func (f *revisionFlagType) Fetch(context *cli.Context) (guillotine.Revision, error) {
	revision, err := guillotine.ParseRevision(context.String(f.Name))
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return revision, nil
}

type accessListFlagType struct {
	cli.StringSliceFlag
}

var AccessListFlag = &accessListFlagType{
	cli.StringSliceFlag{
		Name:  "access-list",
		Usage: "access list entry, either <address> or <address>:<key> with a numeric key; may be repeated",
	},
}

// Fetch groups the entries by address in the order of their first
// occurrence.
func (f *accessListFlagType) Fetch(context *cli.Context) ([]guillotine.AccessTuple, error) {
	var res []guillotine.AccessTuple
	index := map[guillotine.Address]int{}
	for _, entry := range context.StringSlice(f.Name) {
		addressText, keyText, hasKey := strings.Cut(entry, ":")
		address, err := parseAddress(addressText)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s entry %q: %w", f.Name, entry, err)
		}
		pos, found := index[address]
		if !found {
			pos = len(res)
			index[address] = pos
			res = append(res, guillotine.AccessTuple{Address: address})
		}
		if !hasKey {
			continue
		}
		key, err := guillotine.ParseValue(keyText)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s entry %q: %w", f.Name, entry, err)
		}
		res[pos].Keys = append(res[pos].Keys, guillotine.Key(key))
	}
	return res, nil
}

func parseAddress(s string) (guillotine.Address, error) {
	var address guillotine.Address
	err := address.UnmarshalText([]byte(s))
	return address, err
}
