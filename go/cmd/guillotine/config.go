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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/naoina/toml"
)

// fileConfig is the content of a --config file, for instance
//
//	[Engine]
//	LogLevel = "info"
//	MaxCallDepth = 512
//
//	[Engine.SystemContracts]
//	BeaconRoots = true
type fileConfig struct {
	Engine adapter.EngineConfig

	// SyncAccessListStorage controls whether storage slots named in access
	// lists are loaded into the engine before execution. Defaults to true.
	SyncAccessListStorage *bool
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func defaultFileConfig() fileConfig {
	return fileConfig{Engine: adapter.DefaultEngineConfig()}
}

// loadConfig reads the given file on top of the default settings. An empty
// path yields the defaults.
func loadConfig(path string) (fileConfig, error) {
	config := defaultFileConfig()
	if path == "" {
		return config, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&config)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		return config, errors.New(path + ", " + err.Error())
	}
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Engine.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *fileConfig) options() []adapter.Option {
	opts := []adapter.Option{adapter.WithEngineConfig(c.Engine)}
	if c.SyncAccessListStorage != nil {
		opts = append(opts, adapter.WithAccessListStorageSync(*c.SyncAccessListStorage))
	}
	return opts
}
