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
	"os"

	"github.com/Fantom-foundation/Guillotine/go/native"
	"github.com/Fantom-foundation/Guillotine/go/native/evmc"
	_ "github.com/Fantom-foundation/Guillotine/go/native/mini"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp creates the application. Commands are copied since running an app
// modifies them.
func newApp() *cli.App {
	run, hardforks, engines, example := RunCmd, HardforksCmd, EnginesCmd, ExampleCmd
	return &cli.App{
		Name:      "guillotine",
		Usage:     "Execute transactions on a native EVM engine",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			LogLevelFlag,
			LogFormatFlag,
			ConfigFlag,
		},
		Commands: []*cli.Command{
			&run,
			&hardforks,
			&engines,
			&example,
		},
		Before: setupLogging,
		After: func(context *cli.Context) error {
			// Sync reports EINVAL for stderr on Linux.
			_ = logger(context).Sync()
			return nil
		},
	}
}

const loggerKey = "logger"

func setupLogging(context *cli.Context) error {
	level, err := LogLevelFlag.Fetch(context)
	if err != nil {
		return err
	}
	var config zap.Config
	switch format := LogFormatFlag.Fetch(context); format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	case "json":
		config = zap.NewProductionConfig()
	default:
		return fmt.Errorf("unknown log format %q, expected console or json", format)
	}
	config.Level = level
	config.OutputPaths = []string{"stderr"}
	log, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	if context.App.Metadata == nil {
		context.App.Metadata = map[string]any{}
	}
	context.App.Metadata[loggerKey] = log
	native.SetLogger(log)
	evmc.SetLogger(log)
	return nil
}

func logger(context *cli.Context) *zap.Logger {
	if log, ok := context.App.Metadata[loggerKey].(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}
