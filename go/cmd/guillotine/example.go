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
	"strconv"
	"strings"
	"time"

	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/Fantom-foundation/Guillotine/go/examples"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var ExampleCmd = cli.Command{
	Action:    doExample,
	Name:      "example",
	Usage:     "Run a built-in example contract and compare it with its reference",
	ArgsUsage: "<example> <argument>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "engine",
			Aliases: []string{"e"},
			Usage:   "executor running the example, see the engines command",
			Value:   "guillotine",
		},
		RevisionFlag,
		&cli.IntFlag{
			Name:  "rounds",
			Usage: "number of times the example is executed",
			Value: 1,
		},
	},
}

func doExample(context *cli.Context) error {
	if context.Args().Len() != 2 {
		names := []string{}
		for _, example := range examples.GetAllExamples() {
			names = append(names, example.Name)
		}
		return fmt.Errorf("expected <example> <argument>, available examples: %s", strings.Join(names, ", "))
	}
	example := examples.GetExample(context.Args().Get(0))
	if example == nil {
		return fmt.Errorf("unknown example %q", context.Args().Get(0))
	}
	argument, err := strconv.Atoi(context.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}
	revision, err := RevisionFlag.Fetch(context)
	if err != nil {
		return err
	}
	config, err := loadConfig(ConfigFlag.Fetch(context))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger(context)
	executor, err := newExecutor(context.String("engine"), append(config.options(), adapter.WithLogger(log)))
	if err != nil {
		return err
	}

	rounds := context.Int("rounds")
	if rounds < 1 {
		return fmt.Errorf("invalid number of rounds: %d", rounds)
	}
	var res examples.Result
	start := time.Now()
	for i := 0; i < rounds; i++ {
		if res, err = example.RunOn(context.Context, executor, revision, argument); err != nil {
			return err
		}
	}
	duration := time.Since(start)
	log.Debug("example completed", zap.String("example", example.Name), zap.Int("rounds", rounds), zap.Duration("duration", duration))

	out := context.App.Writer
	want := example.RunReference(argument)
	fmt.Fprintf(out, "result:    %d\n", res.Result)
	fmt.Fprintf(out, "reference: %d\n", want)
	fmt.Fprintf(out, "gas used:  %d\n", res.UsedGas)
	fmt.Fprintf(out, "time:      %v per round, %s gas/s\n", duration/time.Duration(rounds),
		unitconv.FormatPrefix(float64(res.UsedGas)*float64(rounds)/duration.Seconds(), unitconv.SI, 1),
	)
	if res.Result != want {
		return fmt.Errorf("%s(%d) computed %d, reference is %d", example.Name, argument, res.Result, want)
	}
	return nil
}
