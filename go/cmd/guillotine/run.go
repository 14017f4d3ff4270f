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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/Fantom-foundation/Guillotine/go/native/nativetest"
	"github.com/Fantom-foundation/Guillotine/go/state"
	"github.com/dsnet/golib/unitconv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// scriptEngine names the in-process engine performing plain value
// transfers. It is always available and used for dry runs.
const scriptEngine = "script"

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Execute a single transaction",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "engine",
			Aliases: []string{"e"},
			Usage:   "executor running the transaction, see the engines command",
			Value:   "guillotine",
		},
		&cli.StringFlag{
			Name:      "prestate",
			Usage:     "JSON file with the accounts visible to the transaction",
			TakesFile: true,
		},
		FromFlag,
		ToFlag,
		ValueFlag,
		InputFlag,
		&cli.Uint64Flag{
			Name:  "gas",
			Usage: "gas limit of the transaction",
			Value: 1_000_000,
		},
		AccessListFlag,
		RevisionFlag,
		ChainIDFlag,
		&cli.Uint64Flag{
			Name:  "block-number",
			Usage: "number of the block the transaction is part of",
		},
		&cli.Uint64Flag{
			Name:  "timestamp",
			Usage: "timestamp of the block the transaction is part of",
		},
		&cli.Uint64Flag{
			Name:  "block-gas-limit",
			Usage: "gas limit of the block the transaction is part of",
			Value: 30_000_000,
		},
		BaseFeeFlag,
		CoinbaseFlag,
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "print the pre-state with the resulting storage changes applied",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "print the adapter metrics after the execution",
		},
	},
}

type request struct {
	block guillotine.BlockParameters
	tx    guillotine.Transaction
}

func doRun(context *cli.Context) error {
	log := logger(context)

	config, err := loadConfig(ConfigFlag.Fetch(context))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	req, err := parseRequest(context)
	if err != nil {
		return err
	}
	db, err := loadPreState(context.String("prestate"))
	if err != nil {
		return err
	}

	opts := append(config.options(),
		adapter.WithLogger(log),
		adapter.WithFatalHandler(func(fault *adapter.FatalFault) {
			log.Error("native engine fault", zap.String("op", fault.Op), zap.String("detail", fault.Detail))
		}),
	)
	var registry *prometheus.Registry
	if context.Bool("metrics") {
		registry = prometheus.NewRegistry()
		metrics, err := adapter.NewMetrics(registry)
		if err != nil {
			return err
		}
		opts = append(opts, adapter.WithMetrics(metrics))
	}

	engine := context.String("engine")
	executor, err := newExecutor(engine, opts)
	if err != nil {
		return err
	}
	log.Debug("executing transaction", zap.String("engine", engine), zap.Stringer("revision", req.block.Revision))

	outcome, err := executor.Transact(context.Context, req.block, req.tx, db)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	out := context.App.Writer
	printOutcome(out, req.tx.GasLimit, outcome)
	if context.Bool("dump") {
		if success, ok := outcome.(guillotine.Success); ok {
			db.ApplyStorageChanges(success.StorageChanges)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(db.Dump()); err != nil {
			return err
		}
	}
	if registry != nil {
		if err := printMetrics(out, registry); err != nil {
			return err
		}
	}
	return nil
}

func newExecutor(engine string, opts []adapter.Option) (guillotine.Executor, error) {
	if engine == scriptEngine {
		return adapter.New(&nativetest.Library{}, opts...), nil
	}
	return guillotine.NewExecutor(engine, opts)
}

func parseRequest(context *cli.Context) (request, error) {
	var req request
	from, err := FromFlag.Fetch(context)
	if err != nil {
		return req, err
	}
	if from == nil {
		return req, fmt.Errorf("missing --%s", FromFlag.Name)
	}
	req.tx.Sender = *from
	if req.tx.Recipient, err = ToFlag.Fetch(context); err != nil {
		return req, err
	}
	if req.tx.Value, err = ValueFlag.Fetch(context); err != nil {
		return req, err
	}
	if req.tx.Input, err = InputFlag.Fetch(context); err != nil {
		return req, err
	}
	if req.tx.AccessList, err = AccessListFlag.Fetch(context); err != nil {
		return req, err
	}
	req.tx.GasLimit = guillotine.Gas(context.Uint64("gas"))

	if req.block.Revision, err = RevisionFlag.Fetch(context); err != nil {
		return req, err
	}
	chainID, err := ChainIDFlag.Fetch(context)
	if err != nil {
		return req, err
	}
	req.block.ChainID = guillotine.Word(chainID)
	if req.block.BaseFee, err = BaseFeeFlag.Fetch(context); err != nil {
		return req, err
	}
	coinbase, err := CoinbaseFlag.Fetch(context)
	if err != nil {
		return req, err
	}
	if coinbase != nil {
		req.block.Coinbase = *coinbase
	}
	req.block.BlockNumber = context.Uint64("block-number")
	req.block.Timestamp = context.Uint64("timestamp")
	req.block.GasLimit = guillotine.Gas(context.Uint64("block-gas-limit"))
	return req, nil
}

func loadPreState(path string) (*state.Memory, error) {
	if path == "" {
		return state.NewMemory(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	db, err := state.LoadMemory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

func printOutcome(out io.Writer, limit guillotine.Gas, outcome guillotine.Outcome) {
	result := "success"
	if _, reverted := outcome.(guillotine.Revert); reverted {
		result = "revert"
	}
	used := outcome.Used()
	fmt.Fprintf(out, "result:   %s\n", result)
	fmt.Fprintf(out, "gas used: %d (%s of %s)\n", used,
		unitconv.FormatPrefix(float64(used), unitconv.SI, 0),
		unitconv.FormatPrefix(float64(limit), unitconv.SI, 0),
	)
	fmt.Fprintf(out, "output:   0x%x\n", []byte(outcome.Returned()))

	success, ok := outcome.(guillotine.Success)
	if !ok {
		return
	}
	fmt.Fprintf(out, "refund:   %d\n", success.GasRefunded)
	if len(success.Logs) > 0 {
		fmt.Fprintf(out, "logs:\n")
		for i, entry := range success.Logs {
			fmt.Fprintf(out, "  %d: %v topics=%v data=0x%x\n", i, entry.Address, entry.Topics, []byte(entry.Data))
		}
	}
	if len(success.StorageChanges) > 0 {
		fmt.Fprintf(out, "storage changes:\n")
		for _, change := range success.StorageChanges {
			fmt.Fprintf(out, "  %v[%v] = %v\n", change.Address, change.Key, change.Value)
		}
	}
}

func printMetrics(out io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return err
		}
	}
	return nil
}
