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
	"text/tabwriter"

	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/urfave/cli/v2"
)

var HardforksCmd = cli.Command{
	Action: doHardforks,
	Name:   "hardforks",
	Usage:  "List the native hardfork used for each revision",
}

func doHardforks(context *cli.Context) error {
	w := tabwriter.NewWriter(context.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REVISION\tHARDFORK")
	for _, mapping := range adapter.HardforkTable() {
		name := mapping.Hardfork
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%v\t%s\n", mapping.Revision, name)
	}
	return w.Flush()
}

var EnginesCmd = cli.Command{
	Action: doEngines,
	Name:   "engines",
	Usage:  "List the executors available for the run command",
}

func doEngines(context *cli.Context) error {
	for _, name := range guillotine.GetRegisteredExecutorNames() {
		fmt.Fprintln(context.App.Writer, name)
	}
	fmt.Fprintln(context.App.Writer, scriptEngine)
	return nil
}
