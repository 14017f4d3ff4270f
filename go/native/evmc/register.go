// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmc

import (
	"os"

	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/Fantom-foundation/Guillotine/go/guillotine"
)

const (
	// ExecutorName is the name under which EVMC VMs are registered as an
	// executor.
	ExecutorName = "evmc"
	// LibraryEnv names the environment variable holding the path of the
	// EVMC VM used by the registered executor.
	LibraryEnv = "GUILLOTINE_EVMC_LIB"
)

// ErrNoLibrary is returned by NewExecutor if no VM library is configured.
const ErrNoLibrary = guillotine.ConstError("no EVMC library configured, set " + LibraryEnv)

func init() {
	guillotine.MustRegisterExecutorFactory(ExecutorName, NewExecutor)
}

// NewExecutor creates an executor running transactions on the EVMC VM named
// by the GUILLOTINE_EVMC_LIB environment variable. The configuration is
// interpreted by adapter.OptionsFrom.
func NewExecutor(config any) (guillotine.Executor, error) {
	opts, err := adapter.OptionsFrom(config)
	if err != nil {
		return nil, err
	}
	path := os.Getenv(LibraryEnv)
	if path == "" {
		return nil, ErrNoLibrary
	}
	lib, err := Load(path)
	if err != nil {
		return nil, err
	}
	return adapter.New(lib, opts...), nil
}
