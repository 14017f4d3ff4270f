// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package mini binds the guillotine-mini engine through cgo. The binding is
// compiled only with the guillotine build tag and expects the library in
// lib/guillotine-mini/zig-out/lib; other builds contain a stub reporting
// the engine as unavailable.
package mini

import (
	"github.com/Fantom-foundation/Guillotine/go/adapter"
	"github.com/Fantom-foundation/Guillotine/go/guillotine"
)

// ExecutorName is the name under which the engine is registered as an
// executor.
const ExecutorName = "guillotine"

// ErrUnavailable is returned by Open in builds without the native library.
const ErrUnavailable = guillotine.ConstError("guillotine-mini is not linked into this binary")

func init() {
	if !Available {
		return
	}
	guillotine.MustRegisterExecutorFactory(ExecutorName, NewExecutor)
}

// NewExecutor creates an executor running transactions on guillotine-mini.
// The configuration is interpreted by adapter.OptionsFrom.
func NewExecutor(config any) (guillotine.Executor, error) {
	lib, err := Open()
	if err != nil {
		return nil, err
	}
	opts, err := adapter.OptionsFrom(config)
	if err != nil {
		return nil, err
	}
	return adapter.New(lib, opts...), nil
}
