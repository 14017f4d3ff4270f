// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package adapter

import (
	"fmt"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
)

const (
	// ErrHandleClosed is reported by operations on a destroyed handle.
	ErrHandleClosed = guillotine.ConstError("native handle already destroyed")
	// ErrHandlePoisoned is reported by state synchronizations on a handle
	// whose earlier synchronization failed.
	ErrHandlePoisoned = guillotine.ConstError("native handle poisoned by failed state sync")
)

// DatabaseError reports a failed lookup in the host database. Key is nil for
// account lookups.
type DatabaseError struct {
	Op      string
	Address guillotine.Address
	Key     *guillotine.Key
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("database error in %s of %v/%v: %v", e.Op, e.Address, *e.Key, e.Err)
	}
	return fmt.Sprintf("database error in %s of %v: %v", e.Op, e.Address, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// BoundaryCallError reports a native call that returned failure, false, or
// a null handle. Op names the failing native function.
type BoundaryCallError struct {
	Op     string
	Detail string
}

func (e *BoundaryCallError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("native call %s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("native call %s failed", e.Op)
}

// ConfigurationError reports an invalid request or engine configuration.
// It is always reported before any native instance is created.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// FatalFault reports a violation of the native ABI contract after which the
// state of the native engine can no longer be trusted. Faults are handed to
// the adapter's fatal handler, which terminates the process by default.
type FatalFault struct {
	Op     string
	Detail string
}

func (e *FatalFault) Error() string {
	return fmt.Sprintf("fatal native fault in %s: %s", e.Op, e.Detail)
}
