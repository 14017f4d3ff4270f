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
	"github.com/Fantom-foundation/Guillotine/go/native"
)

// This file implements the extraction of execution results from a native
// instance. Enumerations query a count and read entries by index; a failing
// read aborts the whole enumeration. Buffers are sized by a preceding size
// query, and a copy not matching the announced size is a FatalFault.

// Succeeded reports whether the last execution completed without reverting.
func (h *Handle) Succeeded() (bool, error) {
	if err := h.usable(); err != nil {
		return false, err
	}
	return h.instance.IsSuccess(), nil
}

// GasUsed returns the gas consumed by the last execution.
func (h *Handle) GasUsed() (guillotine.Gas, error) {
	if err := h.usable(); err != nil {
		return 0, err
	}
	return GasFromNative(h.instance.GasUsed()), nil
}

// GasRemaining returns the gas left after the last execution.
func (h *Handle) GasRemaining() (guillotine.Gas, error) {
	if err := h.usable(); err != nil {
		return 0, err
	}
	return GasFromNative(h.instance.GasRemaining()), nil
}

// GasRefund returns the uncapped refund counter of the last execution.
func (h *Handle) GasRefund() (guillotine.Gas, error) {
	if err := h.usable(); err != nil {
		return 0, err
	}
	return guillotine.Gas(h.instance.GasRefund()), nil
}

// Output returns a copy of the output of the last execution.
func (h *Handle) Output() (guillotine.Data, error) {
	if err := h.usable(); err != nil {
		return nil, err
	}
	size := h.instance.OutputLen()
	if size < 0 {
		return nil, &FatalFault{Op: "evm_get_output_len", Detail: fmt.Sprintf("negative size %d", size)}
	}
	output := make(guillotine.Data, size)
	if size == 0 {
		return output, nil
	}
	if copied := h.instance.CopyOutput(output); copied != size {
		return nil, &FatalFault{Op: "evm_get_output", Detail: fmt.Sprintf("copied %d bytes into a buffer of %d", copied, size)}
	}
	return output, nil
}

// StorageChanges enumerates the final values of all storage slots written by
// the last execution. Slots with a zero final value are not included, even
// if the native engine reports them.
func (h *Handle) StorageChanges() ([]guillotine.StorageChange, error) {
	if err := h.usable(); err != nil {
		return nil, err
	}
	count := h.instance.StorageChangeCount()
	changes := make([]guillotine.StorageChange, 0, max(count, 0))
	for i := 0; i < count; i++ {
		address, key, value, ok := h.instance.GetStorageChange(i)
		if !ok {
			return nil, &BoundaryCallError{Op: "evm_get_storage_change", Detail: fmt.Sprintf("index %d of %d", i, count)}
		}
		if value == ([32]byte{}) {
			continue
		}
		changes = append(changes, guillotine.StorageChange{Address: address, Key: key, Value: value})
	}
	return changes, nil
}

// Logs enumerates the logs emitted by the last execution in emission order.
func (h *Handle) Logs() ([]guillotine.Log, error) {
	if err := h.usable(); err != nil {
		return nil, err
	}
	count := h.instance.LogCount()
	logs := make([]guillotine.Log, 0, max(count, 0))
	for i := 0; i < count; i++ {
		log, err := h.log(i, count)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

func (h *Handle) log(index, count int) (guillotine.Log, error) {
	failed := func() error {
		return &BoundaryCallError{Op: "evm_get_log", Detail: fmt.Sprintf("index %d of %d", index, count)}
	}

	// The first call only fetches the data size.
	var entry native.LogEntry
	if !h.instance.GetLog(index, &entry) {
		return guillotine.Log{}, failed()
	}
	if entry.DataLen < 0 {
		return guillotine.Log{}, &FatalFault{Op: "evm_get_log", Detail: fmt.Sprintf("negative data length %d", entry.DataLen)}
	}
	size := entry.DataLen
	if size > 0 {
		entry.Data = make([]byte, size)
		if !h.instance.GetLog(index, &entry) {
			return guillotine.Log{}, failed()
		}
		if entry.DataLen != size {
			return guillotine.Log{}, &FatalFault{Op: "evm_get_log", Detail: fmt.Sprintf("data length changed from %d to %d", size, entry.DataLen)}
		}
	}
	if entry.TopicCount < 0 || entry.TopicCount > native.MaxLogTopics {
		return guillotine.Log{}, &FatalFault{Op: "evm_get_log", Detail: fmt.Sprintf("invalid topic count %d", entry.TopicCount)}
	}
	return logFromNative(&entry), nil
}
