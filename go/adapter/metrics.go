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
	"context"
	"errors"

	"github.com/Fantom-foundation/Guillotine/go/guillotine"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the outcomes of the transactions processed by an adapter.
// A nil *Metrics records nothing.
type Metrics struct {
	transactions *prometheus.CounterVec
	gasUsed      prometheus.Histogram
	liveHandles  prometheus.GaugeFunc
}

// Outcome labels of the transaction counter.
const (
	ResultSuccess       = "success"
	ResultRevert        = "revert"
	ResultDatabase      = "database_error"
	ResultBoundary      = "boundary_error"
	ResultConfiguration = "configuration_error"
	ResultFatal         = "fatal_fault"
	ResultCanceled      = "canceled"
	ResultOther         = "other_error"
)

// NewMetrics creates the adapter metrics and registers them with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guillotine",
			Name:      "transactions_total",
			Help:      "Number of transactions processed by the native adapter, by result.",
		}, []string{"result"}),
		gasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guillotine",
			Name:      "gas_used",
			Help:      "Gas used by transactions completing in the native engine.",
			Buckets:   prometheus.ExponentialBuckets(21000, 2, 12),
		}),
		liveHandles: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "guillotine",
			Name:      "live_handles",
			Help:      "Number of native engine instances currently alive.",
		}, func() float64 { return float64(LiveHandles()) }),
	}
	for _, c := range []prometheus.Collector{m.transactions, m.gasUsed, m.liveHandles} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(outcome guillotine.Outcome, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.transactions.WithLabelValues(resultOfError(err)).Inc()
		return
	}
	switch outcome.(type) {
	case guillotine.Success:
		m.transactions.WithLabelValues(ResultSuccess).Inc()
	case guillotine.Revert:
		m.transactions.WithLabelValues(ResultRevert).Inc()
	}
	m.gasUsed.Observe(float64(outcome.Used()))
}

func resultOfError(err error) string {
	var (
		dbErr       *DatabaseError
		boundaryErr *BoundaryCallError
		configErr   *ConfigurationError
		fault       *FatalFault
	)
	switch {
	case errors.As(err, &fault):
		return ResultFatal
	case errors.As(err, &dbErr):
		return ResultDatabase
	case errors.As(err, &boundaryErr), errors.Is(err, ErrHandleClosed), errors.Is(err, ErrHandlePoisoned):
		return ResultBoundary
	case errors.As(err, &configErr):
		return ResultConfiguration
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultOther
	}
}
