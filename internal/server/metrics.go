package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutristat_tool_calls_total",
		Help: "Number of tool calls received, per tool.",
	}, []string{"tool"})

	toolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutristat_tool_errors_total",
		Help: "Number of tool calls that failed, per tool.",
	}, []string{"tool"})

	discardedFoods = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nutristat_discarded_foods_total",
		Help: "Consumption entries discarded for lack of reference data.",
	})
)
