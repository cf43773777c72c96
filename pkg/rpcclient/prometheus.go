package rpcclient

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics used in monitoring service.
var (
	activeNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Number of nodes in the active list",
			Name:      "active_nodes",
			Namespace: "nectarflower",
		},
	)

	rpcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Completed RPC calls",
			Name:      "rpc_calls_total",
			Namespace: "nectarflower",
		},
		[]string{"method", "success"},
	)

	nodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Per-node request failures causing a failover",
			Name:      "node_failures_total",
			Namespace: "nectarflower",
		},
		[]string{"node"},
	)
)

func init() {
	prometheus.MustRegister(
		activeNodes,
		rpcCalls,
		nodeFailures,
	)
}

func updateActiveNodesMetric(n int) {
	activeNodes.Set(float64(n))
}

func addCallMetric(method string, success bool) {
	rpcCalls.WithLabelValues(method, strconv.FormatBool(success)).Inc()
}

func incNodeFailureMetric(node string) {
	nodeFailures.WithLabelValues(node).Inc()
}
