/*
Package monitoring provides Prometheus metrics for runner lifecycles and state
persistence.

# Overview

Each runner records into its own registry so several runners (and tests) can
coexist in one process without duplicate registration panics.

# Metrics

- miniapp_lifecycle_transitions_total{app,phase}
- miniapp_run_steps_total{app}
- miniapp_state_operations_total{app,op,format,result}
- miniapp_state_operation_duration_seconds{app,op,format}
- miniapp_state_bytes{app,op,format}

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	timer := metrics.StartOperation("Counter", monitoring.OpExport, "json")
	// ... perform export ...
	timer.Stop(err)

	// Dump for the node_exporter textfile collector
	monitoring.WriteTextfile(reg, "/var/lib/node_exporter/miniapp.prom")
*/
package monitoring
