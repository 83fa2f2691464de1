// Package launcher wires configuration, logging, metrics and signal
// handling around an app.Runner for the cmd entry points.
//
// Configuration:
//   - Environment variables (12-factor), optionally from a .env file
//   - CLI flags (override env vars)
//
// Usage:
//
//	counter -resources ./data -format yaml -resume -autosave
//	counter -metrics-file /var/lib/node_exporter/counter.prom
//
// Signals:
//   - SIGINT, SIGTERM: stop after the current step, then shut down
package launcher
