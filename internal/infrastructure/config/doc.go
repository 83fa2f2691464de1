// Package config provides 12-factor configuration for the miniapp entry points.
//
// Configuration starts from Default and is overlaid with environment variables.
// An optional .env file is read first; variables already present in the
// environment win over it. CLI flags override both.
//
// Configuration Sections:
//   - App: resources path, default format, resume and autosave toggles
//   - Logging: log level, output format and destination
//   - Metrics: optional Prometheus textfile written at exit
//
// Example Usage:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("state files live in %s\n", cfg.App.ResourcesPath)
//
// Environment Variables:
//   - MINIAPP_RESOURCES_PATH, MINIAPP_FORMAT, MINIAPP_RESUME, MINIAPP_AUTOSAVE
//   - LOG_LEVEL, LOG_DEV, LOG_OUTPUT
//   - MINIAPP_METRICS_FILE
package config
