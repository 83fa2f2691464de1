// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Console apps write their menus to stdout, so logs go to stderr unless
// configured otherwise.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//		return err
//	}
//	logger.Info("state exported", zap.String("path", path))
//	logger.Error("import failed", zap.Error(err))
package logging
