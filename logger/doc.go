// Package logger provides structured logging for speakerkit using zerolog.
//
// It supports JSON and console output formats, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("speakerstats").WithComponent("batch")
//	log.Info("run complete", logger.Fields("processed", 12))
package logger
