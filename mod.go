// Package hedera provides client-side builders for the Hedera transaction and
// query API.
//
// Each network operation is modelled by its own builder type living in a
// domain package (contract, system, token, topic). A builder is mutated in
// place through chainable setters, converted to the wire message of the
// operation and dispatched to the remote service method it belongs to. The
// root package only holds the process-wide logger and the list of Prometheus
// collectors registered by the other packages.
package hedera

import (
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "LLVL"

const defaultLevel = zerolog.InfoLevel

var logout = zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance. By default, it only prints
// info level logs, but it can be changed through the environment variable
// named by EnvLogLevel.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(levelFromEnv(os.Getenv(EnvLogLevel)))

// PromCollectors exposes the Prometheus collectors created by the packages of
// the module. They are registered by the application that wants to expose
// them.
var PromCollectors []prometheus.Collector

func levelFromEnv(value string) zerolog.Level {
	switch strings.ToLower(value) {
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "":
		return defaultLevel
	default:
		return defaultLevel
	}
}
