// Package tracing provides the opentracing tracers of the clients. A tracer is
// configured from the JAEGER_* environment variables and shared by all the
// clients of a service.
package tracing

import (
	"io"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"golang.org/x/xerrors"
)

const (
	// CorrelationTag is the span tag holding the correlation id of a call.
	CorrelationTag = "correlation_id"

	// NetworkTag is the span tag holding the ledger of the client.
	NetworkTag = "hedera.network"
)

type entry struct {
	tracer opentracing.Tracer
	closer io.Closer
}

var (
	mu      sync.Mutex
	tracers = make(map[string]entry)
)

// GetTracer returns the tracer of the service, creating it on the first call.
func GetTracer(service string) (opentracing.Tracer, error) {
	mu.Lock()
	defer mu.Unlock()

	e, ok := tracers[service]
	if ok {
		return e.tracer, nil
	}

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, xerrors.Errorf("error parsing jaeger configuration from environment: %v", err)
	}

	cfg.ServiceName = service

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, xerrors.Errorf("error creating new tracer: %v", err)
	}

	tracers[service] = entry{tracer: tracer, closer: closer}

	return tracer, nil
}

// CloseAll flushes and closes every tracer. The tracers are forgotten even
// when closing one fails, and the first error is returned.
func CloseAll() error {
	mu.Lock()
	defer mu.Unlock()

	var first error

	for service, e := range tracers {
		err := e.closer.Close()
		if err != nil && first == nil {
			first = xerrors.Errorf("couldn't close tracer of '%s': %v", service, err)
		}

		delete(tracers, service)
	}

	return first
}
