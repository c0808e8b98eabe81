package fake

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
)

// GetTracerWithError is used to mock `tracing.GetTracer` with an error.
func GetTracerWithError(string) (opentracing.Tracer, error) {
	return nil, fakeErr
}

// GetTracerNoop is used to mock `tracing.GetTracer` with a tracer that does
// nothing.
func GetTracerNoop(string) (opentracing.Tracer, error) {
	return opentracing.NoopTracer{}, nil
}

// GetTracerMock returns a replacement of `tracing.GetTracer` that always
// returns the tracer, so that the finished spans can be inspected.
func GetTracerMock(tracer *mocktracer.MockTracer) func(string) (opentracing.Tracer, error) {
	return func(string) (opentracing.Tracer, error) {
		return tracer, nil
	}
}
