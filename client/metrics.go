package client

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/hedera"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	promRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hedera_client_requests_total",
		Help: "total number of calls to the remote services",
	}, []string{"service", "method", "status"})

	promDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hedera_client_request_duration_seconds",
		Help:    "duration of the calls to the remote services",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "method"})
)

func init() {
	hedera.PromCollectors = append(hedera.PromCollectors, promRequests, promDuration)
}

// splitMethod returns the service and the method of a full method name of the
// form "/package.Service/method".
func splitMethod(fullMethod string) (string, string) {
	name := strings.TrimPrefix(fullMethod, "/")

	index := strings.LastIndexByte(name, '/')
	if index < 0 {
		return "unknown", name
	}

	service := name[:index]
	if dot := strings.LastIndexByte(service, '.'); dot >= 0 {
		service = service[dot+1:]
	}

	return service, name[index+1:]
}

func observe(fullMethod string, start time.Time, err error) {
	service, method := splitMethod(fullMethod)

	promRequests.WithLabelValues(service, method, status.Code(err).String()).Inc()
	promDuration.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
}

// metricsUnaryInterceptor records the status and the duration of the unary
// calls.
func metricsUnaryInterceptor(ctx context.Context, method string, req, reply interface{},
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {

	start := time.Now()

	err := invoker(ctx, method, req, reply, cc, opts...)

	observe(method, start, err)

	return err
}

// metricsStreamInterceptor records the status of the opening of the streams.
func metricsStreamInterceptor(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
	method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {

	start := time.Now()

	stream, err := streamer(ctx, desc, cc, method, opts...)

	observe(method, start, err)

	return stream, err
}
