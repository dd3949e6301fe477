// Package observability wires logging, metrics and tracing at process
// startup. The metrics endpoint itself is mounted by the API router.
package observability

import (
	"context"

	"github.com/appfuel/purchasekit/internal/infrastructure/observability"
)

func Setup(serviceName string) func(context.Context) error {
	observability.InitLogger()
	observability.InitMetrics()
	return observability.InitTracing(serviceName)
}
