package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/eve-wallet-go/internal/application/common"
	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
)

// PrometheusMiddleware records duration and outcome of every query sent
// through the mediator. Query names drop the package prefix, so
// "*queries.GetWalletReportQuery" is recorded as "GetWalletReportQuery".
func PrometheusMiddleware(collector *QueryMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordQueryExecution(common.RequestName(request), time.Since(start).Seconds(), err == nil)
		return response, err
	}
}
