package common

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// LoggingMiddleware logs every request dispatched through the mediator
// with its duration and outcome, using the logger carried by the context.
func LoggingMiddleware(clock shared.Clock) mediator.Middleware {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx).With("request", RequestName(request))

		start := clock.Now()
		logger.Debug("handling request")

		response, err := next(ctx, request)

		elapsed := clock.Now().Sub(start)
		if err != nil {
			logger.Error("request failed", "duration", elapsed, "error", err)
			return nil, err
		}
		logger.Debug("request handled", "duration", elapsed)
		return response, nil
	}
}

// RequestName returns the bare type name of a request,
// e.g. "*queries.GetWalletReportQuery" becomes "GetWalletReportQuery".
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
