package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// PrometheusMiddleware times every dispatch and counts it by outcome. A nil collector
// disables it. Requests are labelled by their bare type name: *commands.HarvestCommand
// becomes HarvestCommand.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}
		collector.started()
		defer collector.finished()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(extractCommandName(request), time.Since(start).Seconds(), outcome(err))
		return response, err
	}
}

// outcome is "success", the domain error kind, or "error" for infrastructure failures
func outcome(err error) string {
	switch kind := shared.KindOf(err); {
	case err == nil:
		return "success"
	case kind != "":
		return string(kind)
	default:
		return "error"
	}
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	name := reflect.TypeOf(request).String()
	return name[strings.LastIndex(name, ".")+1:]
}
