package mid

import (
	"context"
	"net/http"

	"github.com/planora/planora/app/sdk/metrics"
	"github.com/planora/planora/business/sdk/web"
)

// Metrics updates program counters as requests flow through.
func Metrics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)

			resp := next(ctx, r)

			n := metrics.AddRequests(ctx)
			if n%1000 == 0 {
				metrics.AddGoroutines(ctx)
			}

			if err := checkIsError(resp); err != nil {
				metrics.AddErrors(ctx)
			}

			return resp
		}

		return h
	}

	return m
}
