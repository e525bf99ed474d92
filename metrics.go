package ch

import "context"

// queryMetrics accumulates the counters a single Do call reports to its
// OpenTelemetry span on completion.
type queryMetrics struct {
	BlocksSent      int
	BlocksReceived  int
	RowsReceived    int
	ColumnsReceived int
	Rows            int
	Bytes           int
}

// ctxQueryKey is the context key under which Do stashes the in-flight
// query's metrics accumulator, so deeply nested helpers can report into it
// without threading an extra parameter through every call.
type ctxQueryKey struct{}

// metricsInc folds delta into the metrics accumulator stashed in ctx, if
// OpenTelemetry tracing is enabled for this Do call.
func (c *Client) metricsInc(ctx context.Context, delta queryMetrics) {
	m, ok := ctx.Value(ctxQueryKey{}).(*queryMetrics)
	if !ok {
		return
	}
	m.BlocksSent += delta.BlocksSent
	m.BlocksReceived += delta.BlocksReceived
	m.RowsReceived += delta.RowsReceived
	m.ColumnsReceived += delta.ColumnsReceived
	m.Rows += delta.Rows
	m.Bytes += delta.Bytes
}
