/*
Package observability provides lifecycle hooks for monitoring call-flow engines.

It includes Prometheus counters fed by engine events, structured event logging
through slog, and a helper to combine several hook sets into one.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))
	engine, _ := callflow.New(graph, callflow.WithLifecycleHooks(hooks))
*/
package observability
