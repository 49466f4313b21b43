/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured log lines.

Both are delivered as domain.LifecycleHooks and can be combined with Merge:

	m, _ := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks().Merge(observability.LogHooks(logger))
*/
package observability
