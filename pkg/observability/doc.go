/*
Package observability provides tools for monitoring the nfasim engine.

Metrics and log lines are attached to an Engine through domain.LifecycleHooks,
so the simulation core stays free of any instrumentation:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	hooks := observability.Combine(metrics.Hooks(), observability.LogHooks(logger))
	eng, err := nfasim.New(dir, nfasim.WithLifecycleHooks(hooks))
*/
package observability
