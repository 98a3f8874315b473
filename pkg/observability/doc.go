/*
Package observability exposes pinion machine lifecycle hooks as Prometheus
metrics: step counters, failure counters and step duration histograms,
labeled by machine and state.
*/
package observability
