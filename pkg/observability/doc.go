/*
Package observability exposes the prometheus instrumentation for the sync
layer: cache effectiveness, stale-response discards, polling activity and
confirmation outcomes. Collectors register on the default registerer; expose
them with promhttp wherever the embedding process serves metrics.
*/
package observability
