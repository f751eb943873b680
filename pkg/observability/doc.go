/*
Package observability provides Prometheus instrumentation for the admission service.

It counts generated templates per format (including failures), records render
latency, and counts admin gate denials per reason. Metrics live in a dedicated
registry so that tests and embedders can create isolated instances.
*/
package observability
