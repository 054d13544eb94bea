/*
Package observability provides tools for monitoring the superdense engine.

Everything is exposed as domain.LifecycleHooks: Prometheus collectors
(Metrics), structured logging of every transition (LogHooks), and
CombineHooks to attach several hook sets to one engine.
*/
package observability
