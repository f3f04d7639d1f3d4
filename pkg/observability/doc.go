/*
Package observability turns orchestrator lifecycle hooks into Prometheus metrics
and structured log lines.

Metrics live on their own registry so several runs (or tests) never collide on the
global default registry.
*/
package observability
