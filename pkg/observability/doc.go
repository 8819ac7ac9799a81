/*
Package observability provides tools for monitoring decode traffic.

It includes Prometheus instruments for request counts, latencies and
sequence lengths, plus a PathStats accumulator for summarizing decoded
state paths (occupancy and switch counts) in batch jobs and reports.
*/
package observability
