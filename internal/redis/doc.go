// Package redis implements the Redis-backed report cache.
//
// Provides ReportCache (read-through JSON caching of report payloads)
// plus client hooks for metrics and circuit breaker protection. The
// cache is optional: every caller degrades to direct PostgreSQL reads.
package redis
