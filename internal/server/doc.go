// Package server exposes the analytics reports over HTTP.
//
// All endpoints are read-only GETs under /api/v1, grouped by dashboard
// page (finance, customers, music, employees, alerts, explorer, meta).
// Operational endpoints (/health/*, /metrics, /version) live at the root.
package server
