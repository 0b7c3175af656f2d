// Package app provides the application service layer.
//
// Orchestrates report serving: date-range defaulting from invoice bounds,
// parameter clamping, and read-through caching. Sits between HTTP handlers
// and domain repositories. Depends on domain interfaces, not concrete
// implementations.
package app
