// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling against an externally managed Chinook
// schema; everything here is read-only analytics. Repositories implement
// the domain interfaces: FinanceRepository, CustomerRepository,
// MusicRepository, EmployeeRepository, AlertRepository, SchemaRepository.
package database
