// Package database provides connection management, request-scoped sessions,
// startup migrations, configuration types, logging, health checks, and SQL
// error classification built on top of Bun.
package database
