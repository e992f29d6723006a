// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, filtering, pagination, and upsert support. A
// repository is bound to a request session handle and stages writes without
// finalizing transactions.
package repository
