// Package repository provides database access for bookings, members,
// users and welcome packet items over database/sql.  Methods suffixed
// Tx operate inside a caller-owned transaction; the caller commits or
// rolls back.  Sentinel errors (ErrCodeExists, ErrEmailExists) are
// defined next to the methods that produce them and let callers
// distinguish failure scenarios without string matching.
package repository
