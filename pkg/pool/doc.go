// Package pool provides a generic resource pool with borrow/return lease
// semantics. Resources enter the pool through Add, are borrowed through
// Lease handles and must be returned exactly once by releasing the lease.
// The pool never creates resources itself.
package pool
