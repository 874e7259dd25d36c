// Package jobs contains the scheduled background work: pulling new and
// updated orders from the external order-management system on a fixed
// interval. Jobs are thin wrappers around command handlers; all business
// rules live in the application layer.
package jobs
