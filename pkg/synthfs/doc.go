// Package synthfs applies scaffold plans as a single synthfs batch with
// rollback on error. It backs the transactional execution mode.
package synthfs
