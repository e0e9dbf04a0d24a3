// Package types defines the core types and interfaces used throughout scaffold.
// This includes the FS interface the emitter writes through, the Scaffold
// definition (directory list plus content map) and the per-entry results a
// run reports back.
package types
