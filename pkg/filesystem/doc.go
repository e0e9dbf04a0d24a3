// Package filesystem provides filesystem implementations for scaffold.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem, an in-memory filesystem and the copy-on-write
// layer used for dry runs.
package filesystem
