// Package paths provides centralized path handling for scaffold.
//
// It resolves the base directory a scaffold is emitted into, implements XDG
// Base Directory compliance for scaffold's own config and state files, and
// guards every emitted path against escaping the base directory.
package paths
