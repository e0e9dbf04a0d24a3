// Package testutil provides helpers shared by scaffold's tests: temporary
// directories, isolated XDG locations, file assertions and a filesystem that
// fails on demand.
package testutil
