// Package templates holds the built-in scaffolds. Each one is an embedded
// manifest plus the payload files it points at; the payloads are opaque text.
package templates
