// Package output renders scaffold's console output. Progress notices,
// template listings and descriptions are printed as plain text, styled
// terminal output or JSON depending on the selected ui.Format.
package output
