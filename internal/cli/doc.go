// Package cli handles command-line argument parsing and validation for the
// plugforge binary.
package cli
