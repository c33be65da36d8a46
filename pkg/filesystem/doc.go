// Package filesystem provides implementations of the types.FS interface:
// one backed by the os package for real runs, one backed by afero for
// tests that do not exercise symlink semantics.
package filesystem
