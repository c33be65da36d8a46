// Package types holds the shared types and capability interfaces of the
// bootstrap tool. Capabilities (filesystem, confirmation, command runner)
// are interfaces so every consumer can be tested without a real terminal
// or a root shell.
package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for installer operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Removal
	Remove(name string) error
	RemoveAll(path string) error
}

// Confirmer asks the user a yes/no question before a destructive action.
// Implementations either block on the terminal or resolve immediately
// (auto-confirm, scripted answers in tests).
type Confirmer interface {
	Confirm(prompt string, defaultYes bool) bool
}

// Runner executes external commands (package managers, chsh, reboot)
type Runner interface {
	// Run executes a command with inherited stdio
	Run(ctx context.Context, name string, args ...string) error

	// RunIn executes a command with inherited stdio in a working directory
	RunIn(ctx context.Context, dir, name string, args ...string) error

	// Output executes a command and captures its combined output
	Output(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports the absolute path of a binary, or an error if absent
	LookPath(name string) (string, error)
}

// Options is the immutable run configuration, passed explicitly instead of
// being read from process-wide state
type Options struct {
	AutoConfirm  bool
	DryRun       bool
	SkipDots     bool
	SkipPackages bool
	SkipReboot   bool
}

// LinkTarget is a single unit of installation: a source inside the
// dotfiles tree and its computed destination inside the home tree
type LinkTarget struct {
	Source      string
	Destination string
}

// LinkOutcome classifies what happened to one LinkTarget during a run
type LinkOutcome string

const (
	OutcomeCreated         LinkOutcome = "created"
	OutcomeSkippedCorrect  LinkOutcome = "skipped_existing_correct_link"
	OutcomeSkippedDeclined LinkOutcome = "skipped_user_declined"
	OutcomeReplaced        LinkOutcome = "replaced"
	OutcomeError           LinkOutcome = "error"
)

// LinkResult pairs a target with its outcome. Err is set only when
// Outcome is OutcomeError.
type LinkResult struct {
	Target  LinkTarget
	Outcome LinkOutcome
	Err     error
}

// Failed reports whether the item ended in an error
func (r LinkResult) Failed() bool {
	return r.Outcome == OutcomeError
}
