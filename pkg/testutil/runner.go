// Package testutil provides fakes shared by the test suites.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/moxi-git/dotfiles/pkg/types"
)

// Call records one command invocation seen by the FakeRunner
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call the way it would appear on a command line
func (c Call) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// FakeRunner is a scripted types.Runner. Commands succeed unless their
// rendered command line matches a key in Errors; Output responses come
// from Outputs keyed the same way. Binaries are findable when listed in
// Binaries.
type FakeRunner struct {
	Calls    []Call
	Errors   map[string]error
	Outputs  map[string]string
	Binaries map[string]string
}

// NewFakeRunner creates an empty FakeRunner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Errors:   make(map[string]error),
		Outputs:  make(map[string]string),
		Binaries: make(map[string]string),
	}
}

func (f *FakeRunner) record(dir, name string, args []string) Call {
	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	return call
}

// Run records the call and returns a scripted error, if any
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) error {
	return f.RunIn(ctx, "", name, args...)
}

// RunIn records the call with its working directory
func (f *FakeRunner) RunIn(ctx context.Context, dir, name string, args ...string) error {
	call := f.record(dir, name, args)
	return f.Errors[call.String()]
}

// Output records the call and returns the scripted output
func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	call := f.record("", name, args)
	return f.Outputs[call.String()], f.Errors[call.String()]
}

// LookPath resolves only binaries registered in Binaries
func (f *FakeRunner) LookPath(name string) (string, error) {
	if path, ok := f.Binaries[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// CommandLines returns every recorded call rendered as a command line
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

var _ types.Runner = (*FakeRunner)(nil)
