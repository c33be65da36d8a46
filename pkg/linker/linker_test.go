package linker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moxi-git/dotfiles/pkg/filesystem"
	"github.com/moxi-git/dotfiles/pkg/types"
	"github.com/moxi-git/dotfiles/pkg/ui/confirm"
)

// testTree creates an isolated source tree and home directory on the real
// filesystem. Symlink semantics are the whole point of the linker, so
// these tests do not use the in-memory filesystem.
func testTree(t *testing.T, sourceFiles ...string) (sourceRoot, homeRoot string) {
	t.Helper()
	base := t.TempDir()

	sourceRoot = filepath.Join(base, "dotfiles", "configs")
	homeRoot = filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(sourceRoot, 0755))
	require.NoError(t, os.MkdirAll(homeRoot, 0755))

	for _, name := range sourceFiles {
		path := filepath.Join(sourceRoot, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0644))
	}
	return sourceRoot, homeRoot
}

func outcomesByName(results []types.LinkResult) map[string]types.LinkOutcome {
	m := make(map[string]types.LinkOutcome)
	for _, r := range results {
		m[filepath.Base(r.Target.Destination)] = r.Outcome
	}
	return m
}

func TestInstallTreeFreshHome(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a", "b", "README.md")

	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	results, err := l.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)
	require.Len(t, results, 2)

	outcomes := outcomesByName(results)
	assert.Equal(t, types.OutcomeCreated, outcomes["a"])
	assert.Equal(t, types.OutcomeCreated, outcomes["b"])

	for _, name := range []string{"a", "b"} {
		dest := filepath.Join(homeRoot, name)
		info, err := os.Lstat(dest)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "%s should be a symlink", name)

		// The link target is relative and resolves back into the source tree
		linkTarget, err := os.Readlink(dest)
		require.NoError(t, err)
		assert.False(t, filepath.IsAbs(linkTarget))

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "content of "+name, string(content))
	}

	// Excluded name never gets an entry
	_, err = os.Lstat(filepath.Join(homeRoot, "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallTreeIdempotent(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a", "b", ".vimrc")

	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	_, err := l.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)

	// Second run must not prompt and must skip everything
	scripted := &confirm.Scripted{}
	l2 := New(filesystem.NewOS(), scripted, types.Options{})
	results, err := l2.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, types.OutcomeSkippedCorrect, r.Outcome, "%s", r.Target.Destination)
	}
	assert.Empty(t, scripted.Prompts, "idempotent rerun must never prompt")
}

func TestInstallTreeConfigSubtree(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a", ".config/nvim/init.lua", ".config/kitty/kitty.conf")

	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	results, err := l.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)

	// a, nvim, kitty — .config itself is never linked directly
	require.Len(t, results, 3)
	_, err = os.Lstat(filepath.Join(homeRoot, ".config"))
	require.NoError(t, err)

	for _, name := range []string{"nvim", "kitty"} {
		dest := filepath.Join(homeRoot, ".config", name)
		info, err := os.Lstat(dest)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "%s should be a symlink", name)
	}

	// Directory links resolve into the tree
	content, err := os.ReadFile(filepath.Join(homeRoot, ".config", "nvim", "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "content of .config/nvim/init.lua", string(content))
}

func TestInstallTreeMissingSourceIsFatal(t *testing.T) {
	_, homeRoot := testTree(t)

	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	_, err := l.InstallTree(filepath.Join(homeRoot, "nope"), homeRoot, nil)
	require.Error(t, err)
}

func TestInstallRefusesDestinationOutsideHome(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	escape := filepath.Join(homeRoot, "..", "escape")
	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: escape,
	})

	assert.Equal(t, types.OutcomeError, result.Outcome)
	require.Error(t, result.Err)

	// No mutation happened
	_, err := os.Lstat(filepath.Clean(escape))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallNoClobberWithoutConsent(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	dest := filepath.Join(homeRoot, "a")
	require.NoError(t, os.WriteFile(dest, []byte("precious"), 0644))

	declining := &confirm.Scripted{Answers: []bool{false}}
	l := New(filesystem.NewOS(), declining, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: dest,
	})

	assert.Equal(t, types.OutcomeSkippedDeclined, result.Outcome)
	require.Len(t, declining.Prompts, 1)
	assert.Contains(t, declining.Prompts[0], dest)

	// Destination is byte-for-byte unchanged and still a regular file
	info, err := os.Lstat(dest)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(content))
}

func TestInstallReplacesWithConsent(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	dest := filepath.Join(homeRoot, "a")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

	l := New(filesystem.NewOS(), &confirm.Scripted{Answers: []bool{true}}, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: dest,
	})

	assert.Equal(t, types.OutcomeReplaced, result.Outcome)

	info, err := os.Lstat(dest)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content of a", string(content))
}

func TestInstallReplacesForeignSymlink(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	// A symlink pointing somewhere else entirely is not "already correct"
	dest := filepath.Join(homeRoot, "a")
	require.NoError(t, os.Symlink("/etc/hostname", dest))

	scripted := &confirm.Scripted{Answers: []bool{true}}
	l := New(filesystem.NewOS(), scripted, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: dest,
	})

	assert.Equal(t, types.OutcomeReplaced, result.Outcome)
	assert.Len(t, scripted.Prompts, 1)

	linkTarget, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.NotEqual(t, "/etc/hostname", linkTarget)
}

func TestInstallCorrectLinkNeverPrompts(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	dest := filepath.Join(homeRoot, "a")
	require.NoError(t, os.Symlink(filepath.Join(sourceRoot, "a"), dest))

	scripted := &confirm.Scripted{Answers: []bool{false}}
	l := New(filesystem.NewOS(), scripted, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: dest,
	})

	assert.Equal(t, types.OutcomeSkippedCorrect, result.Outcome)
	assert.Empty(t, scripted.Prompts)
}

func TestInstallAcceptsRelativeCorrectLink(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	dest := filepath.Join(homeRoot, "a")
	rel, err := filepath.Rel(homeRoot, filepath.Join(sourceRoot, "a"))
	require.NoError(t, err)
	require.NoError(t, os.Symlink(rel, dest))

	l := New(filesystem.NewOS(), &confirm.Scripted{}, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: dest,
	})

	assert.Equal(t, types.OutcomeSkippedCorrect, result.Outcome)
}

func TestInstallTreeDryRunIsPure(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a", "b", ".config/nvim/init.lua")

	// Pre-existing foreign file to exercise the replace path too
	existing := filepath.Join(homeRoot, "b")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0644))

	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{DryRun: true})
	results, err := l.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)

	outcomes := outcomesByName(results)
	assert.Equal(t, types.OutcomeCreated, outcomes["a"])
	assert.Equal(t, types.OutcomeReplaced, outcomes["b"])
	assert.Equal(t, types.OutcomeCreated, outcomes["nvim"])

	// Nothing was touched
	entries, err := os.ReadDir(homeRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Name())
	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestInstallSymlinkFailureIsItemScoped(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a")

	// Parent directory of the destination does not exist
	l := New(filesystem.NewOS(), confirm.Auto{}, types.Options{})
	result := l.Install(sourceRoot, homeRoot, types.LinkTarget{
		Source:      filepath.Join(sourceRoot, "a"),
		Destination: filepath.Join(homeRoot, "missing-dir", "a"),
	})

	assert.Equal(t, types.OutcomeError, result.Outcome)
	require.Error(t, result.Err)
}

func TestInstallTreeContinuesAfterItemFailure(t *testing.T) {
	sourceRoot, homeRoot := testTree(t, "a", "b")

	// Make "a" fail by occupying its destination and declining, then
	// verify "b" is still processed.
	require.NoError(t, os.WriteFile(filepath.Join(homeRoot, "a"), []byte("x"), 0644))

	l := New(filesystem.NewOS(), &confirm.Scripted{Answers: []bool{false}}, types.Options{})
	results, err := l.InstallTree(sourceRoot, homeRoot, ExcludeSet(DefaultExcludes))
	require.NoError(t, err)

	outcomes := outcomesByName(results)
	assert.Equal(t, types.OutcomeSkippedDeclined, outcomes["a"])
	assert.Equal(t, types.OutcomeCreated, outcomes["b"])
}

func TestSummarize(t *testing.T) {
	results := []types.LinkResult{
		{Outcome: types.OutcomeCreated},
		{Outcome: types.OutcomeCreated},
		{Outcome: types.OutcomeSkippedCorrect},
		{Outcome: types.OutcomeSkippedDeclined},
		{Outcome: types.OutcomeReplaced},
		{Outcome: types.OutcomeError},
	}

	s := Summarize(results)
	assert.Equal(t, Summary{Created: 2, Skipped: 1, Declined: 1, Replaced: 1, Errors: 1}, s)
}

func TestExcludeSet(t *testing.T) {
	set := ExcludeSet(DefaultExcludes, []string{"custom"})
	assert.True(t, set[".git"])
	assert.True(t, set["README.md"])
	assert.True(t, set["custom"])
	assert.False(t, set[".vimrc"])
}
