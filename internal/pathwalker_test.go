package internal_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"github.com/light-speak/lighthouse-docs/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedPathsIter(t *testing.T) {
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	commit := func(msg string, files ...string) {
		for _, name := range files {
			p := filepath.Join(dir, filepath.FromSlash(name))

			require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
			require.NoError(t, os.WriteFile(p, []byte(msg), 0o600))

			_, err := wt.Add(name)
			require.NoError(t, err)
		}

		when = when.Add(time.Hour)

		sig := &object.Signature{Name: "A", Email: "a@example.com", When: when}

		_, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}

	commit("initial", "docs/index.md", "go.mod")
	commit("guide", "docs/guide/cli.md")
	commit("module", "go.mod")
	commit("guide again", "docs/guide/cli.md", "docs/index.md")

	log, err := repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	require.NoError(t, err)

	changes := make(map[string][]string)

	iter := internal.NewChangedPathsIter(func(c *object.Commit, changed []string) bool {
		changes[strings.TrimSpace(c.Message)] = changed

		for _, name := range changed {
			if name == "docs/guide/cli.md" {
				return true
			}
		}

		return false
	}, log)

	defer iter.Close()

	var messages []string

	err = iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, strings.TrimSpace(c.Message))

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"guide again", "guide"}, messages)
	assert.ElementsMatch(t, []string{"docs/index.md", "go.mod"}, changes["initial"])
	assert.Equal(t, []string{"go.mod"}, changes["module"])
}

func TestChangedPathsIterStop(t *testing.T) {
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for i, name := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))

		_, err := wt.Add(name)
		require.NoError(t, err)

		sig := &object.Signature{
			Name:  "A",
			Email: "a@example.com",
			When:  time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
		}

		_, err = wt.Commit(name, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}

	log, err := repo.Log(&git.LogOptions{})
	require.NoError(t, err)

	iter := internal.NewChangedPathsIter(func(_ *object.Commit, _ []string) bool {
		return true
	}, log)

	defer iter.Close()

	var seen int

	err = iter.ForEach(func(_ *object.Commit) error {
		seen++

		return storer.ErrStop
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}
