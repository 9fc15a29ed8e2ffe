package lighthousedocs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	lighthousedocs "github.com/light-speak/lighthouse-docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gitFixture struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

func newGitFixture(t *testing.T) *gitFixture {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &gitFixture{t: t, dir: dir, repo: repo, wt: wt}
}

func (f *gitFixture) commit(when time.Time, files map[string]string) {
	f.t.Helper()

	for name, content := range files {
		p := filepath.Join(f.dir, filepath.FromSlash(name))

		require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o700))
		require.NoError(f.t, os.WriteFile(p, []byte(content), 0o600))

		_, err := f.wt.Add(name)
		require.NoError(f.t, err)
	}

	sig := &object.Signature{
		Name:  "Docs Writer",
		Email: "docs@example.com",
		When:  when,
	}

	_, err := f.wt.Commit("update docs", &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(f.t, err)
}

func TestLastUpdated(t *testing.T) {
	f := newGitFixture(t)

	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)
	t4 := t3.Add(24 * time.Hour)

	f.commit(t1, map[string]string{
		"docs/guide/getting-started.md": "# Getting started\n",
		"README.md":                     "# Lighthouse\n",
	})
	f.commit(t2, map[string]string{
		"docs/guide/cli/index.md": "# CLI\n",
	})
	f.commit(t3, map[string]string{
		"docs/guide/getting-started.md": "# Getting started\n\nInstall it.\n",
	})
	f.commit(t4, map[string]string{
		"README.md":          "# Lighthouse\n\nA framework.\n",
		"guide/unrelated.md": "# Not content\n",
	})

	updates, err := lighthousedocs.LastUpdated(f.repo, "docs", lighthousedocs.Default())
	require.NoError(t, err)

	require.Len(t, updates, 2)

	start := updates["/guide/getting-started"]
	assert.Equal(t, "docs/guide/getting-started.md", start.File)
	assert.True(t, t3.Equal(start.Time), "got %s", start.Time)

	cli := updates["/guide/cli"]
	assert.Equal(t, "docs/guide/cli/index.md", cli.File)
	assert.True(t, t2.Equal(cli.Time), "got %s", cli.Time)

	assert.NotContains(t, updates, "/schema/basics")
}

func TestLastUpdatedContentAtRoot(t *testing.T) {
	f := newGitFixture(t)

	when := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	f.commit(when, map[string]string{
		"features/queue.md": "# Queue\n",
	})

	updates, err := lighthousedocs.LastUpdated(f.repo, ".", lighthousedocs.Default())
	require.NoError(t, err)

	require.Contains(t, updates, "/features/queue")
	assert.True(t, when.Equal(updates["/features/queue"].Time))
}

func TestLastUpdatedEmptyRepository(t *testing.T) {
	f := newGitFixture(t)

	updates, err := lighthousedocs.LastUpdated(f.repo, "docs", lighthousedocs.Default())
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestOpenRepositoryFromSubdirectory(t *testing.T) {
	f := newGitFixture(t)

	f.commit(time.Now(), map[string]string{
		"docs/index.md": "# Home\n",
	})

	repo, err := lighthousedocs.OpenRepository(filepath.Join(f.dir, "docs"))
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.False(t, head.Hash().IsZero())

	_, err = lighthousedocs.OpenRepository(t.TempDir())
	require.Error(t, err)
}

func TestLastUpdatedLabel(t *testing.T) {
	when := time.Date(2024, 5, 1, 10, 4, 0, 0, time.UTC)

	conf := lighthousedocs.Default()
	assert.Equal(t, "最后更新于 2024-05-01 10:04", conf.LastUpdatedLabel(when))

	conf.ThemeConfig.LastUpdated.Text = ""
	assert.Equal(t, "2024-05-01 10:04", conf.LastUpdatedLabel(when))
}
