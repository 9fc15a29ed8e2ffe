package lighthousedocs

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"github.com/light-speak/lighthouse-docs/internal"
)

// PageUpdate is the most recent change to the source of a page.
type PageUpdate struct {
	Link   string
	File   string
	Commit plumbing.Hash
	Time   time.Time
}

// OpenRepository opens the git repository that dir is a part of.
func OpenRepository(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	return repo, nil
}

// LastUpdated finds the last commit that changed the source of each site
// link. contentDir is the slash separated path of the content root relative
// to the root of the repository. Pages without history are left out.
func LastUpdated(
	repo *git.Repository, contentDir string, conf SiteConfig,
) (map[string]PageUpdate, error) {
	contentDir = strings.Trim(path.Clean("/"+contentDir), "/")

	links := conf.InternalLinks()
	sources := make(map[string]string)

	for _, link := range links {
		for _, f := range SourceFiles(link) {
			sources[path.Join(contentDir, f)] = link
		}
	}

	updates := make(map[string]PageUpdate, len(links))

	log, err := repo.Log(&git.LogOptions{
		Order: git.LogOrderCommitterTime,
	})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return updates, nil
	} else if err != nil {
		return nil, fmt.Errorf("get git log: %w", err)
	}

	touched := internal.NewChangedPathsIter(
		func(c *object.Commit, changed []string) bool {
			var hit bool

			for _, name := range changed {
				link, ok := sources[name]
				if !ok {
					continue
				}

				if _, seen := updates[link]; seen {
					continue
				}

				updates[link] = PageUpdate{
					Link:   link,
					File:   name,
					Commit: c.Hash,
					Time:   c.Committer.When,
				}

				hit = true
			}

			return hit
		}, log)

	defer touched.Close()

	err = touched.ForEach(func(_ *object.Commit) error {
		if len(updates) == len(links) {
			return storer.ErrStop
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read git log: %w", err)
	}

	return updates, nil
}

// LastUpdatedLabel formats the last updated line shown on a page.
func (c SiteConfig) LastUpdatedLabel(t time.Time) string {
	stamp := t.Format("2006-01-02 15:04")

	if c.ThemeConfig.LastUpdated.Text == "" {
		return stamp
	}

	return c.ThemeConfig.LastUpdated.Text + " " + stamp
}
