package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
)

// changedPathsIter yields the commits of a source iterator whose changes
// against their first parent are accepted by a filter.
type changedPathsIter struct {
	accept func(*object.Commit, []string) bool
	source object.CommitIter
}

// NewChangedPathsIter wraps a commit iterator so that only the commits for
// which accept returns true are returned. accept gets the commit and the
// paths it added, modified or removed compared to its first parent. Root
// commits are compared to an empty tree.
func NewChangedPathsIter(
	accept func(c *object.Commit, changed []string) bool,
	source object.CommitIter,
) object.CommitIter {
	return &changedPathsIter{
		accept: accept,
		source: source,
	}
}

func (it *changedPathsIter) Next() (*object.Commit, error) {
	for {
		commit, err := it.source.Next()
		if err != nil {
			return nil, err
		}

		changed, err := ChangedPaths(commit)
		if err != nil {
			return nil, fmt.Errorf("diff commit %s: %w", commit.Hash, err)
		}

		if it.accept(commit, changed) {
			return commit, nil
		}
	}
}

func (it *changedPathsIter) ForEach(cb func(*object.Commit) error) error {
	for {
		commit, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		err = cb(commit)
		if errors.Is(err, storer.ErrStop) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (it *changedPathsIter) Close() {
	it.source.Close()
}

// ChangedPaths lists the paths a commit touched compared to its first parent.
func ChangedPaths(commit *object.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}

	var parentTree *object.Tree

	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("get parent commit: %w", err)
		}

		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("get parent tree: %w", err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	names := make([]string, 0, len(changes))

	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}

		names = append(names, name)
	}

	return names, nil
}
