package lighthousedocs

import (
	"errors"
	"fmt"
)

const (
	// SearchProviderNone leaves search out of the site.
	SearchProviderNone    = ""
	SearchProviderLocal   = "local"
	SearchProviderAlgolia = "algolia"
)

var ErrUnknownSearchProvider = errors.New("unknown search provider")

type SearchConfig struct {
	Provider string         `json:"provider" yaml:"provider" koanf:"provider"`
	Options  *AlgoliaConfig `json:"options,omitempty" yaml:"options,omitempty" koanf:"options"`
}

// AlgoliaConfig holds the credentials of the hosted search index.
type AlgoliaConfig struct {
	AppID     string `json:"appId" yaml:"appId" koanf:"appId"`
	APIKey    string `json:"apiKey" yaml:"apiKey" koanf:"apiKey"`
	IndexName string `json:"indexName" yaml:"indexName" koanf:"indexName"`
}

// SearchStrategy is the search backend the site generator wires into the
// generated pages.
type SearchStrategy interface {
	Name() string
	// Offline reports whether search runs entirely in the browser against
	// an index shipped with the site.
	Offline() bool
}

// LocalSearch searches a client side index built together with the site.
type LocalSearch struct{}

func (LocalSearch) Name() string  { return SearchProviderLocal }
func (LocalSearch) Offline() bool { return true }

// AlgoliaSearch queries a hosted Algolia index.
type AlgoliaSearch struct {
	AppID     string
	IndexName string
}

func (AlgoliaSearch) Name() string  { return SearchProviderAlgolia }
func (AlgoliaSearch) Offline() bool { return false }

// Strategy returns the search strategy selected by the provider, or nil if
// the site has no search.
func (s SearchConfig) Strategy() (SearchStrategy, error) {
	switch s.Provider {
	case SearchProviderNone:
		return nil, nil
	case SearchProviderLocal:
		return LocalSearch{}, nil
	case SearchProviderAlgolia:
		if s.Options == nil {
			return nil, errors.New("algolia search requires options")
		}

		return AlgoliaSearch{
			AppID:     s.Options.AppID,
			IndexName: s.Options.IndexName,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSearchProvider, s.Provider)
}
