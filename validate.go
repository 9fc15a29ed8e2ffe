package lighthousedocs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Problem is a single violation found in a site configuration.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// ValidationError collects all problems found in a configuration.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))

	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}

	return fmt.Sprintf("%d configuration problem(s): %s",
		len(e.Problems), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))

	for i := range e.Problems {
		errs[i] = e.Problems[i]
	}

	return errs
}

type problems []Problem

func (ps *problems) add(path string, format string, a ...any) {
	*ps = append(*ps, Problem{
		Path:    path,
		Message: fmt.Sprintf(format, a...),
	})
}

func (ps problems) err() error {
	if len(ps) == 0 {
		return nil
	}

	return &ValidationError{Problems: ps}
}

// sortedSidebarKeys returns the sidebar keys in a stable order.
func (c SiteConfig) sortedSidebarKeys() []string {
	keys := make([]string, 0, len(c.ThemeConfig.Sidebar))

	for k := range c.ThemeConfig.Sidebar {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Validate checks the structural invariants of the configuration and returns
// a *ValidationError listing every problem found.
func Validate(conf SiteConfig) error {
	var ps problems

	if conf.Title == "" {
		ps.add("title", "must not be empty")
	}

	if !strings.HasPrefix(conf.Base, "/") || !strings.HasSuffix(conf.Base, "/") {
		ps.add("base", "%q must start and end with a slash", conf.Base)
	}

	for i, h := range conf.Head {
		if h.Tag == "" {
			ps.add(fmt.Sprintf("head[%d]", i), "tag name must not be empty")
		}
	}

	theme := conf.ThemeConfig

	if theme.Logo != "" {
		checkInternalLink(&ps, "themeConfig.logo", theme.Logo)
	}

	sections := make(map[string]bool)

	for i, n := range theme.Nav {
		p := fmt.Sprintf("themeConfig.nav[%d]", i)

		if n.Text == "" {
			ps.add(p+".text", "must not be empty")
		}

		if IsExternal(n.Link) {
			checkExternalLink(&ps, p+".link", n.Link)

			continue
		}

		if checkInternalLink(&ps, p+".link", n.Link) {
			sections[SectionRoot(n.Link)] = true
		}
	}

	for _, key := range conf.sortedSidebarKeys() {
		p := fmt.Sprintf("themeConfig.sidebar[%q]", key)

		if !strings.HasPrefix(key, "/") || !strings.HasSuffix(key, "/") {
			ps.add(p, "key must start and end with a slash")
		} else if !sections[SectionRoot(key)] {
			ps.add(p, "no nav entry links to section %q", SectionRoot(key))
		}

		for gi, g := range theme.Sidebar[key] {
			gp := fmt.Sprintf("%s[%d]", p, gi)

			if len(g.Items) == 0 {
				ps.add(gp+".items", "group has no items")
			}

			for ii, item := range g.Items {
				ip := fmt.Sprintf("%s.items[%d]", gp, ii)

				if item.Text == "" {
					ps.add(ip+".text", "must not be empty")
				}

				checkInternalLink(&ps, ip+".link", item.Link)
			}
		}
	}

	for i, s := range theme.SocialLinks {
		p := fmt.Sprintf("themeConfig.socialLinks[%d]", i)

		if s.Icon == "" {
			ps.add(p+".icon", "must not be empty")
		}

		checkExternalLink(&ps, p+".link", s.Link)
	}

	validateSearch(&ps, theme.Search)

	lvl := theme.Outline.Level
	if lvl.Min() < 1 || lvl.Max() > 6 || lvl.Min() > lvl.Max() {
		ps.add("themeConfig.outline.level",
			"[%d, %d] is not an ordered range of heading levels 1-6",
			lvl.Min(), lvl.Max())
	}

	return ps.err()
}

func validateSearch(ps *problems, s SearchConfig) {
	switch s.Provider {
	case SearchProviderNone, SearchProviderLocal:
	case SearchProviderAlgolia:
		if s.Options == nil {
			ps.add("themeConfig.search.options", "required by the algolia provider")

			return
		}

		if s.Options.AppID == "" {
			ps.add("themeConfig.search.options.appId", "must not be empty")
		}

		if s.Options.APIKey == "" {
			ps.add("themeConfig.search.options.apiKey", "must not be empty")
		}

		if s.Options.IndexName == "" {
			ps.add("themeConfig.search.options.indexName", "must not be empty")
		}
	default:
		ps.add("themeConfig.search.provider", "unknown provider %q", s.Provider)
	}
}

func checkInternalLink(ps *problems, p string, link string) bool {
	u, err := url.Parse(link)

	switch {
	case link == "":
		ps.add(p, "must not be empty")
	case err != nil:
		ps.add(p, "%q is not a valid link: %v", link, err)
	case isExternalURL(u):
		ps.add(p, "%q must be a site path, not an external URL", link)
	case !strings.HasPrefix(link, "/"):
		ps.add(p, "%q must start with a slash", link)
	case cleanPath(u.Path) != u.Path:
		ps.add(p, "%q must not contain empty, \".\" or \"..\" segments", link)
	default:
		return true
	}

	return false
}

func checkExternalLink(ps *problems, p string, link string) {
	if !strings.HasPrefix(link, "https://") && !strings.HasPrefix(link, "http://") {
		ps.add(p, "%q must be an absolute http(s) URL", link)
	}
}

// InternalLinks returns the distinct site links of the nav and sidebar in
// the order they first appear.
func (c SiteConfig) InternalLinks() []string {
	var (
		links []string
		seen  = make(map[string]bool)
	)

	add := func(l string) {
		if l == "" || IsExternal(l) || seen[l] {
			return
		}

		seen[l] = true

		links = append(links, l)
	}

	for _, n := range c.ThemeConfig.Nav {
		add(n.Link)
	}

	for _, key := range c.sortedSidebarKeys() {
		for _, g := range c.ThemeConfig.Sidebar[key] {
			for _, item := range g.Items {
				add(item.Link)
			}
		}
	}

	return links
}

// SourceFiles returns the candidate markdown files, relative to the content
// root, that a site link can be generated from.
func SourceFiles(link string) []string {
	p := strings.TrimPrefix(pagePath(link), "/")

	if p == "" || strings.HasSuffix(p, "/") {
		return []string{path.Join(p, "index.md")}
	}

	return []string{p + ".md", path.Join(p, "index.md")}
}

// CheckPages verifies that every site link of the configuration has a
// markdown source in fsys and that every sidebar key is a directory.
func CheckPages(ctx context.Context, fsys fs.FS, conf SiteConfig) error {
	var (
		mu sync.Mutex
		ps problems
	)

	report := func(p string, format string, a ...any) {
		mu.Lock()
		defer mu.Unlock()

		ps.add(p, format, a...)
	}

	for _, key := range conf.sortedSidebarKeys() {
		dir := strings.Trim(key, "/")
		if dir == "" {
			continue
		}

		info, err := fs.Stat(fsys, dir)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			report(key, "sidebar directory %q does not exist", dir)
		case err != nil:
			return fmt.Errorf("stat %q: %w", dir, err)
		case !info.IsDir():
			report(key, "sidebar path %q is not a directory", dir)
		}
	}

	jobs := make(chan string)

	grp, gCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		defer close(jobs)

		for _, link := range conf.InternalLinks() {
			select {
			case jobs <- link:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}

		return nil
	})

	for range 8 {
		grp.Go(func() error {
			for link := range jobs {
				ok, err := pageExists(fsys, link)
				if err != nil {
					return fmt.Errorf("check %q: %w", link, err)
				}

				if !ok {
					report(link, "no page at %s",
						strings.Join(SourceFiles(link), " or "))
				}
			}

			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return fmt.Errorf("check pages: %w", err)
	}

	slices.SortFunc(ps, func(a, b Problem) int {
		return strings.Compare(a.Path, b.Path)
	})

	return ps.err()
}

func pageExists(fsys fs.FS, link string) (bool, error) {
	for _, name := range SourceFiles(link) {
		info, err := fs.Stat(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return false, err
		}

		if !info.IsDir() {
			return true, nil
		}
	}

	return false, nil
}
