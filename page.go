package lighthousedocs

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

type MenuItem struct {
	Title    string
	HRef     string
	Active   bool
	Children []MenuItem
}

func (m MenuItem) HasActive() bool {
	for i := range m.Children {
		if m.Children[i].Active || m.Children[i].HasActive() {
			return true
		}
	}

	return false
}

// PageLink is one of the previous/next links at the bottom of a page.
type PageLink struct {
	Label string
	Title string
	HRef  string
}

type PageNeighbours struct {
	Prev *PageLink
	Next *PageLink
}

// IsExternal reports whether the link points outside of the site. Links
// with a scheme and protocol relative links ("//host/path") are external.
func IsExternal(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	return isExternalURL(u)
}

func isExternalURL(u *url.URL) bool {
	return u.Scheme != "" || u.Host != ""
}

// cleanPath resolves "." and ".." segments of an absolute path and keeps a
// trailing slash. The result never climbs above "/".
func cleanPath(p string) string {
	trailing := strings.HasSuffix(p, "/")

	p = path.Clean("/" + p)
	if trailing && p != "/" {
		p += "/"
	}

	return p
}

// PublicPath resolves a site link to the path it's served at under base.
// External links are returned unchanged.
func PublicPath(base string, link string) string {
	target, err := url.Parse(link)
	if err != nil || isExternalURL(target) {
		return link
	}

	rootPath := base
	if rootPath == "" {
		rootPath = "/"
	}

	if !strings.HasSuffix(rootPath, "/") {
		rootPath += "/"
	}

	rootURL := url.URL{Path: rootPath}

	p := rootURL.JoinPath(cleanPath(target.Path))

	p.RawQuery = target.RawQuery
	p.Fragment = target.Fragment

	return p.String()
}

// SectionRoot returns the top level directory a link belongs to, e.g.
// "/guide/" for "/guide/getting-started". Top level pages belong to "/".
func SectionRoot(link string) string {
	p := strings.TrimPrefix(pagePath(link), "/")

	first, _, nested := strings.Cut(p, "/")
	if !nested || first == "" {
		return "/"
	}

	return "/" + first + "/"
}

// pagePath normalises a page reference to the form used in links: leading
// slash, no dot segments, no query or fragment, no file extension and no
// trailing "index".
func pagePath(p string) string {
	p, _, _ = strings.Cut(p, "#")
	p, _, _ = strings.Cut(p, "?")

	p = cleanPath(p)

	p = strings.TrimSuffix(p, ".md")
	p = strings.TrimSuffix(p, ".html")

	if strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	}

	return p
}

// sidebarKey returns the sidebar key whose prefix is the longest match for
// the page, or false if no sidebar applies.
func (c SiteConfig) sidebarKey(page string) (string, bool) {
	page = pagePath(page)

	keys := make([]string, 0, len(c.ThemeConfig.Sidebar))

	for k := range c.ThemeConfig.Sidebar {
		if strings.HasPrefix(page, k) {
			keys = append(keys, k)
		}
	}

	if len(keys) == 0 {
		return "", false
	}

	sort.Slice(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})

	return keys[0], true
}

// SidebarFor returns the sidebar shown on the given page as a menu tree of
// groups and their items, with the item of the page marked as active.
func (c SiteConfig) SidebarFor(page string) []MenuItem {
	key, ok := c.sidebarKey(page)
	if !ok {
		return nil
	}

	current := pagePath(page)

	var menu []MenuItem

	for _, g := range c.ThemeConfig.Sidebar[key] {
		group := MenuItem{
			Title: g.Text,
		}

		for _, item := range g.Items {
			group.Children = append(group.Children, MenuItem{
				Title:  item.Text,
				HRef:   PublicPath(c.Base, item.Link),
				Active: pagePath(item.Link) == current,
			})
		}

		menu = append(menu, group)
	}

	return menu
}

// NavMenu returns the top navigation with the entry for the section of the
// given page marked as active.
func (c SiteConfig) NavMenu(page string) []MenuItem {
	section := SectionRoot(page)
	menu := make([]MenuItem, 0, len(c.ThemeConfig.Nav))

	var found bool

	for _, n := range c.ThemeConfig.Nav {
		item := MenuItem{
			Title: n.Text,
			HRef:  PublicPath(c.Base, n.Link),
		}

		if !found && !IsExternal(n.Link) && section != "/" &&
			SectionRoot(n.Link) == section {
			item.Active = true
			found = true
		}

		menu = append(menu, item)
	}

	return menu
}

// PrevNext returns the pages before and after the given page in the reading
// order of its sidebar.
func (c SiteConfig) PrevNext(page string) PageNeighbours {
	var n PageNeighbours

	key, ok := c.sidebarKey(page)
	if !ok {
		return n
	}

	var order []SidebarItem

	for _, g := range c.ThemeConfig.Sidebar[key] {
		order = append(order, g.Items...)
	}

	current := pagePath(page)

	for i, item := range order {
		if pagePath(item.Link) != current {
			continue
		}

		if i > 0 {
			n.Prev = &PageLink{
				Label: c.ThemeConfig.DocFooter.Prev,
				Title: order[i-1].Text,
				HRef:  PublicPath(c.Base, order[i-1].Link),
			}
		}

		if i < len(order)-1 {
			n.Next = &PageLink{
				Label: c.ThemeConfig.DocFooter.Next,
				Title: order[i+1].Text,
				HRef:  PublicPath(c.Base, order[i+1].Link),
			}
		}

		break
	}

	return n
}
