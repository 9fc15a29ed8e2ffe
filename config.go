package lighthousedocs

import (
	"maps"
	"slices"
)

// SiteConfig describes the documentation site: metadata, the tags injected
// into every page head and the theme configuration that drives navigation.
type SiteConfig struct {
	Title       string      `json:"title" yaml:"title" koanf:"title"`
	Description string      `json:"description" yaml:"description" koanf:"description"`
	Base        string      `json:"base" yaml:"base" koanf:"base"`
	Head        []HeadTag   `json:"head,omitempty" yaml:"head,omitempty" koanf:"head"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig" koanf:"themeConfig"`
}

type ThemeConfig struct {
	Logo        string                    `json:"logo,omitempty" yaml:"logo,omitempty" koanf:"logo"`
	Nav         []NavItem                 `json:"nav,omitempty" yaml:"nav,omitempty" koanf:"nav"`
	Sidebar     map[string][]SidebarGroup `json:"sidebar,omitempty" yaml:"sidebar,omitempty" koanf:"sidebar"`
	SocialLinks []SocialLink              `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty" koanf:"socialLinks"`
	Footer      Footer                    `json:"footer" yaml:"footer" koanf:"footer"`
	Search      SearchConfig              `json:"search" yaml:"search" koanf:"search"`
	Outline     OutlineConfig             `json:"outline" yaml:"outline" koanf:"outline"`
	DocFooter   DocFooter                 `json:"docFooter" yaml:"docFooter" koanf:"docFooter"`
	LastUpdated LastUpdatedConfig         `json:"lastUpdated" yaml:"lastUpdated" koanf:"lastUpdated"`
}

type NavItem struct {
	Text string `json:"text" yaml:"text" koanf:"text"`
	Link string `json:"link" yaml:"link" koanf:"link"`
}

// SidebarGroup is a titled, ordered list of links shown in the sidebar of
// every page below the path prefix the group is registered under.
type SidebarGroup struct {
	Text  string        `json:"text" yaml:"text" koanf:"text"`
	Items []SidebarItem `json:"items" yaml:"items" koanf:"items"`
}

type SidebarItem struct {
	Text string `json:"text" yaml:"text" koanf:"text"`
	Link string `json:"link" yaml:"link" koanf:"link"`
}

type SocialLink struct {
	Icon string `json:"icon" yaml:"icon" koanf:"icon"`
	Link string `json:"link" yaml:"link" koanf:"link"`
}

type Footer struct {
	Message   string `json:"message,omitempty" yaml:"message,omitempty" koanf:"message"`
	Copyright string `json:"copyright,omitempty" yaml:"copyright,omitempty" koanf:"copyright"`
}

type OutlineConfig struct {
	Level OutlineLevel `json:"level" yaml:"level" koanf:"level"`
	Label string       `json:"label,omitempty" yaml:"label,omitempty" koanf:"label"`
}

// DocFooter holds the labels of the previous/next page controls.
type DocFooter struct {
	Prev string `json:"prev,omitempty" yaml:"prev,omitempty" koanf:"prev"`
	Next string `json:"next,omitempty" yaml:"next,omitempty" koanf:"next"`
}

type LastUpdatedConfig struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty" koanf:"text"`
}

// Clone returns a deep copy of the configuration.
func (c SiteConfig) Clone() SiteConfig {
	out := c

	if c.Head != nil {
		out.Head = make([]HeadTag, len(c.Head))

		for i, h := range c.Head {
			out.Head[i] = HeadTag{
				Tag:     h.Tag,
				Attrs:   maps.Clone(h.Attrs),
				Content: h.Content,
			}
		}
	}

	out.ThemeConfig.Nav = slices.Clone(c.ThemeConfig.Nav)
	out.ThemeConfig.SocialLinks = slices.Clone(c.ThemeConfig.SocialLinks)

	if c.ThemeConfig.Sidebar != nil {
		out.ThemeConfig.Sidebar = make(
			map[string][]SidebarGroup, len(c.ThemeConfig.Sidebar))

		for key, groups := range c.ThemeConfig.Sidebar {
			cg := make([]SidebarGroup, len(groups))

			for i, g := range groups {
				cg[i] = SidebarGroup{
					Text:  g.Text,
					Items: slices.Clone(g.Items),
				}
			}

			out.ThemeConfig.Sidebar[key] = cg
		}
	}

	if c.ThemeConfig.Search.Options != nil {
		opts := *c.ThemeConfig.Search.Options
		out.ThemeConfig.Search.Options = &opts
	}

	return out
}
