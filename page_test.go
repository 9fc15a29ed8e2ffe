package lighthousedocs_test

import (
	"testing"

	lighthousedocs "github.com/light-speak/lighthouse-docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicPath(t *testing.T) {
	cases := []struct {
		Base string
		Link string
		Want string
	}{
		{"/lighthouse/", "/guide/getting-started", "/lighthouse/guide/getting-started"},
		{"/lighthouse/", "/", "/lighthouse/"},
		{"/lighthouse/", "/guide/", "/lighthouse/guide/"},
		{"/lighthouse", "/schema/basics#directives", "/lighthouse/schema/basics#directives"},
		{"/", "/features/queue", "/features/queue"},
		{"", "/features/queue", "/features/queue"},
		{"/lighthouse/", "https://github.com/light-speak/lighthouse", "https://github.com/light-speak/lighthouse"},
		{"/lighthouse/", "//cdn.example.com/x.js", "//cdn.example.com/x.js"},
		{"/lighthouse/", "/guide/./cli", "/lighthouse/guide/cli"},
		{"/lighthouse/", "/guide/../../x", "/lighthouse/x"},
		{"/lighthouse/", "/guide/../", "/lighthouse/"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.Want, lighthousedocs.PublicPath(tc.Base, tc.Link),
			"%q + %q", tc.Base, tc.Link)
	}
}

func TestIsExternal(t *testing.T) {
	assert.True(t, lighthousedocs.IsExternal("https://github.com/light-speak/lighthouse"))
	assert.True(t, lighthousedocs.IsExternal("//cdn.example.com/x.js"))
	assert.True(t, lighthousedocs.IsExternal("mailto:docs@example.com"))
	assert.False(t, lighthousedocs.IsExternal("/guide/cli"))
	assert.False(t, lighthousedocs.IsExternal("guide/cli"))
}

func TestSectionRoot(t *testing.T) {
	cases := map[string]string{
		"/guide/getting-started": "/guide/",
		"/guide/":                "/guide/",
		"/features/a/b":          "/features/",
		"/about":                 "/",
		"/":                      "/",
	}

	for link, want := range cases {
		assert.Equal(t, want, lighthousedocs.SectionRoot(link), link)
	}
}

func TestSidebarFor(t *testing.T) {
	conf := lighthousedocs.Default()

	menu := conf.SidebarFor("/features/queue")
	require.Len(t, menu, 2)

	assert.Equal(t, "核心功能", menu[0].Title)
	assert.False(t, menu[0].HasActive())

	assert.Equal(t, "扩展功能", menu[1].Title)
	assert.True(t, menu[1].HasActive())
	require.Len(t, menu[1].Children, 5)

	queue := menu[1].Children[0]
	assert.Equal(t, "异步任务队列", queue.Title)
	assert.Equal(t, "/lighthouse/features/queue", queue.HRef)
	assert.True(t, queue.Active)

	assert.Nil(t, conf.SidebarFor("/about"))
}

func TestSidebarForLongestPrefix(t *testing.T) {
	conf := lighthousedocs.Default()
	conf.ThemeConfig.Sidebar["/guide/advanced/"] = []lighthousedocs.SidebarGroup{
		{
			Text: "Advanced",
			Items: []lighthousedocs.SidebarItem{
				{Text: "Plugins", Link: "/guide/advanced/plugins"},
			},
		},
	}

	menu := conf.SidebarFor("/guide/advanced/plugins.md")
	require.Len(t, menu, 1)
	assert.Equal(t, "Advanced", menu[0].Title)
	assert.True(t, menu[0].Children[0].Active)

	menu = conf.SidebarFor("/guide/cli")
	require.Len(t, menu, 1)
	assert.Equal(t, "入门", menu[0].Title)
}

func TestNavMenu(t *testing.T) {
	conf := lighthousedocs.Default()

	menu := conf.NavMenu("/features/queue")
	require.Len(t, menu, 4)

	assert.False(t, menu[0].Active)
	assert.False(t, menu[1].Active)
	assert.True(t, menu[2].Active)
	assert.Equal(t, "/lighthouse/features/database", menu[2].HRef)
	assert.Equal(t, "https://github.com/light-speak/lighthouse", menu[3].HRef)
	assert.False(t, menu[3].Active)
}

func TestPrevNext(t *testing.T) {
	conf := lighthousedocs.Default()

	first := conf.PrevNext("/guide/getting-started")
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, lighthousedocs.PageLink{
		Label: "下一页",
		Title: "CLI 命令",
		HRef:  "/lighthouse/guide/cli",
	}, *first.Next)

	// Reading order continues across groups.
	health := conf.PrevNext("/features/health")
	require.NotNil(t, health.Prev)
	require.NotNil(t, health.Next)
	assert.Equal(t, "上一页", health.Prev.Label)
	assert.Equal(t, "中间件与认证", health.Prev.Title)
	assert.Equal(t, "/lighthouse/features/queue", health.Next.HRef)

	last := conf.PrevNext("/features/metrics")
	assert.NotNil(t, last.Prev)
	assert.Nil(t, last.Next)

	none := conf.PrevNext("/features/unknown")
	assert.Nil(t, none.Prev)
	assert.Nil(t, none.Next)
}
