package lighthousedocs

// Default returns the descriptor of the Lighthouse documentation site. Every
// call builds a new value, callers are free to modify what they get.
func Default() SiteConfig {
	return SiteConfig{
		Title:       "Lighthouse",
		Description: "A Go GraphQL Framework",
		Base:        "/lighthouse/",
		Head: []HeadTag{
			{
				Tag: "link",
				Attrs: map[string]string{
					"rel":  "icon",
					"type": "image/svg+xml",
					"href": "/lighthouse/logo.svg",
				},
			},
		},
		ThemeConfig: ThemeConfig{
			Logo: "/logo.svg",
			Nav: []NavItem{
				{Text: "指南", Link: "/guide/getting-started"},
				{Text: "Schema", Link: "/schema/basics"},
				{Text: "功能", Link: "/features/database"},
				{Text: "GitHub", Link: "https://github.com/light-speak/lighthouse"},
			},
			Sidebar: map[string][]SidebarGroup{
				"/guide/": {
					{
						Text: "入门",
						Items: []SidebarItem{
							{Text: "快速开始", Link: "/guide/getting-started"},
							{Text: "CLI 命令", Link: "/guide/cli"},
							{Text: "项目结构", Link: "/guide/project-structure"},
						},
					},
				},
				"/schema/": {
					{
						Text: "GraphQL Schema",
						Items: []SidebarItem{
							{Text: "基础语法", Link: "/schema/basics"},
							{Text: "指令 Directives", Link: "/schema/directives"},
							{Text: "Resolver 编写", Link: "/schema/resolver"},
							{Text: "DataLoader", Link: "/schema/dataloader"},
						},
					},
				},
				"/features/": {
					{
						Text: "核心功能",
						Items: []SidebarItem{
							{Text: "数据库", Link: "/features/database"},
							{Text: "数据库迁移", Link: "/features/migration"},
							{Text: "中间件与认证", Link: "/features/auth"},
							{Text: "健康检查", Link: "/features/health"},
						},
					},
					{
						Text: "扩展功能",
						Items: []SidebarItem{
							{Text: "异步任务队列", Link: "/features/queue"},
							{Text: "消息系统", Link: "/features/messaging"},
							{Text: "文件存储", Link: "/features/storage"},
							{Text: "实时推送", Link: "/features/subscription"},
							{Text: "监控与指标", Link: "/features/metrics"},
						},
					},
				},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/light-speak/lighthouse"},
			},
			Footer: Footer{
				Message:   "Released under the MIT License.",
				Copyright: "Copyright © 2024 Light Speak",
			},
			Search: SearchConfig{
				Provider: SearchProviderLocal,
			},
			Outline: OutlineConfig{
				Level: OutlineLevel{2, 3},
				Label: "目录",
			},
			DocFooter: DocFooter{
				Prev: "上一页",
				Next: "下一页",
			},
			LastUpdated: LastUpdatedConfig{
				Text: "最后更新于",
			},
		},
	}
}
