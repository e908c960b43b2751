package wpgraphql

func themeEntity(r *Registry) entity {
	return entity{
		name:        "Theme",
		description: "An installed theme",
		fields: func() []field {
			return []field{
				{name: "author", typ: r.StringType()},
				{name: "author_uri", typ: r.StringType()},
				{name: "description", typ: r.StringType()},
				{name: "name", typ: r.StringType()},
				{name: "screenshot", typ: r.StringType(), description: "URL of the theme screenshot"},
				{name: "slug", typ: r.StringType(), description: "The stylesheet directory name"},
				{name: "tags", typ: r.ListOf(r.StringType())},
				{name: "theme_uri", typ: r.StringType()},
				{name: "version", typ: r.StringType()},
			}
		},
		resolvers: resolverTable{
			"author":      column("Author"),
			"author_uri":  column("AuthorURI"),
			"description": column("Description"),
			"name":        column("Name"),
			"slug":        column("stylesheet"),
			"tags":        stringsColumn("Tags"),
			"theme_uri":   column("ThemeURI"),
			"version":     text("Version"),
		},
	}
}

func pluginEntity(r *Registry) entity {
	return entity{
		name:        "Plugin",
		description: "An installed plugin",
		fields: func() []field {
			return []field{
				{name: "author", typ: r.StringType()},
				{name: "author_uri", typ: r.StringType()},
				{name: "description", typ: r.StringType()},
				{name: "name", typ: r.StringType()},
				{name: "path", typ: r.StringType(), description: "Path of the main plugin file"},
				{name: "plugin_uri", typ: r.StringType()},
				{name: "version", typ: r.StringType()},
			}
		},
		resolvers: resolverTable{
			"author":      column("Author"),
			"author_uri":  column("AuthorURI"),
			"description": column("Description"),
			"name":        column("Name"),
			"plugin_uri":  column("PluginURI"),
			"version":     text("Version"),
		},
	}
}
