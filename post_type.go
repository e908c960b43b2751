package wpgraphql

func postTypeEntity(r *Registry) entity {
	flag := func(name string) field {
		return field{name: name, typ: r.BooleanType(), resolve: boolColumn(name)}
	}

	return entity{
		name:        "PostType",
		description: "A registered content type",
		fields: func() []field {
			return []field{
				flag("can_export"),
				flag("delete_with_user"),
				{name: "description", typ: r.StringType()},
				flag("exclude_from_search"),
				flag("has_archive"),
				flag("hierarchical"),
				{name: "label", typ: r.StringType()},
				{name: "menu_icon", typ: r.StringType()},
				{name: "menu_position", typ: r.IntType(), resolve: intColumn("menu_position")},
				{name: "name", typ: r.StringType(), description: "The registered name"},
				flag("public"),
				flag("publicly_queryable"),
				{name: "rest_base", typ: r.StringType()},
				{name: "rest_controller_class", typ: r.StringType()},
				flag("show_in_admin_bar"),
				flag("show_in_menu"),
				flag("show_in_nav_menus"),
				flag("show_in_rest"),
				flag("show_ui"),
				{name: "taxonomies", typ: r.ListOf(r.StringType()), resolve: stringsColumn("taxonomies")},
			}
		},
	}
}
