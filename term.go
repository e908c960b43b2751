package wpgraphql

import (
	"github.com/gocipe/wpgraphql/store"
)

func termEntity(r *Registry) entity {
	return entity{
		name:        "Term",
		description: "A named group within a taxonomy, such as a category or a tag",
		node:        true,
		fields: func() []field {
			return []field{
				{name: "children", typ: r.ListOf(r.Term()), args: r.pageArgsWithDefaults(0, 0), description: "Terms whose parent is this term"},
				{name: "count", typ: r.IntType(), description: "Number of objects assigned to the term"},
				{name: "description", typ: r.StringType()},
				{name: "group", typ: r.StringType(), description: "The term_group column"},
				{name: "id", typ: r.NonNull(r.IDType()), description: "The term_id column"},
				{name: "name", typ: r.StringType(), description: "Display name"},
				{name: "parent", typ: r.IDType(), description: "Id of the parent term"},
				{name: "slug", typ: r.StringType()},
				{name: "taxonomy", typ: r.StringType(), description: "Name of the taxonomy the term belongs to"},
				{name: "taxonomy_id", typ: r.IDType(), description: "The term_taxonomy_id column"},
			}
		},
		resolvers: resolverTable{
			"children": r.listing(store.KindTerm, func(rec *store.Record, f *store.Filter) {
				f.Taxonomy = rec.String("taxonomy")
				f.Parent = store.Int64Ptr(rec.Int("term_id"))
			}),
			"count":       intColumn("count"),
			"group":       text("term_group"),
			"id":          column("term_id"),
			"taxonomy_id": column("term_taxonomy_id"),
		},
	}
}

func taxonomyEntity(r *Registry) entity {
	return entity{
		name:        "Taxonomy",
		description: "A grouping of content made of terms",
		fields: func() []field {
			return []field{
				{name: "description", typ: r.StringType()},
				{name: "hierarchical", typ: r.BooleanType(), description: "Whether terms may have parents"},
				{name: "name", typ: r.StringType(), description: "Display label"},
				{name: "show_cloud", typ: r.BooleanType(), description: "Whether the taxonomy shows in tag clouds"},
				{name: "slug", typ: r.StringType(), description: "Registered name"},
				{name: "terms", typ: r.ListOf(r.Term()), args: r.pageArgs(), description: "Terms of the taxonomy"},
			}
		},
		resolvers: resolverTable{
			"hierarchical": boolColumn("hierarchical"),
			"name":         column("label"),
			"show_cloud":   boolColumn("show_tagcloud"),
			"slug":         column("name"),
			"terms": r.listing(store.KindTerm, func(rec *store.Record, f *store.Filter) {
				f.Taxonomy = rec.String("name")
			}),
		},
	}
}
