package wpgraphql

import (
	"context"

	"github.com/gocipe/wpgraphql/store"
)

//postEntity describes Post and every runtime content type, which share its fields
func postEntity(r *Registry, name, description string) entity {
	return entity{
		name:        name,
		description: description,
		node:        true,
		fields: func() []field {
			return []field{
				{name: "author", typ: r.User(), description: "The author of the post"},
				{name: "comment_count", typ: r.IntType(), description: "Number of comments on the post"},
				{name: "comment_status", typ: r.StringType(), description: "Whether comments are open"},
				{name: "comments", typ: r.ListOf(r.Comment()), args: r.pageArgs(), description: "Comments on the post"},
				{name: "content", typ: r.StringType(), description: "The post content"},
				{name: "date", typ: r.StringType(), description: "Publication date in local time"},
				{name: "date_gmt", typ: r.StringType(), description: "Publication date in GMT"},
				{name: "excerpt", typ: r.StringType(), description: "The post excerpt"},
				{name: "guid", typ: r.StringType(), description: "Global unique identifier of the post"},
				{name: "id", typ: r.NonNull(r.IDType()), description: "The ID column of wp_posts"},
				{name: "menu_order", typ: r.IntType(), description: "Sort order among siblings"},
				{name: "mime_type", typ: r.StringType(), description: "Mime type of attachments"},
				{name: "modified", typ: r.StringType(), description: "Last modification date in local time"},
				{name: "modified_gmt", typ: r.StringType(), description: "Last modification date in GMT"},
				{name: "parent", typ: r.IntType(), description: "ID of the parent post"},
				{name: "ping_status", typ: r.StringType(), description: "Whether pings are open"},
				{name: "pinged", typ: r.StringType(), description: "URLs already pinged"},
				{name: "post_status", typ: r.StringType(), description: "Publication status"},
				{name: "slug", typ: r.StringType(), description: "The post_name column"},
				{name: "title", typ: r.StringType(), description: "The post title"},
				{name: "to_ping", typ: r.StringType(), description: "URLs queued to be pinged"},
				{name: "type", typ: r.StringType(), description: "The registered content type name"},
			}
		},
		resolvers: resolverTable{
			"author": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.fetchRef(ctx, store.KindUser, rec.Int("post_author"))
			},
			"comment_count": intColumn("comment_count"),
			"comments": r.listing(store.KindComment, func(rec *store.Record, f *store.Filter) {
				f.PostID = store.Int64Ptr(rec.Int("ID"))
			}),
			"content":      column("post_content"),
			"date":         text("post_date"),
			"date_gmt":     text("post_date_gmt"),
			"excerpt":      column("post_excerpt"),
			"id":           column("ID"),
			"menu_order":   intColumn("menu_order"),
			"mime_type":    column("post_mime_type"),
			"modified":     text("post_modified"),
			"modified_gmt": text("post_modified_gmt"),
			"parent":       intColumn("post_parent"),
			"slug":         column("post_name"),
			"title":        column("post_title"),
			"type":         column("post_type"),
		},
	}
}
