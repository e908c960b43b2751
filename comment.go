package wpgraphql

import (
	"context"

	"github.com/gocipe/wpgraphql/store"
)

func commentEntity(r *Registry) entity {
	return entity{
		name:        "Comment",
		description: "User created context attached to a post or to another comment",
		node:        true,
		fields: func() []field {
			return []field{
				{name: "agent", typ: r.StringType(), description: "User agent used to post the comment"},
				{name: "approved", typ: r.StringType(), description: "Approval status"},
				{name: "author", typ: r.User(), description: "The registered user who wrote the comment"},
				{name: "author_ip", typ: r.StringType()},
				{name: "children", typ: r.ListOf(r.Comment()), args: r.pageArgs(), description: "Replies to the comment"},
				{name: "content", typ: r.StringType()},
				{name: "date", typ: r.StringType(), description: "Date in local time"},
				{name: "date_gmt", typ: r.StringType(), description: "Date in GMT"},
				{name: "id", typ: r.NonNull(r.IDType()), description: "The comment_ID column"},
				{name: "karma", typ: r.IntType()},
				{name: "parent", typ: r.Comment(), description: "The comment this one replies to"},
				{name: "post", typ: r.Post(), description: "The commented post"},
				{name: "type", typ: r.StringType()},
			}
		},
		resolvers: resolverTable{
			"agent":    column("comment_agent"),
			"approved": text("comment_approved"),
			"author": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.fetchRef(ctx, store.KindUser, rec.Int("user_id"))
			},
			"author_ip": column("comment_author_IP"),
			"children": r.listing(store.KindComment, func(rec *store.Record, f *store.Filter) {
				f.Parent = store.Int64Ptr(rec.Int("comment_ID"))
			}),
			"content":  column("comment_content"),
			"date":     text("comment_date"),
			"date_gmt": text("comment_date_gmt"),
			"id":       column("comment_ID"),
			"karma":    intColumn("comment_karma"),
			"parent": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.fetchRef(ctx, store.KindComment, rec.Int("comment_parent"))
			},
			"post": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.fetchRef(ctx, store.KindPost, rec.Int("comment_post_ID"))
			},
			"type": column("comment_type"),
		},
	}
}
