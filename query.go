package wpgraphql

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql/store"
)

//HelloMessage is returned by the hello field
const HelloMessage = "Welcome to WP GraphQL, I hope that you will enjoy this adventure!"

func newQueryType(r *Registry) *graphql.Object {
	return r.object(entity{
		name:        "Query",
		description: "The root entry point into the graph",
		fields: func() []field {
			fields := r.staticQueryFields()
			return append(fields, r.dynamicQueryFields(fields)...)
		},
	})
}

func (r *Registry) idArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: r.NonNull(r.IDType())},
	}
}

func (r *Registry) nameArg(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		name: &graphql.ArgumentConfig{Type: r.NonNull(r.StringType())},
	}
}

func (r *Registry) staticQueryFields() []field {
	return []field{
		{name: "comment", typ: r.Comment(), args: r.idArgs(), description: "Returns a comment by id",
			resolve: r.single(store.KindComment, "id")},
		{name: "comments", typ: r.ListOf(r.Comment()), args: r.pageArgs(), description: "Returns comments based on collection args",
			resolve: r.listing(store.KindComment, nil)},
		{name: "hello", typ: r.StringType(), description: "A greeting, useful to check the endpoint",
			resolve: func(context.Context, *store.Record, map[string]interface{}) (interface{}, error) {
				return HelloMessage, nil
			}},
		{name: "menu", typ: r.Menu(), description: "Returns a menu by id, name or slug",
			args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: r.IDType()},
				"name": &graphql.ArgumentConfig{Type: r.StringType()},
				"slug": &graphql.ArgumentConfig{Type: r.StringType()},
			},
			resolve: r.resolveMenu},
		{name: "menuItem", typ: r.MenuItem(), args: r.idArgs(), description: "Returns a menu item by id",
			resolve: r.resolveMenuItem},
		{name: "menuLocation", typ: r.MenuLocation(), args: r.nameArg("slug"), description: "Returns a menu location by slug",
			resolve: r.named(store.KindMenuLocation, "slug")},
		{name: "menuLocations", typ: r.ListOf(r.MenuLocation()), args: r.pageArgs(), description: "Returns the registered menu locations",
			resolve: r.listing(store.KindMenuLocation, nil)},
		{name: "node", typ: r.Node(), description: "Returns any Node by kind and id",
			args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: r.NonNull(r.IDType())},
				"kind": &graphql.ArgumentConfig{Type: r.NonNull(r.NodeKind())},
			},
			resolve: func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
				kind, _ := args["kind"].(string)
				id, _ := args["id"].(string)
				return r.fetch(ctx, store.Kind(kind), id)
			}},
		{name: "plugin", typ: r.Plugin(), args: r.nameArg("slug"), description: "Returns a plugin by slug",
			resolve: r.named(store.KindPlugin, "slug")},
		{name: "plugins", typ: r.ListOf(r.Plugin()), args: r.pageArgs(), description: "Returns installed plugins",
			resolve: r.listing(store.KindPlugin, nil)},
		{name: "post", typ: r.Post(), args: r.idArgs(), description: "Returns a post by id",
			resolve: r.single(store.KindPost, "id")},
		{name: "postType", typ: r.PostType(), args: r.nameArg("name"), description: "Returns a registered content type",
			resolve: r.named(store.KindPostType, "name")},
		{name: "postTypes", typ: r.ListOf(r.PostType()), args: r.pageArgs(), description: "Returns registered content types",
			resolve: r.listing(store.KindPostType, nil)},
		{name: "posts", typ: r.ListOf(r.Post()), args: PostQueryArgs(r), description: "Returns posts based on collection args",
			resolve: func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
				filter, err := postFilter(args)
				if err != nil {
					return nil, err
				}
				return r.list(ctx, store.KindPost, filter)
			}},
		{name: "taxonomies", typ: r.ListOf(r.Taxonomy()), args: r.pageArgs(), description: "Returns registered taxonomies",
			resolve: r.listing(store.KindTaxonomy, nil)},
		{name: "taxonomy", typ: r.Taxonomy(), args: r.nameArg("name"), description: "Returns a taxonomy by name",
			resolve: r.named(store.KindTaxonomy, "name")},
		{name: "term", typ: r.Term(), args: r.idArgs(), description: "Returns a term by id",
			resolve: r.single(store.KindTerm, "id")},
		{name: "terms", typ: r.ListOf(r.Term()), description: "Returns terms based on collection args",
			args: func() graphql.FieldConfigArgument {
				args := r.pageArgs()
				args["taxonomy"] = &graphql.ArgumentConfig{Type: r.StringType(), Description: "Restricts terms to a taxonomy"}
				return args
			}(),
			resolve: func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
				filter, err := paginate(args)
				if err != nil {
					return nil, err
				}
				filter.Taxonomy, _ = args["taxonomy"].(string)
				return r.list(ctx, store.KindTerm, filter)
			}},
		{name: "theme", typ: r.Theme(), args: r.nameArg("slug"), description: "Returns a theme by slug",
			resolve: r.named(store.KindTheme, "slug")},
		{name: "themes", typ: r.ListOf(r.Theme()), args: r.pageArgs(), description: "Returns installed themes",
			resolve: r.listing(store.KindTheme, nil)},
		{name: "user", typ: r.User(), args: r.idArgs(), description: "Returns a user by id",
			resolve: r.single(store.KindUser, "id")},
		{name: "users", typ: r.ListOf(r.User()), args: r.pageArgs(), description: "Returns users ordered by id",
			resolve: r.listing(store.KindUser, nil)},
		{name: "viewer", typ: r.User(), description: "The user making the request",
			resolve: func(ctx context.Context, _ *store.Record, _ map[string]interface{}) (interface{}, error) {
				if app := FromContext(ctx); app != nil && app.Viewer != nil {
					return app.Viewer, nil
				}
				return nil, nil
			}},
	}
}

//dynamicQueryFields adds a singular and a plural field per configured content type
func (r *Registry) dynamicQueryFields(static []field) []field {
	taken := make(map[string]bool, len(static))
	for _, f := range static {
		taken[f.name] = true
	}

	var fields []field
	for _, pt := range r.config.PostTypes {
		if pt.RegisteredName == "post" {
			continue
		}
		t, err := r.GetDynamic(pt.RegisteredName)
		if err != nil {
			continue
		}
		for _, name := range []string{pt.GraphQLSingularName, pt.GraphQLPluralName} {
			if taken[name] {
				r.logger.Warn("content type field name is already taken",
					zap.String("post_type", pt.RegisteredName), zap.String("field", name))
			}
		}

		if !taken[pt.GraphQLSingularName] {
			taken[pt.GraphQLSingularName] = true
			fields = append(fields, field{
				name:        pt.GraphQLSingularName,
				typ:         t,
				args:        r.idArgs(),
				description: fmt.Sprintf("Returns a %s by id", pt.RegisteredName),
				resolve:     r.postOfType(pt.RegisteredName),
			})
		}
		if !taken[pt.GraphQLPluralName] {
			taken[pt.GraphQLPluralName] = true
			registered := pt.RegisteredName
			fields = append(fields, field{
				name:        pt.GraphQLPluralName,
				typ:         r.ListOf(t),
				args:        r.pageArgs(),
				description: fmt.Sprintf("Returns %s collections", pt.RegisteredName),
				resolve: r.listing(store.KindPost, func(_ *store.Record, f *store.Filter) {
					f.PostType = []string{registered}
				}),
			})
		}
	}
	return fields
}

//postOfType loads a post by id, returning it only when its post_type is postType
func (r *Registry) postOfType(postType string) resolveFn {
	return func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
		id, _ := args["id"].(string)
		v, err := r.fetch(ctx, store.KindPost, id)
		if err != nil || v == nil {
			return nil, err
		}
		if v.(*store.Record).String("post_type") != postType {
			return nil, nil
		}
		return v, nil
	}
}

func (r *Registry) resolveMenu(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
	if id, ok := args["id"].(string); ok && id != "" {
		return r.fetch(ctx, store.KindMenu, id)
	}
	for _, arg := range []string{"name", "slug"} {
		if name, ok := args[arg].(string); ok && name != "" {
			return r.fetchByName(ctx, store.KindMenu, name)
		}
	}
	return nil, nil
}

func (r *Registry) resolveMenuItem(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
	id, _ := args["id"].(string)
	v, err := r.fetch(ctx, store.KindMenuItem, id)
	if err != nil || v == nil {
		return nil, err
	}
	if postType := v.(*store.Record).String("post_type"); postType != "" && postType != "nav_menu_item" {
		return nil, nil
	}
	return v, nil
}
