package wpgraphql

import (
	"context"

	"github.com/gocipe/wpgraphql/store"
)

func menuEntity(r *Registry) entity {
	return entity{
		name:        "Menu",
		description: "A navigation menu, stored as a term of the nav_menu taxonomy",
		node:        true,
		fields: func() []field {
			return []field{
				{name: "group", typ: r.StringType(), description: "The term_group column"},
				{name: "id", typ: r.NonNull(r.IDType()), description: "The term_id column"},
				{name: "items", typ: r.ListOf(r.MenuItem()), description: "Items of the menu in menu order"},
				{name: "name", typ: r.StringType()},
				{name: "slug", typ: r.StringType()},
			}
		},
		resolvers: resolverTable{
			"group": text("term_group"),
			"id":    column("term_id"),
			"items": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.list(ctx, store.KindMenuItem, store.Filter{MenuID: store.Int64Ptr(rec.Int("term_id"))})
			},
		},
	}
}

func menuItemEntity(r *Registry) entity {
	return entity{
		name:        "MenuItem",
		description: "An entry of a navigation menu",
		node:        true,
		fields: func() []field {
			return []field{
				{name: "id", typ: r.NonNull(r.IDType())},
				{name: "object", typ: r.StringType(), description: "Kind of the linked object, such as page or category"},
				{name: "object_id", typ: r.IDType(), description: "Id of the linked object"},
				{name: "target", typ: r.StringType(), description: "Link target attribute"},
				{name: "title", typ: r.StringType(), description: "Label of the item, defaulting to the linked object's title"},
				{name: "type", typ: r.StringType(), description: "Item type, such as post_type or custom"},
				{name: "url", typ: r.StringType(), description: "Link of the item, defaulting to the linked object's url"},
				{name: "xfn", typ: r.StringType(), description: "Link relationship"},
			}
		},
		resolvers: resolverTable{
			"id":        column("ID"),
			"object":    column("menu_item_object"),
			"object_id": column("menu_item_object_id"),
			"target":    column("menu_item_target"),
			"title": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.linkedValue(ctx, rec, "post_title", "post_title")
			},
			"type": column("menu_item_type"),
			"url": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.linkedValue(ctx, rec, "menu_item_url", "guid")
			},
			"xfn": column("menu_item_xfn"),
		},
	}
}

//linkedValue returns key of a menu item, falling back to linkedKey of the post it links to
func (r *Registry) linkedValue(ctx context.Context, item *store.Record, key, linkedKey string) (interface{}, error) {
	if v := item.String(key); v != "" {
		return v, nil
	}
	linked, err := r.fetchRef(ctx, store.KindPost, item.Int("menu_item_object_id"))
	if err != nil || linked == nil {
		return nil, err
	}
	return linked.(*store.Record).String(linkedKey), nil
}

func menuLocationEntity(r *Registry) entity {
	return entity{
		name:        "MenuLocation",
		description: "A place in the theme where a menu can be displayed",
		fields: func() []field {
			return []field{
				{name: "active_menu", typ: r.Menu(), description: "The menu assigned to the location"},
				{name: "name", typ: r.StringType(), description: "Description of the location"},
				{name: "slug", typ: r.StringType()},
			}
		},
		resolvers: resolverTable{
			"active_menu": func(ctx context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return r.fetchRef(ctx, store.KindMenu, rec.Int("menu_id"))
			},
		},
	}
}
