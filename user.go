package wpgraphql

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/gocipe/wpgraphql/store"
)

const (
	defaultAvatarSize = 96
	defaultLocale     = "en_US"
	iso8601           = "2006-01-02T15:04:05-07:00"
)

//wpRoles are the roles of a default installation, used to tell roles apart from capabilities
var wpRoles = map[string]bool{
	"administrator": true, "editor": true, "author": true, "contributor": true, "subscriber": true,
}

func userEntity(r *Registry) entity {
	return entity{
		name:        "User",
		description: "A registered user. Some fields are aliases for columns of wp_users.",
		node:        true,
		fields: func() []field {
			return []field{
				{name: "avatar", typ: r.Avatar(), description: "Avatar of the user in the requested size", args: avatarArgs(r)},
				{name: "cap_key", typ: r.StringType(), description: "User meta key holding capabilities, usually wp_capabilities"},
				{name: "capabilities", typ: r.ListOf(r.StringType()), description: "Capabilities granted to the user"},
				{name: "comments", typ: r.ListOf(r.Comment()), args: r.pageArgsWithDefaults(10, 0), description: "Comments written by the user"},
				{name: "description", typ: r.StringType()},
				{name: "email", typ: r.StringType()},
				{name: "extra_capabilities", typ: r.ListOf(r.StringType()), description: "Every capability key, granted or not"},
				{name: "first_name", typ: r.StringType()},
				{name: "id", typ: r.NonNull(r.IDType()), description: "The ID column of wp_users"},
				{name: "last_name", typ: r.StringType()},
				{name: "locale", typ: r.StringType(), description: "Preferred locale of the user"},
				{name: "name", typ: r.StringType(), description: "Display name"},
				{name: "nickname", typ: r.StringType()},
				{name: "posts", typ: r.ListOf(r.Post()), args: r.pageArgsWithDefaults(10, 0), description: "Posts authored by the user"},
				{name: "registered_date", typ: r.StringType(), description: "Registration date in ISO 8601"},
				{name: "roles", typ: r.ListOf(r.StringType())},
				{name: "slug", typ: r.StringType(), description: "The user_nicename column"},
				{name: "url", typ: r.StringType()},
				{name: "username", typ: r.StringType(), description: "The user_login column"},
			}
		},
		resolvers: resolverTable{
			"avatar": func(_ context.Context, rec *store.Record, args map[string]interface{}) (interface{}, error) {
				size, ok := args["size"].(int)
				if !ok || size <= 0 {
					size = defaultAvatarSize
				}
				return avatarFor(rec.String("user_email"), size), nil
			},
			"capabilities": func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				var caps []string
				for name, granted := range allcaps(rec) {
					if granted {
						caps = append(caps, name)
					}
				}
				sort.Strings(caps)
				return caps, nil
			},
			"comments": r.listing(store.KindComment, func(rec *store.Record, f *store.Filter) {
				f.UserID = store.Int64Ptr(rec.Int("ID"))
			}),
			"email": column("user_email"),
			"extra_capabilities": func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				caps := allcaps(rec)
				keys := make([]string, 0, len(caps))
				for name := range caps {
					keys = append(keys, name)
				}
				sort.Strings(keys)
				return keys, nil
			},
			"id": column("ID"),
			"locale": func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				if locale := rec.String("locale"); locale != "" {
					return locale, nil
				}
				return defaultLocale, nil
			},
			"name": column("display_name"),
			"posts": r.listing(store.KindPost, func(rec *store.Record, f *store.Filter) {
				f.Author = store.Int64Ptr(rec.Int("ID"))
			}),
			"registered_date": func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				return isoDate(rec.Get("user_registered")), nil
			},
			"roles": func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
				if roles := rec.Strings("roles"); roles != nil {
					return roles, nil
				}
				var roles []string
				for name, granted := range allcaps(rec) {
					if granted && wpRoles[name] {
						roles = append(roles, name)
					}
				}
				sort.Strings(roles)
				return roles, nil
			},
			"slug":     column("user_nicename"),
			"url":      column("user_url"),
			"username": column("user_login"),
		},
	}
}

//allcaps reads the capability map of a user record
func allcaps(rec *store.Record) map[string]bool {
	caps := make(map[string]bool)
	switch v := rec.Get("allcaps").(type) {
	case map[string]bool:
		for k, granted := range v {
			caps[k] = granted
		}
	case map[string]interface{}:
		for k, granted := range v {
			b, _ := granted.(bool)
			caps[k] = b
		}
	}
	return caps
}

//isoDate formats a stored datetime in ISO 8601, or returns nil when it cannot be read
func isoDate(v interface{}) interface{} {
	switch d := v.(type) {
	case time.Time:
		return d.Format(iso8601)
	case string:
		t, err := time.Parse("2006-01-02 15:04:05", d)
		if err != nil {
			return nil
		}
		return t.Format(iso8601)
	}
	return nil
}

func avatarArgs(r *Registry) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"size": &graphql.ArgumentConfig{
			Type:         r.IntType(),
			Description:  "Dimension of the avatar in pixels",
			DefaultValue: defaultAvatarSize,
		},
	}
}

func avatarEntity(r *Registry) entity {
	return entity{
		name:        "Avatar",
		description: "Avatar image data of a user",
		fields: func() []field {
			return []field{
				{name: "default", typ: r.StringType(), description: "Image shown when no avatar exists"},
				{name: "extra_attr", typ: r.StringType(), description: "HTML attributes for the img element"},
				{name: "force_default", typ: r.BooleanType(), description: "Whether the default image is always shown"},
				{name: "found_avatar", typ: r.BooleanType(), description: "Whether an avatar was found for the user"},
				{name: "height", typ: r.IntType()},
				{name: "rating", typ: r.StringType(), description: "Highest allowed rating"},
				{name: "scheme", typ: r.StringType(), description: "URL scheme of the avatar"},
				{name: "size", typ: r.IntType(), description: "Requested size in pixels"},
				{name: "url", typ: r.StringType(), description: "Image URL"},
				{name: "width", typ: r.IntType()},
			}
		},
		resolvers: resolverTable{
			"force_default": boolColumn("force_default"),
			"found_avatar":  boolColumn("found_avatar"),
			"height":        intColumn("height"),
			"size":          intColumn("size"),
			"width":         intColumn("width"),
		},
	}
}

//avatarFor computes the Gravatar data of an email address
func avatarFor(email string, size int) *store.Record {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	hash := hex.EncodeToString(sum[:])
	return store.NewRecord("avatar", map[string]interface{}{
		"default":       "mm",
		"extra_attr":    "",
		"force_default": false,
		"found_avatar":  email != "",
		"height":        size,
		"rating":        "g",
		"scheme":        "https",
		"size":          size,
		"url":           fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=mm&r=g", hash, size),
		"width":         size,
	})
}
