package wpgraphql

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/gocipe/wpgraphql/store"
)

//entity describes an object type: its name, whether it is a Node and its fields.
//fields is deferred so an entity can reference types that are not built yet.
type entity struct {
	name        string
	description string
	node        bool
	fields      func() []field
	resolvers   resolverTable
}

//field is one entry of an entity's ordered field list
type field struct {
	name        string
	typ         graphql.Output
	description string
	args        graphql.FieldConfigArgument
	resolve     resolveFn
}

//resolveFn resolves a field of a record
type resolveFn func(ctx context.Context, source *store.Record, args map[string]interface{}) (interface{}, error)

//resolverTable maps field names to their resolvers
type resolverTable map[string]resolveFn

//staticTypeNames are the names taken by the built-in types
var staticTypeNames = map[string]struct{}{
	"Avatar": {}, "Comment": {}, "Menu": {}, "MenuItem": {}, "MenuLocation": {},
	"Node": {}, "NodeKind": {}, "Plugin": {}, "Post": {}, "PostType": {},
	"Query": {}, "Taxonomy": {}, "Term": {}, "Theme": {}, "User": {},
}

//fieldNames returns the names of fields in declaration order
func fieldNames(fields []field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}
