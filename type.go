package wpgraphql

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/gocipe/wpgraphql/store"
)

//object creates the graphql object type of an entity. Fields and interfaces are
//thunks, so types referring to each other can be built in any order.
func (r *Registry) object(e entity) *graphql.Object {
	config := graphql.ObjectConfig{
		Name:        e.name,
		Description: e.description,
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return r.fieldMap(e.fields(), e.resolvers)
		}),
	}

	if e.node {
		config.Interfaces = graphql.InterfacesThunk(func() []*graphql.Interface {
			return []*graphql.Interface{r.Node()}
		})
	}

	return graphql.NewObject(config)
}

//fieldMap turns a field list into engine fields, choosing each field's resolver
func (r *Registry) fieldMap(fields []field, table resolverTable) graphql.Fields {
	out := make(graphql.Fields, len(fields))
	for _, f := range fields {
		out[f.name] = &graphql.Field{
			Name:        f.name,
			Type:        f.typ,
			Description: f.description,
			Args:        f.args,
			Resolve:     r.resolver(f, table),
		}
	}
	return out
}

//resolver picks the field's own resolver, then the table entry, then reads the
//raw record key named after the field. Root fields receive a nil record.
func (r *Registry) resolver(f field, table resolverTable) graphql.FieldResolveFn {
	fn := f.resolve
	if fn == nil {
		fn = table[f.name]
	}
	if fn == nil {
		fn = column(f.name)
	}

	return func(p graphql.ResolveParams) (interface{}, error) {
		rec, _ := p.Source.(*store.Record)
		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}
		return fn(ctx, rec, p.Args)
	}
}
