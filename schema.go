package wpgraphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
)

//NewSchema creates the executable schema of a registry: the Query root plus
//every configured content type, so Node can resolve to them.
func NewSchema(r *Registry) (graphql.Schema, error) {
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: r.Query(),
		Types: r.DynamicTypes(),
	})
	if err != nil {
		return schema, fmt.Errorf("could not build schema: %w", err)
	}
	return schema, nil
}
