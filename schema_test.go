package wpgraphql_test

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wp "github.com/gocipe/wpgraphql"
	"github.com/gocipe/wpgraphql/store/memory"
)

const introspectionQuery = `
query {
    __schema {
        queryType { name }
        types {
            name
            kind
            description
            interfaces { name }
            possibleTypes { name }
            fields {
              name
              type {
                kind
                name
                ofType {
                  name
                  kind
                }
              }
            }
        }
    }
}
`

type schemaFieldDef struct {
	Name string `json:"name"`
	Type struct {
		Kind   string `json:"kind"`
		Name   string `json:"name"`
		OfType struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"ofType"`
	} `json:"type"`
}

type namedType struct {
	Name string `json:"name"`
}

type schemaTypeDef struct {
	Name          string           `json:"name"`
	Kind          string           `json:"kind"`
	Description   string           `json:"description"`
	Interfaces    []namedType      `json:"interfaces"`
	PossibleTypes []namedType      `json:"possibleTypes"`
	Fields        []schemaFieldDef `json:"fields"`
}

type schemaIntrospection struct {
	Data struct {
		Schema struct {
			QueryType namedType       `json:"queryType"`
			Types     []schemaTypeDef `json:"types"`
		} `json:"__schema"`
	} `json:"data"`
	Errors []struct {
		Message   string `json:"message"`
		Locations []struct {
			Column int `json:"column"`
			Line   int `json:"line"`
		} `json:"locations"`
	} `json:"errors"`
}

func introspect(t *testing.T, cfg wp.WPConfig) map[string]schemaTypeDef {
	t.Helper()

	schema, err := wp.NewSchema(wp.NewRegistry(memory.New(), cfg))
	require.NoError(t, err, "Error creating schema definition")

	r := graphql.Do(graphql.Params{Schema: schema, RequestString: introspectionQuery})
	body, err := json.Marshal(r)
	require.NoError(t, err, "Marshal graphql response")

	var schemaI schemaIntrospection
	require.NoError(t, json.Unmarshal(body, &schemaI), "Error unmarshalling graphql response")

	var graphErrors string
	for i, err := range schemaI.Errors {
		graphErrors += "\t" + strconv.Itoa(i+1) + "." + err.Message
		for _, loc := range err.Locations {
			graphErrors += fmt.Sprintf(" [%d,%d]", loc.Column, loc.Line)
		}
		graphErrors += "\n"
	}
	require.Empty(t, schemaI.Errors, "Errors received as response to graphql query:\n", graphErrors)
	assert.Equal(t, "Query", schemaI.Data.Schema.QueryType.Name)

	types := make(map[string]schemaTypeDef, len(schemaI.Data.Schema.Types))
	for _, typ := range schemaI.Data.Schema.Types {
		types[typ.Name] = typ
	}
	return types
}

// kindOf renders a field type as KIND.Name, unwrapping one level of wrapping.
func kindOf(f schemaFieldDef) string {
	switch f.Type.Kind {
	case "OBJECT", "INTERFACE":
		return f.Type.Kind + "." + f.Type.Name
	case "LIST", "NON_NULL":
		return f.Type.Kind + "." + f.Type.OfType.Kind + "." + f.Type.OfType.Name
	}
	return f.Type.Name
}

func TestSchema(t *testing.T) {
	type fieldExpected struct {
		Name string
		Kind string
	}

	entities := map[string]struct {
		Description string
		Interfaces  []string
		Fields      []fieldExpected
	}{
		"Post": {
			Description: "A WordPress post",
			Interfaces:  []string{"Node"},
			Fields: []fieldExpected{
				{"author", "OBJECT.User"},
				{"comment_count", "Int"},
				{"comment_status", "String"},
				{"comments", "LIST.OBJECT.Comment"},
				{"content", "String"},
				{"date", "String"},
				{"date_gmt", "String"},
				{"excerpt", "String"},
				{"guid", "String"},
				{"id", "NON_NULL.SCALAR.ID"},
				{"menu_order", "Int"},
				{"mime_type", "String"},
				{"modified", "String"},
				{"modified_gmt", "String"},
				{"parent", "Int"},
				{"ping_status", "String"},
				{"pinged", "String"},
				{"post_status", "String"},
				{"slug", "String"},
				{"title", "String"},
				{"to_ping", "String"},
				{"type", "String"},
			},
		},
		"Menu": {
			Description: "A navigation menu, stored as a term of the nav_menu taxonomy",
			Interfaces:  []string{"Node"},
			Fields: []fieldExpected{
				{"group", "String"},
				{"id", "NON_NULL.SCALAR.ID"},
				{"items", "LIST.OBJECT.MenuItem"},
				{"name", "String"},
				{"slug", "String"},
			},
		},
		"MenuLocation": {
			Description: "A place in the theme where a menu can be displayed",
			Fields: []fieldExpected{
				{"active_menu", "OBJECT.Menu"},
				{"name", "String"},
				{"slug", "String"},
			},
		},
		"Node": {
			Description: "An object with a globally addressable id",
			Fields: []fieldExpected{
				{"id", "NON_NULL.SCALAR.ID"},
			},
		},
	}

	types := introspect(t, wp.WPConfig{})
	for name, e := range entities {
		schemaType, ok := types[name]
		if !assert.True(t, ok, "Type %s is missing", name) {
			continue
		}
		assert.Equal(t, e.Description, schemaType.Description, "Invalid Description for %s", name)

		var interfaces []string
		for _, i := range schemaType.Interfaces {
			interfaces = append(interfaces, i.Name)
		}
		assert.Equal(t, e.Interfaces, interfaces, "Interfaces of %s", name)

		if !assert.Equal(t, len(e.Fields), len(schemaType.Fields), "Number of defined fields for %s not equal", name) {
			continue
		}
		for i, f := range schemaType.Fields {
			assert.Equal(t, e.Fields[i].Name, f.Name, "Field %d of %s", i, name)
			assert.Equal(t, e.Fields[i].Kind, kindOf(f), "Field kind invalid for %s.%s", name, f.Name)
		}
	}
}

func TestSchemaNodeImplementations(t *testing.T) {
	types := introspect(t, wp.WPConfig{PostTypes: []wp.PostTypeConfig{{RegisteredName: "event"}}})

	var possible []string
	for _, typ := range types["Node"].PossibleTypes {
		possible = append(possible, typ.Name)
	}
	assert.ElementsMatch(t, []string{"Comment", "Event", "Menu", "MenuItem", "Post", "Term", "User"}, possible)

	assert.Equal(t, "ENUM", types["NodeKind"].Kind)
	assert.Equal(t, "OBJECT", types["Event"].Kind)
	assert.Len(t, types["Event"].Fields, len(types["Post"].Fields))
}

func TestSchemaDynamicQueryFields(t *testing.T) {
	types := introspect(t, wp.WPConfig{PostTypes: []wp.PostTypeConfig{
		{RegisteredName: "event"},
		{RegisteredName: "press_release"},
		{RegisteredName: "book", GraphQLPluralName: "library", GraphQLSingularType: "Novel"},
	}})

	fields := make(map[string]string)
	for _, f := range types["Query"].Fields {
		fields[f.Name] = kindOf(f)
	}
	assert.Equal(t, "OBJECT.Event", fields["event"])
	assert.Equal(t, "LIST.OBJECT.Event", fields["events"])
	assert.Equal(t, "OBJECT.PressRelease", fields["press_release"])
	assert.Equal(t, "LIST.OBJECT.PressRelease", fields["press_releases"])
	assert.NotContains(t, fields, "pressRelease")
	assert.Equal(t, "OBJECT.Novel", fields["book"])
	assert.Equal(t, "LIST.OBJECT.Novel", fields["library"])
	assert.Equal(t, "INTERFACE.Node", fields["node"])
	assert.Equal(t, "String", fields["hello"])
}

func TestSchemaTypeNameCollision(t *testing.T) {
	_, err := wp.NewSchema(wp.NewRegistry(memory.New(), wp.WPConfig{PostTypes: []wp.PostTypeConfig{
		{RegisteredName: "profile", GraphQLSingularType: "User"},
	}}))
	assert.Error(t, err)
}
