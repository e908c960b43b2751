package wpgraphql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jinzhu/inflection"
)

//PostTypeConfig describes a content type registered at runtime and exposed as its own object type
type PostTypeConfig struct {
	RegisteredName      string `yaml:"registered_name"`
	GraphQLSingularName string `yaml:"graphql_singular_name,omitempty"`
	GraphQLPluralName   string `yaml:"graphql_plural_name,omitempty"`
	GraphQLSingularType string `yaml:"graphql_singular_type,omitempty"`
	GraphQLPluralType   string `yaml:"graphql_plural_type,omitempty"`
}

//WPConfig is the installation state the schema is derived from
type WPConfig struct {
	PostTypes []PostTypeConfig `yaml:"post_types"`
}

var graphqlName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

//Normalize returns a copy of c with omitted GraphQL names derived from the registered name
func (c WPConfig) Normalize() WPConfig {
	out := WPConfig{PostTypes: make([]PostTypeConfig, len(c.PostTypes))}
	for i, pt := range c.PostTypes {
		if pt.GraphQLSingularName == "" {
			pt.GraphQLSingularName = pt.RegisteredName
			if !graphqlName.MatchString(pt.RegisteredName) {
				pt.GraphQLSingularName = camelize(pt.RegisteredName, false)
			}
		}
		if pt.GraphQLPluralName == "" {
			pt.GraphQLPluralName = inflection.Plural(pt.GraphQLSingularName)
		}
		if pt.GraphQLSingularType == "" {
			pt.GraphQLSingularType = camelize(pt.GraphQLSingularName, true)
		}
		if pt.GraphQLPluralType == "" {
			pt.GraphQLPluralType = camelize(pt.GraphQLPluralName, true)
		}
		out.PostTypes[i] = pt
	}
	return out
}

//Lookup finds the entry for a registered content type name
func (c WPConfig) Lookup(registeredName string) (PostTypeConfig, bool) {
	for _, pt := range c.PostTypes {
		if pt.RegisteredName == registeredName {
			return pt, true
		}
	}
	return PostTypeConfig{}, false
}

//Validate reports every malformed entry. The schema itself does not call it;
//debug requests and server startup do.
func (c WPConfig) Validate() error {
	var result *multierror.Error
	seen := make(map[string]bool)

	for i, pt := range c.Normalize().PostTypes {
		if pt.RegisteredName == "" {
			result = multierror.Append(result, fmt.Errorf("post_types[%d]: registered_name is required", i))
			continue
		}
		if seen[pt.RegisteredName] {
			result = multierror.Append(result, fmt.Errorf("post_types[%d]: %q is registered twice", i, pt.RegisteredName))
		}
		seen[pt.RegisteredName] = true

		for _, name := range []string{pt.GraphQLSingularName, pt.GraphQLPluralName, pt.GraphQLSingularType} {
			if !graphqlName.MatchString(name) {
				result = multierror.Append(result, fmt.Errorf("post_types[%d]: %q is not a valid GraphQL name", i, name))
			}
		}
		if _, static := staticTypeNames[pt.GraphQLSingularType]; static && pt.RegisteredName != "post" {
			result = multierror.Append(result, fmt.Errorf("post_types[%d]: type name %q is already used", i, pt.GraphQLSingularType))
		}
	}

	return result.ErrorOrNil()
}

//camelize turns snake or kebab case into camel case
func camelize(s string, upper bool) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for i, p := range parts {
		if i == 0 && !upper {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
