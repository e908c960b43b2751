package wpgraphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql/store"
)

//nodeKinds are the record kinds that resolve to a Node implementation
var nodeKinds = []struct {
	name string
	kind store.Kind
}{
	{"COMMENT", store.KindComment},
	{"MENU", store.KindMenu},
	{"MENU_ITEM", store.KindMenuItem},
	{"POST", store.KindPost},
	{"TERM", store.KindTerm},
	{"USER", store.KindUser},
}

func newNodeInterface(r *Registry) *graphql.Interface {
	return graphql.NewInterface(graphql.InterfaceConfig{
		Name:        "Node",
		Description: "An object with a globally addressable id",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        r.NonNull(r.IDType()),
				Description: "The id of the object",
			},
		},
		ResolveType: r.resolveNodeType,
	})
}

func newNodeKindEnum() *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, k := range nodeKinds {
		values[k.name] = &graphql.EnumValueConfig{Value: string(k.kind)}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:        "NodeKind",
		Description: "The kinds of records addressable through the node field",
		Values:      values,
	})
}

//resolveNodeType maps a record to its concrete object type by kind
func (r *Registry) resolveNodeType(p graphql.ResolveTypeParams) *graphql.Object {
	rec, ok := p.Value.(*store.Record)
	if ok && rec != nil {
		switch rec.Kind {
		case store.KindPost:
			return r.postObject(rec.String("post_type"))
		case store.KindUser:
			return r.User()
		case store.KindComment:
			return r.Comment()
		case store.KindTerm:
			return r.Term()
		case store.KindMenuItem:
			return r.MenuItem()
		case store.KindMenu:
			return r.Menu()
		}
	}

	msg := fmt.Sprintf("no Node type for value of type %T", p.Value)
	if ok && rec != nil {
		msg = fmt.Sprintf("no Node type for record kind %q", rec.Kind)
	}
	r.logger.Warn("could not resolve node type", zap.String("reason", msg))
	addDiagnostic(p.Context, "%s", msg)
	return nil
}

//postObject returns the object type of a post record by its post_type
func (r *Registry) postObject(postType string) *graphql.Object {
	if t, err := r.GetDynamic(postType); err == nil {
		return t
	}
	return r.Post()
}
