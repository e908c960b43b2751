package wpgraphql

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql/store"
)

//Logical type keys understood by Registry.Get
const (
	TypePost         = "post"
	TypeUser         = "user"
	TypeComment      = "comment"
	TypeTerm         = "term"
	TypeTaxonomy     = "taxonomy"
	TypeMenu         = "menu"
	TypeMenuItem     = "menu_item"
	TypeMenuLocation = "menu_location"
	TypeTheme        = "theme"
	TypePlugin       = "plugin"
	TypePostType     = "post_type"
	TypeAvatar       = "avatar"
	TypeNode         = "node"
	TypeNodeKind     = "node_kind"
	TypeQuery        = "query"
)

//ErrUnknownPostType is returned by GetDynamic for content types missing from WPConfig
var ErrUnknownPostType = errors.New("wpgraphql: post type is not configured")

//dynamicPrefix keeps memo slots of runtime content types apart from the static keys
const dynamicPrefix = "post_type:"

//Registry builds every type of a schema exactly once. It is scoped to a single request.
type Registry struct {
	config   WPConfig
	store    store.Store
	logger   *zap.Logger
	types    map[string]graphql.Type
	building map[string]bool
}

//Option configures a Registry
type Option func(*Registry)

//WithLogger sets the logger used for construction and resolution diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

//NewRegistry creates an empty registry resolving against s
func NewRegistry(s store.Store, cfg WPConfig, opts ...Option) *Registry {
	r := &Registry{
		config:   cfg.Normalize(),
		store:    s,
		logger:   zap.NewNop(),
		types:    make(map[string]graphql.Type),
		building: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

//Config returns the normalized configuration the registry was built with
func (r *Registry) Config() WPConfig {
	return r.config
}

//Store returns the content store resolvers read from
func (r *Registry) Store() store.Store {
	return r.store
}

//Get returns the type registered under key, building it on first use.
//Builders only reference other types from inside field thunks; a builder that
//asks for a type still under construction is a bug and panics.
func (r *Registry) Get(key string) graphql.Type {
	if t, ok := r.types[key]; ok {
		return t
	}
	if r.building[key] {
		panic(fmt.Sprintf("wpgraphql: type %q requested while it is being built; reference it from a fields thunk", key))
	}

	r.building[key] = true
	t := r.build(key)
	delete(r.building, key)

	r.types[key] = t
	r.logger.Debug("type built", zap.String("type", key), zap.String("name", t.Name()))
	return t
}

func (r *Registry) build(key string) graphql.Type {
	switch key {
	case TypePost:
		return r.object(postEntity(r, "Post", "A WordPress post"))
	case TypeUser:
		return r.object(userEntity(r))
	case TypeComment:
		return r.object(commentEntity(r))
	case TypeTerm:
		return r.object(termEntity(r))
	case TypeTaxonomy:
		return r.object(taxonomyEntity(r))
	case TypeMenu:
		return r.object(menuEntity(r))
	case TypeMenuItem:
		return r.object(menuItemEntity(r))
	case TypeMenuLocation:
		return r.object(menuLocationEntity(r))
	case TypeTheme:
		return r.object(themeEntity(r))
	case TypePlugin:
		return r.object(pluginEntity(r))
	case TypePostType:
		return r.object(postTypeEntity(r))
	case TypeAvatar:
		return r.object(avatarEntity(r))
	case TypeNode:
		return newNodeInterface(r)
	case TypeNodeKind:
		return newNodeKindEnum()
	case TypeQuery:
		return newQueryType(r)
	}
	panic(fmt.Sprintf("wpgraphql: unknown type key %q", key))
}

//GetDynamic returns the object type of a content type registered at runtime.
//The registered name "post" is the static Post type.
func (r *Registry) GetDynamic(name string) (*graphql.Object, error) {
	if name == "post" {
		return r.Post(), nil
	}
	pt, ok := r.config.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPostType, name)
	}

	key := dynamicPrefix + name
	if t, ok := r.types[key]; ok {
		return t.(*graphql.Object), nil
	}
	t := r.object(postEntity(r, pt.GraphQLSingularType, fmt.Sprintf("A WordPress %s", pt.RegisteredName)))
	r.types[key] = t
	r.logger.Debug("type built", zap.String("type", key), zap.String("name", t.Name()))
	return t, nil
}

//DynamicTypes returns the object types of every configured content type
func (r *Registry) DynamicTypes() []graphql.Type {
	types := make([]graphql.Type, 0, len(r.config.PostTypes))
	for _, pt := range r.config.PostTypes {
		if pt.RegisteredName == "post" {
			continue
		}
		t, err := r.GetDynamic(pt.RegisteredName)
		if err != nil {
			continue
		}
		types = append(types, t)
	}
	return types
}

func (r *Registry) Post() *graphql.Object         { return r.Get(TypePost).(*graphql.Object) }
func (r *Registry) User() *graphql.Object         { return r.Get(TypeUser).(*graphql.Object) }
func (r *Registry) Comment() *graphql.Object      { return r.Get(TypeComment).(*graphql.Object) }
func (r *Registry) Term() *graphql.Object         { return r.Get(TypeTerm).(*graphql.Object) }
func (r *Registry) Taxonomy() *graphql.Object     { return r.Get(TypeTaxonomy).(*graphql.Object) }
func (r *Registry) Menu() *graphql.Object         { return r.Get(TypeMenu).(*graphql.Object) }
func (r *Registry) MenuItem() *graphql.Object     { return r.Get(TypeMenuItem).(*graphql.Object) }
func (r *Registry) MenuLocation() *graphql.Object { return r.Get(TypeMenuLocation).(*graphql.Object) }
func (r *Registry) Theme() *graphql.Object        { return r.Get(TypeTheme).(*graphql.Object) }
func (r *Registry) Plugin() *graphql.Object       { return r.Get(TypePlugin).(*graphql.Object) }
func (r *Registry) PostType() *graphql.Object     { return r.Get(TypePostType).(*graphql.Object) }
func (r *Registry) Avatar() *graphql.Object       { return r.Get(TypeAvatar).(*graphql.Object) }
func (r *Registry) Node() *graphql.Interface      { return r.Get(TypeNode).(*graphql.Interface) }
func (r *Registry) NodeKind() *graphql.Enum       { return r.Get(TypeNodeKind).(*graphql.Enum) }
func (r *Registry) Query() *graphql.Object        { return r.Get(TypeQuery).(*graphql.Object) }

//StringType and the other scalar accessors hand out the engine's shared scalars
func (r *Registry) StringType() *graphql.Scalar  { return graphql.String }
func (r *Registry) IntType() *graphql.Scalar     { return graphql.Int }
func (r *Registry) IDType() *graphql.Scalar      { return graphql.ID }
func (r *Registry) BooleanType() *graphql.Scalar { return graphql.Boolean }
func (r *Registry) FloatType() *graphql.Scalar   { return graphql.Float }

//ListOf wraps t in a list type
func (r *Registry) ListOf(t graphql.Type) *graphql.List { return graphql.NewList(t) }

//NonNull wraps t in a non-null type
func (r *Registry) NonNull(t graphql.Type) *graphql.NonNull { return graphql.NewNonNull(t) }
