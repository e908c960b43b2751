package wpgraphql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql/store"
)

//column reads a raw record key
func column(key string) resolveFn {
	return func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
		return rec.Get(key), nil
	}
}

//text reads a record key formatted as a string
func text(key string) resolveFn {
	return func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
		if rec.Get(key) == nil {
			return nil, nil
		}
		return rec.String(key), nil
	}
}

//intColumn reads a record key as an integer
func intColumn(key string) resolveFn {
	return func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
		if rec.Get(key) == nil {
			return nil, nil
		}
		return rec.Int(key), nil
	}
}

//boolColumn reads a record key as a boolean
func boolColumn(key string) resolveFn {
	return func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
		if rec.Get(key) == nil {
			return nil, nil
		}
		return rec.Bool(key), nil
	}
}

//stringsColumn reads a record key as a list of strings
func stringsColumn(key string) resolveFn {
	return func(_ context.Context, rec *store.Record, _ map[string]interface{}) (interface{}, error) {
		list := rec.Strings(key)
		if list == nil {
			return nil, nil
		}
		return list, nil
	}
}

//record turns a lookup result into a resolver result; a missing record is null
func record(rec *store.Record, err error) (interface{}, error) {
	if errors.Is(err, store.ErrNotFound) || (err == nil && rec == nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

//collection turns a listing into a resolver result; an empty listing is null
func collection(recs []*store.Record, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs, nil
}

//fetch loads a single record by id
func (r *Registry) fetch(ctx context.Context, kind store.Kind, id string) (interface{}, error) {
	rec, err := r.store.Get(ctx, kind, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		r.logger.Error("could not load record", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("could not load %s %s: %w", kind, id, err)
	}
	return record(rec, err)
}

//fetchRef loads the record a numeric reference column points to. Zero means no reference.
func (r *Registry) fetchRef(ctx context.Context, kind store.Kind, id int64) (interface{}, error) {
	if id <= 0 {
		return nil, nil
	}
	return r.fetch(ctx, kind, strconv.FormatInt(id, 10))
}

//fetchByName loads a single record by name or slug
func (r *Registry) fetchByName(ctx context.Context, kind store.Kind, name string) (interface{}, error) {
	rec, err := r.store.GetByName(ctx, kind, name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		r.logger.Error("could not load record", zap.String("kind", string(kind)), zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("could not load %s %q: %w", kind, name, err)
	}
	return record(rec, err)
}

//list loads the records matching filter
func (r *Registry) list(ctx context.Context, kind store.Kind, filter store.Filter) (interface{}, error) {
	recs, err := r.store.List(ctx, kind, filter)
	if err != nil {
		r.logger.Error("could not list records", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("could not list %s: %w", kind, err)
	}
	return collection(recs, nil)
}

//single creates a root resolver loading a record of kind by the argument arg
func (r *Registry) single(kind store.Kind, arg string) resolveFn {
	return func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
		id, _ := args[arg].(string)
		return r.fetch(ctx, kind, id)
	}
}

//named creates a root resolver loading a record of kind by the name argument arg
func (r *Registry) named(kind store.Kind, arg string) resolveFn {
	return func(ctx context.Context, _ *store.Record, args map[string]interface{}) (interface{}, error) {
		name, _ := args[arg].(string)
		return r.fetchByName(ctx, kind, name)
	}
}

//listing creates a resolver for a paginated collection. scope narrows the
//filter using the source record; it may be nil.
func (r *Registry) listing(kind store.Kind, scope func(rec *store.Record, f *store.Filter)) resolveFn {
	return func(ctx context.Context, rec *store.Record, args map[string]interface{}) (interface{}, error) {
		filter, err := paginate(args)
		if err != nil {
			return nil, err
		}
		if scope != nil {
			scope(rec, &filter)
		}
		return r.list(ctx, kind, filter)
	}
}

//pageArgs declares optional first and after arguments
func (r *Registry) pageArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"after": &graphql.ArgumentConfig{
			Type:        r.IntType(),
			Description: "Number of items to skip",
		},
		"first": &graphql.ArgumentConfig{
			Type:        r.IntType(),
			Description: "Maximum number of items to return, 0 returns every item",
		},
	}
}

//pageArgsWithDefaults declares first and after with default values
func (r *Registry) pageArgsWithDefaults(first, after int) graphql.FieldConfigArgument {
	args := r.pageArgs()
	args["first"].DefaultValue = first
	args["after"].DefaultValue = after
	return args
}

//paginate maps first and after onto the filter's limit and offset
func paginate(args map[string]interface{}) (store.Filter, error) {
	var f store.Filter
	for _, name := range []string{"first", "after"} {
		v, ok := args[name].(int)
		if !ok {
			continue
		}
		if v < 0 {
			return f, fmt.Errorf("%s must be a non-negative integer, got %d", name, v)
		}
		if name == "first" {
			f.Limit = store.IntPtr(v)
		} else {
			f.Offset = store.IntPtr(v)
		}
	}
	return f, nil
}
