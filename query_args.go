package wpgraphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/gocipe/wpgraphql/store"
)

//PostQueryArgs returns the arguments accepted by post collections. They mirror
//the WP_Query parameters of the same name.
func PostQueryArgs(r *Registry) graphql.FieldConfigArgument {
	intList := r.ListOf(r.IntType())
	stringList := r.ListOf(r.StringType())

	return graphql.FieldConfigArgument{
		"after":          {Type: r.IntType(), Description: "Number of posts to skip. Equivalent to offset."},
		"author":         {Type: r.IntType(), Description: "Restricts the collection to an author ID"},
		"author__in":     {Type: intList, Description: "Restricts the collection to a list of author IDs"},
		"author__not_in": {Type: intList, Description: "Removes posts by a list of author IDs"},
		"first":          {Type: r.IntType(), Description: "Number of posts to return, 0 returns every post. Equivalent to posts_per_page."},
		"name":           {Type: r.StringType(), Description: "Restricts the collection to a post slug"},
		"post__in":       {Type: intList, Description: "Restricts the collection to a list of post IDs"},
		"post__not_in":   {Type: intList, Description: "Removes a list of post IDs from the collection"},
		"post_parent":    {Type: r.IntType(), Description: "Restricts the collection to children of a post ID"},
		"post_status":    {Type: stringList, Description: "Restricts the collection to publication statuses. Defaults to publish."},
		"post_type":      {Type: stringList, Description: "Restricts the collection to content types. Defaults to post."},
		"s":              {Type: r.StringType(), Description: "Search phrase"},
	}
}

//postFilter maps post collection arguments onto a store filter
func postFilter(args map[string]interface{}) (store.Filter, error) {
	f, err := paginate(args)
	if err != nil {
		return f, err
	}

	if v, ok := args["author"].(int); ok {
		f.Author = store.Int64Ptr(int64(v))
	}
	if v, ok := args["post_parent"].(int); ok {
		f.Parent = store.Int64Ptr(int64(v))
	}
	f.Name, _ = args["name"].(string)
	f.Search, _ = args["s"].(string)

	for arg, dst := range map[string]*[]int64{
		"author__in":     &f.AuthorIn,
		"author__not_in": &f.AuthorNotIn,
		"post__in":       &f.PostIn,
		"post__not_in":   &f.PostNotIn,
	} {
		list, err := int64s(args[arg])
		if err != nil {
			return f, fmt.Errorf("%s: %w", arg, err)
		}
		*dst = list
	}

	f.PostStatus = strs(args["post_status"])
	f.PostType = strs(args["post_type"])
	return f, nil
}

func int64s(v interface{}) ([]int64, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, nil
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		n, ok := item.(int)
		if !ok {
			return nil, fmt.Errorf("expected integers, got %T", item)
		}
		out = append(out, int64(n))
	}
	return out, nil
}

func strs(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
