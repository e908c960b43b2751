package wpgraphql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"

	"github.com/gocipe/wpgraphql/store/memory"
)

const testFixtures = `
post:
  - ID: 5
    post_author: 2
    post_title: Hello World
    post_content: Welcome to WordPress.
    post_name: hello-world
    post_status: publish
    post_type: post
    post_date: "2017-04-01 10:00:00"
    comment_count: 2
    post_parent: 0
    guid: http://example.com/?p=5
  - ID: 6
    post_author: 2
    post_title: GopherCon
    post_name: gophercon
    post_status: publish
    post_type: event
    guid: http://example.com/?p=6
  - ID: 7
    post_author: 3
    post_title: About
    post_name: about
    post_status: draft
    post_type: page
    guid: http://example.com/?page_id=7
  - ID: 8
    post_author: 3
    post_title: Contact
    post_name: contact
    post_status: publish
    post_type: page
  - ID: 9
    post_author: 3
    post_title: Launch
    post_name: launch
    post_status: publish
    post_type: press_release
  - ID: 10
    post_author: 2
    post_title: Old news
    post_name: old-news
    post_status: trash
    post_type: post
  - ID: 11
    post_author: 2
    post_title: Logo
    post_name: logo
    post_status: inherit
    post_type: attachment
user:
  - ID: 2
    user_login: admin
    user_nicename: admin
    user_email: Admin@Example.com
    display_name: Site Admin
    user_registered: "2017-03-01 09:00:00"
    allcaps:
      administrator: true
      level_10: true
      bbp_keymaster: false
  - ID: 3
    user_login: editor
    user_nicename: editor
    display_name: Editor
    locale: fr_FR
comment:
  - comment_ID: 1
    comment_post_ID: 5
    comment_content: First!
    comment_parent: 0
    user_id: 3
  - comment_ID: 2
    comment_post_ID: 5
    comment_content: Thanks
    comment_parent: 1
    user_id: 2
  - comment_ID: 3
    comment_post_ID: 5
    comment_content: Cheap watches
    comment_approved: spam
    comment_parent: 0
    user_id: 2
term:
  - term_id: 1
    name: Uncategorized
    slug: uncategorized
    taxonomy: category
    parent: 0
    count: 1
  - term_id: 4
    name: Go
    slug: go
    taxonomy: category
    parent: 1
    count: 0
taxonomy:
  - name: category
    label: Categories
    hierarchical: true
    show_tagcloud: true
menu:
  - term_id: 30
    name: Main
    slug: main
menu_item:
  - ID: 20
    post_type: nav_menu_item
    menu_id: 30
    menu_item_type: post_type
    menu_item_object: page
    menu_item_object_id: 7
  - ID: 21
    post_type: nav_menu_item
    menu_id: 30
    menu_item_type: custom
    post_title: Gophers
    menu_item_url: https://go.dev
menu_location:
  - slug: primary
    name: Top primary menu
    menu_id: 30
  - slug: footer
    name: Footer
    menu_id: 0
theme:
  - stylesheet: twentyseventeen
    Name: Twenty Seventeen
    Version: "1.1"
plugin:
  - path: hello.php
    Name: Hello Dolly
post_type:
  - name: post
    label: Posts
    hierarchical: false
`

var eventConfig = WPConfig{PostTypes: []PostTypeConfig{{RegisteredName: "event"}}}

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.Decode([]byte(testFixtures))
	require.NoError(t, err)
	return s
}

func newTestRegistry(t *testing.T, cfg WPConfig) *Registry {
	t.Helper()
	return NewRegistry(newTestStore(t), cfg)
}

// execute runs query against a fresh schema of r and returns the result.
func execute(t *testing.T, ctx context.Context, r *Registry, query string) *graphql.Result {
	t.Helper()
	schema, err := NewSchema(r)
	require.NoError(t, err)
	return graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: ctx})
}

// data runs query, requires it to succeed and returns its data as JSON.
func data(t *testing.T, r *Registry, query string) string {
	t.Helper()
	result := execute(t, context.Background(), r, query)
	require.Empty(t, result.Errors, "query %s", query)
	b, err := json.Marshal(result.Data)
	require.NoError(t, err)
	return string(b)
}
