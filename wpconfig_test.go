package wpgraphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cfg := WPConfig{PostTypes: []PostTypeConfig{
		{RegisteredName: "event"},
		{RegisteredName: "press_release"},
		{RegisteredName: "news-item"},
		{RegisteredName: "book", GraphQLPluralName: "library", GraphQLSingularType: "Novel"},
	}}.Normalize()

	assert.Equal(t, []PostTypeConfig{
		{RegisteredName: "event", GraphQLSingularName: "event", GraphQLPluralName: "events",
			GraphQLSingularType: "Event", GraphQLPluralType: "Events"},
		{RegisteredName: "press_release", GraphQLSingularName: "press_release", GraphQLPluralName: "press_releases",
			GraphQLSingularType: "PressRelease", GraphQLPluralType: "PressReleases"},
		{RegisteredName: "news-item", GraphQLSingularName: "newsItem", GraphQLPluralName: "newsItems",
			GraphQLSingularType: "NewsItem", GraphQLPluralType: "NewsItems"},
		{RegisteredName: "book", GraphQLSingularName: "book", GraphQLPluralName: "library",
			GraphQLSingularType: "Novel", GraphQLPluralType: "Library"},
	}, cfg.PostTypes)
}

func TestNormalizeDoesNotModifyReceiver(t *testing.T) {
	cfg := WPConfig{PostTypes: []PostTypeConfig{{RegisteredName: "event"}}}
	cfg.Normalize()
	assert.Empty(t, cfg.PostTypes[0].GraphQLSingularName)
}

func TestLookup(t *testing.T) {
	cfg := WPConfig{PostTypes: []PostTypeConfig{{RegisteredName: "event"}}}

	pt, ok := cfg.Lookup("event")
	assert.True(t, ok)
	assert.Equal(t, "event", pt.RegisteredName)

	_, ok = cfg.Lookup("product")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, WPConfig{}.Validate())
	assert.NoError(t, WPConfig{PostTypes: []PostTypeConfig{{RegisteredName: "post"}, {RegisteredName: "event"}}}.Validate())

	err := WPConfig{PostTypes: []PostTypeConfig{
		{},
		{RegisteredName: "event"},
		{RegisteredName: "event"},
		{RegisteredName: "2020-archive"},
		{RegisteredName: "profile", GraphQLSingularType: "User"},
	}}.Validate()
	require.Error(t, err)

	for _, msg := range []string{
		"post_types[0]: registered_name is required",
		`post_types[2]: "event" is registered twice`,
		`post_types[3]: "2020Archive" is not a valid GraphQL name`,
		`post_types[4]: type name "User" is already used`,
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestCamelize(t *testing.T) {
	assert.Equal(t, "pressRelease", camelize("press_release", false))
	assert.Equal(t, "PressRelease", camelize("press-release", true))
	assert.Equal(t, "", camelize("", true))
}
