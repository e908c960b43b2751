package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterWindow(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		n          int
		start, end int
	}{
		{"unbounded", Filter{}, 5, 0, 5},
		{"limit", Filter{Limit: IntPtr(2)}, 5, 0, 2},
		{"zero limit is unbounded", Filter{Limit: IntPtr(0)}, 5, 0, 5},
		{"offset", Filter{Offset: IntPtr(3)}, 5, 3, 5},
		{"limit and offset", Filter{Limit: IntPtr(2), Offset: IntPtr(1)}, 5, 1, 3},
		{"limit past the end", Filter{Limit: IntPtr(10), Offset: IntPtr(4)}, 5, 4, 5},
		{"offset past the end", Filter{Offset: IntPtr(9)}, 5, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.filter.Window(tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestFilterWithPostDefaults(t *testing.T) {
	f := Filter{}.WithPostDefaults()
	assert.Equal(t, []string{"post"}, f.PostType)
	assert.Equal(t, []string{"publish"}, f.PostStatus)

	f = Filter{PostType: []string{"page"}, PostStatus: []string{"draft", "trash"}}.WithPostDefaults()
	assert.Equal(t, []string{"page"}, f.PostType)
	assert.Equal(t, []string{"draft", "trash"}, f.PostStatus)
}

func TestRecordAccessors(t *testing.T) {
	rec := NewRecord(KindPost, map[string]interface{}{
		"ID":          uint64(5),
		"post_author": "2",
		"post_date":   time.Date(2017, 4, 1, 10, 30, 0, 0, time.UTC),
		"post_name":   []byte("hello"),
		"sticky":      "true",
		"ping":        int64(1),
		"tags":        []interface{}{"a", 1},
	})

	assert.Equal(t, "5", rec.ID())
	assert.Equal(t, int64(5), rec.Int("ID"))
	assert.Equal(t, int64(2), rec.Int("post_author"))
	assert.Equal(t, "2017-04-01 10:30:00", rec.String("post_date"))
	assert.Equal(t, "hello", rec.String("post_name"))
	assert.True(t, rec.Bool("sticky"))
	assert.True(t, rec.Bool("ping"))
	assert.False(t, rec.Bool("missing"))
	assert.Equal(t, []string{"a", "1"}, rec.Strings("tags"))
	assert.Empty(t, rec.String("missing"))
	assert.Zero(t, rec.Int("post_name"))

	var nilRec *Record
	assert.Nil(t, nilRec.Get("ID"))
	assert.Empty(t, nilRec.ID())
}

func TestIDKey(t *testing.T) {
	assert.Equal(t, "comment_ID", IDKey(KindComment))
	assert.Equal(t, "term_id", IDKey(KindMenu))
	assert.Equal(t, "slug", IDKey(KindMenuLocation))
	assert.Equal(t, "ID", IDKey(Kind("unknown")))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-dolly", Slugify("Hello Dolly"))
	assert.Equal(t, "akismet-anti-spam", Slugify("  Akismet Anti-Spam!  "))
	assert.Equal(t, "", Slugify("--"))
}
