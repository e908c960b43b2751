// Package store defines the content-store collaborator the schema resolves against.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrNotFound is returned by Get and GetByName when no record matches.
var ErrNotFound = errors.New("store: record not found")

// Kind identifies the entity kind of a record.
type Kind string

const (
	KindPost         Kind = "post"
	KindUser         Kind = "user"
	KindComment      Kind = "comment"
	KindTerm         Kind = "term"
	KindTaxonomy     Kind = "taxonomy"
	KindMenu         Kind = "menu"
	KindMenuItem     Kind = "menu_item"
	KindMenuLocation Kind = "menu_location"
	KindTheme        Kind = "theme"
	KindPlugin       Kind = "plugin"
	KindPostType     Kind = "post_type"
)

// Kinds lists every kind a Store may be asked about.
var Kinds = []Kind{
	KindPost, KindUser, KindComment, KindTerm, KindTaxonomy, KindMenu,
	KindMenuItem, KindMenuLocation, KindTheme, KindPlugin, KindPostType,
}

// Store is the read-only data access the schema needs.
type Store interface {
	// Get returns the record of the given kind by id, or ErrNotFound.
	Get(ctx context.Context, kind Kind, id string) (*Record, error)
	// List returns the records of the given kind matching filter. An empty
	// result is an empty slice and a nil error.
	List(ctx context.Context, kind Kind, filter Filter) ([]*Record, error)
	// GetByName returns the record of the given kind by name or slug, or ErrNotFound.
	GetByName(ctx context.Context, kind Kind, name string) (*Record, error)
}

// Filter narrows a List call. Nil pointers and empty slices mean "no constraint".
type Filter struct {
	Limit  *int
	Offset *int

	// Parent matches post_parent, comment_parent or the term parent.
	Parent *int64

	// posts
	Author      *int64
	AuthorIn    []int64
	AuthorNotIn []int64
	Name        string
	PostIn      []int64
	PostNotIn   []int64
	PostType    []string
	PostStatus  []string
	Search      string

	// comments
	PostID *int64
	UserID *int64

	// terms
	Taxonomy string

	// menu items
	MenuID *int64
}

var (
	// DefaultPostTypes and DefaultPostStatus apply to post listings that name none.
	DefaultPostTypes  = []string{"post"}
	DefaultPostStatus = []string{"publish"}
	// HiddenCommentStatus lists the comment_approved values never listed.
	HiddenCommentStatus = []string{"spam", "trash"}
)

// WithPostDefaults returns f with an empty PostType or PostStatus replaced by
// the defaults, so anonymous listings only see published posts.
func (f Filter) WithPostDefaults() Filter {
	if len(f.PostType) == 0 {
		f.PostType = DefaultPostTypes
	}
	if len(f.PostStatus) == 0 {
		f.PostStatus = DefaultPostStatus
	}
	return f
}

// Window applies the Limit/Offset of f to n items and returns the [start, end)
// bounds. A Limit of zero or less returns every item past the offset. Stores
// without native pagination share it.
func (f Filter) Window(n int) (int, int) {
	start := 0
	if f.Offset != nil && *f.Offset > 0 {
		start = *f.Offset
	}
	if start > n {
		start = n
	}
	end := n
	if f.Limit != nil && *f.Limit > 0 && start+*f.Limit < n {
		end = start + *f.Limit
	}
	return start, end
}

// Record is an opaque entity as returned by a Store. Data keys follow the
// WordPress column and property names (ID, post_title, comment_ID, term_id...).
type Record struct {
	Kind Kind
	Data map[string]interface{}
}

// NewRecord creates a record of the given kind.
func NewRecord(kind Kind, data map[string]interface{}) *Record {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Record{Kind: kind, Data: data}
}

// Get returns the raw value stored under key, or nil.
func (r *Record) Get(key string) interface{} {
	if r == nil {
		return nil
	}
	return r.Data[key]
}

// String returns the value under key formatted as a string. Missing keys yield "".
func (r *Record) String(key string) string {
	switch v := r.Get(key).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value under key as an int64. Values that cannot be read as
// an integer yield 0.
func (r *Record) Int(key string) int64 {
	switch v := r.Get(key).(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	}
	return 0
}

// Bool returns the value under key as a boolean.
func (r *Record) Bool(key string) bool {
	switch v := r.Get(key).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case nil:
		return false
	}
	return r.Int(key) != 0
}

// Strings returns the value under key as a string slice.
func (r *Record) Strings(key string) []string {
	switch v := r.Get(key).(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, fmt.Sprint(s))
		}
		return out
	}
	return nil
}

// IntPtr is a convenience for building filters.
func IntPtr(n int) *int { return &n }

// Int64Ptr is a convenience for building filters.
func Int64Ptr(n int64) *int64 { return &n }

// idKeys holds the Data key carrying each kind's identifier.
var idKeys = map[Kind]string{
	KindPost:         "ID",
	KindUser:         "ID",
	KindComment:      "comment_ID",
	KindTerm:         "term_id",
	KindTaxonomy:     "name",
	KindMenu:         "term_id",
	KindMenuItem:     "ID",
	KindMenuLocation: "slug",
	KindTheme:        "stylesheet",
	KindPlugin:       "path",
	KindPostType:     "name",
}

// IDKey returns the Data key holding the identifier of records of kind k.
func IDKey(k Kind) string {
	if key, ok := idKeys[k]; ok {
		return key
	}
	return "ID"
}

// ID returns the record identifier as a string.
func (r *Record) ID() string {
	if r == nil {
		return ""
	}
	return r.String(IDKey(r.Kind))
}

// nameKeys holds the Data keys GetByName compares against, in order.
var nameKeys = map[Kind][]string{
	KindPost:         {"post_name"},
	KindUser:         {"user_login", "user_nicename"},
	KindComment:      {"comment_ID"},
	KindTerm:         {"slug", "name"},
	KindTaxonomy:     {"name"},
	KindMenu:         {"slug", "name"},
	KindMenuItem:     {"post_name"},
	KindMenuLocation: {"slug"},
	KindTheme:        {"stylesheet"},
	KindPlugin:       {"slug", "path"},
	KindPostType:     {"name"},
}

// NameKeys returns the Data keys a record of kind k can be looked up by.
func NameKeys(k Kind) []string {
	return nameKeys[k]
}

// Slugify lowercases s and joins its words with dashes, the way plugin names
// are matched against the slug argument.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
