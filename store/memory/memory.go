// Package memory implements store.Store over records held in memory. It serves
// the runtime-registered kinds (taxonomies, post types, themes, plugins, menu
// locations) and is the store used by tests.
package memory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/gocipe/wpgraphql/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps records per kind in insertion order.
type Store struct {
	mu      sync.RWMutex
	records map[store.Kind][]*store.Record
}

// New creates a store holding recs.
func New(recs ...*store.Record) *Store {
	s := &Store{records: make(map[store.Kind][]*store.Record)}
	s.Add(recs...)
	return s
}

// Add appends recs to the store.
func (s *Store) Add(recs ...*store.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.records[rec.Kind] = append(s.records[rec.Kind], rec)
	}
}

// LoadFile reads YAML fixtures from path. See Decode for the format.
func LoadFile(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read fixtures file %s: %w", path, err)
	}
	return Decode(b)
}

// Decode parses YAML fixtures: a mapping from kind to a list of records.
//
//	post:
//	  - ID: 5
//	    post_title: Hello!
//	    post_author: 2
//	user:
//	  - ID: 2
//	    user_login: admin
func Decode(b []byte) (*Store, error) {
	var doc map[string][]map[string]interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixtures: %w", err)
	}
	s := New()
	for kind, rows := range doc {
		for _, row := range rows {
			s.Add(store.NewRecord(store.Kind(kind), row))
		}
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, kind store.Kind, id string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := store.IDKey(kind)
	for _, rec := range s.records[kind] {
		if rec.String(key) == id {
			return rec, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetByName(_ context.Context, kind store.Kind, name string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, key := range store.NameKeys(kind) {
		for _, rec := range s.records[kind] {
			if rec.String(key) == name {
				return rec, nil
			}
		}
	}
	if kind == store.KindPlugin {
		slug := store.Slugify(name)
		for _, rec := range s.records[kind] {
			if store.Slugify(rec.String("Name")) == slug {
				return rec, nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) List(_ context.Context, kind store.Kind, filter store.Filter) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == store.KindPost {
		filter = filter.WithPostDefaults()
	}
	matched := make([]*store.Record, 0, len(s.records[kind]))
	for _, rec := range s.records[kind] {
		if match(rec, filter) {
			matched = append(matched, rec)
		}
	}
	start, end := filter.Window(len(matched))
	return matched[start:end], nil
}

func match(rec *store.Record, f store.Filter) bool {
	switch rec.Kind {
	case store.KindPost, store.KindMenuItem:
		return matchPost(rec, f)
	case store.KindComment:
		if containsString(store.HiddenCommentStatus, rec.String("comment_approved")) {
			return false
		}
		if f.PostID != nil && rec.Int("comment_post_ID") != *f.PostID {
			return false
		}
		if f.UserID != nil && rec.Int("user_id") != *f.UserID {
			return false
		}
		if f.Parent != nil && rec.Int("comment_parent") != *f.Parent {
			return false
		}
	case store.KindTerm:
		if f.Taxonomy != "" && rec.String("taxonomy") != f.Taxonomy {
			return false
		}
		if f.Parent != nil && rec.Int("parent") != *f.Parent {
			return false
		}
	}
	return true
}

func matchPost(rec *store.Record, f store.Filter) bool {
	if f.Author != nil && rec.Int("post_author") != *f.Author {
		return false
	}
	if len(f.AuthorIn) > 0 && !containsInt(f.AuthorIn, rec.Int("post_author")) {
		return false
	}
	if containsInt(f.AuthorNotIn, rec.Int("post_author")) {
		return false
	}
	if f.Name != "" && rec.String("post_name") != f.Name {
		return false
	}
	if f.Parent != nil && rec.Int("post_parent") != *f.Parent {
		return false
	}
	if len(f.PostIn) > 0 && !containsInt(f.PostIn, rec.Int("ID")) {
		return false
	}
	if containsInt(f.PostNotIn, rec.Int("ID")) {
		return false
	}
	if len(f.PostType) > 0 && !containsString(f.PostType, rec.String("post_type")) {
		return false
	}
	if len(f.PostStatus) > 0 && !containsString(f.PostStatus, rec.String("post_status")) {
		return false
	}
	if f.MenuID != nil && rec.Int("menu_id") != *f.MenuID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(rec.String("post_title")), q) &&
			!strings.Contains(strings.ToLower(rec.String("post_content")), q) {
			return false
		}
	}
	return true
}

func containsInt(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
