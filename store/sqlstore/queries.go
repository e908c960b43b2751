package sqlstore

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gocipe/wpgraphql/store"
)

var postColumns = []string{
	"ID", "post_author", "post_date", "post_date_gmt", "post_content", "post_title",
	"post_excerpt", "post_status", "comment_status", "ping_status", "post_name",
	"to_ping", "pinged", "post_modified", "post_modified_gmt", "post_parent", "guid",
	"menu_order", "post_type", "post_mime_type", "comment_count",
}

var userColumns = []string{
	"ID", "user_login", "user_nicename", "user_email", "user_url", "user_registered", "display_name",
}

var commentColumns = []string{
	"comment_ID", "comment_post_ID", "comment_author", "comment_author_email",
	"comment_author_url", "comment_author_IP", "comment_date", "comment_date_gmt",
	"comment_content", "comment_karma", "comment_approved", "comment_agent",
	"comment_type", "comment_parent", "user_id",
}

var termColumns = []string{
	"term_id", "name", "slug", "term_group", "term_taxonomy_id", "taxonomy",
	"description", "parent", "count",
}

var termSelectColumns = []string{
	"t.term_id", "t.name", "t.slug", "t.term_group", "tt.term_taxonomy_id", "tt.taxonomy",
	"tt.description", "tt.parent", "tt.count",
}

// userMetaKeys are copied from wp_usermeta onto user records.
var userMetaKeys = []string{"first_name", "last_name", "nickname", "description", "locale"}

// menuItemMetaKeys are copied from wp_postmeta onto menu item records,
// without their leading underscore.
var menuItemMetaKeys = []string{
	"_menu_item_type", "_menu_item_object_id", "_menu_item_object",
	"_menu_item_target", "_menu_item_xfn", "_menu_item_url",
}

func (s *Store) postSelect() string {
	cols := make([]string, len(postColumns))
	for i, c := range postColumns {
		cols[i] = "p." + c
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + s.table("posts") + " p"
}

func (s *Store) userSelect() string {
	return "SELECT " + strings.Join(userColumns, ", ") + " FROM " + s.table("users")
}

func (s *Store) commentSelect() string {
	return "SELECT " + strings.Join(commentColumns, ", ") + " FROM " + s.table("comments")
}

func (s *Store) termSelect() string {
	return "SELECT " + strings.Join(termSelectColumns, ", ") +
		" FROM " + s.table("terms") + " t JOIN " + s.table("term_taxonomy") + " tt ON tt.term_id = t.term_id"
}

type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (s *Store) postQuery(f store.Filter) (string, []interface{}) {
	f = f.WithPostDefaults()
	var w where
	w.add("p.post_type IN ("+placeholders(len(f.PostType))+")", stringArgs(f.PostType)...)
	w.add("p.post_status IN ("+placeholders(len(f.PostStatus))+")", stringArgs(f.PostStatus)...)
	if f.Author != nil {
		w.add("p.post_author = ?", *f.Author)
	}
	if len(f.AuthorIn) > 0 {
		w.add("p.post_author IN ("+placeholders(len(f.AuthorIn))+")", int64Args(f.AuthorIn)...)
	}
	if len(f.AuthorNotIn) > 0 {
		w.add("p.post_author NOT IN ("+placeholders(len(f.AuthorNotIn))+")", int64Args(f.AuthorNotIn)...)
	}
	if f.Name != "" {
		w.add("p.post_name = ?", f.Name)
	}
	if f.Parent != nil {
		w.add("p.post_parent = ?", *f.Parent)
	}
	if len(f.PostIn) > 0 {
		w.add("p.ID IN ("+placeholders(len(f.PostIn))+")", int64Args(f.PostIn)...)
	}
	if len(f.PostNotIn) > 0 {
		w.add("p.ID NOT IN ("+placeholders(len(f.PostNotIn))+")", int64Args(f.PostNotIn)...)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		w.add("(p.post_title LIKE ? OR p.post_content LIKE ?)", like, like)
	}
	return s.postSelect() + w.String() + " ORDER BY p.post_date DESC, p.ID DESC" + s.window(f), w.args
}

func (s *Store) menuItemQuery(f store.Filter) (string, []interface{}) {
	var w where
	w.add("p.post_type = 'nav_menu_item'")
	q := s.postSelect()
	if f.MenuID != nil {
		q += " JOIN " + s.table("term_relationships") + " tr ON tr.object_id = p.ID" +
			" JOIN " + s.table("term_taxonomy") + " tt ON tt.term_taxonomy_id = tr.term_taxonomy_id"
		w.add("tt.term_id = ?", *f.MenuID)
	}
	return q + w.String() + " ORDER BY p.menu_order, p.ID" + s.window(f), w.args
}

func (s *Store) commentQuery(f store.Filter) (string, []interface{}) {
	var w where
	w.add("comment_approved NOT IN ("+placeholders(len(store.HiddenCommentStatus))+")", stringArgs(store.HiddenCommentStatus)...)
	if f.PostID != nil {
		w.add("comment_post_ID = ?", *f.PostID)
	}
	if f.UserID != nil {
		w.add("user_id = ?", *f.UserID)
	}
	if f.Parent != nil {
		w.add("comment_parent = ?", *f.Parent)
	}
	return s.commentSelect() + w.String() + " ORDER BY comment_date_gmt DESC, comment_ID DESC" + s.window(f), w.args
}

func (s *Store) termQuery(f store.Filter, taxonomy string) (string, []interface{}) {
	var w where
	if taxonomy == "" {
		taxonomy = f.Taxonomy
	}
	if taxonomy != "" {
		w.add("tt.taxonomy = ?", taxonomy)
	}
	if f.Parent != nil {
		w.add("tt.parent = ?", *f.Parent)
	}
	return s.termSelect() + w.String() + " ORDER BY t.name, t.term_id" + s.window(f), w.args
}

func (s *Store) meta(ctx context.Context, table, idColumn string, id interface{}, keys []string) (map[string]string, error) {
	args := append([]interface{}{id}, stringArgs(keys)...)
	query := s.rebind("SELECT meta_key, meta_value FROM " + s.table(table) +
		" WHERE " + idColumn + " = ? AND meta_key IN (" + placeholders(len(keys)) + ")")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("sqlstore: scan %s: %w", table, err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

func (s *Store) loadUserMeta(ctx context.Context, rec *store.Record) error {
	capKey := s.prefix + "capabilities"
	meta, err := s.meta(ctx, "usermeta", "user_id", rec.Int("ID"), append(userMetaKeys, capKey))
	if err != nil {
		return err
	}
	for _, key := range userMetaKeys {
		rec.Data[key] = meta[key]
	}
	rec.Data["cap_key"] = capKey
	rec.Data["allcaps"] = parseCapabilities(meta[capKey])
	return nil
}

func (s *Store) loadMenuItemMeta(ctx context.Context, rec *store.Record) error {
	meta, err := s.meta(ctx, "postmeta", "post_id", rec.Int("ID"), menuItemMetaKeys)
	if err != nil {
		return err
	}
	for _, key := range menuItemMetaKeys {
		rec.Data[strings.TrimPrefix(key, "_")] = meta[key]
	}
	return nil
}

// capabilityPattern matches `s:<n>:"<cap>";b:<0|1>;` pairs of the serialized
// capability array WordPress stores in usermeta.
var capabilityPattern = regexp.MustCompile(`s:\d+:"([^"]+)";b:([01]);`)

func parseCapabilities(serialized string) map[string]bool {
	caps := make(map[string]bool)
	for _, m := range capabilityPattern.FindAllStringSubmatch(serialized, -1) {
		caps[m[1]] = m[2] == "1"
	}
	return caps
}
