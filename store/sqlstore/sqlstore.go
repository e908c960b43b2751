// Package sqlstore implements store.Store over the WordPress database tables
// (wp_posts, wp_users, wp_comments, wp_terms...). MySQL is the native
// backend; PostgreSQL (through pgx) and SQLite are supported for ports and tests.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/gocipe/wpgraphql/store"
)

var _ store.Store = (*Store)(nil)

// ErrUnsupportedKind is returned for kinds that do not live in the database.
var ErrUnsupportedKind = errors.New("sqlstore: kind is not stored in the database")

// Kinds lists the kinds served by this store.
var Kinds = []store.Kind{
	store.KindPost, store.KindUser, store.KindComment,
	store.KindTerm, store.KindMenu, store.KindMenuItem,
}

// Dialect selects placeholder syntax and the database/sql driver.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case MySQL:
		return "mysql", nil
	case Postgres:
		return "pgx", nil
	case SQLite:
		return "sqlite", nil
	}
	return "", fmt.Errorf("sqlstore: unknown driver %q", string(d))
}

// Options configures Open.
type Options struct {
	Driver       Dialect
	DSN          string
	TablePrefix  string
	MaxOpenConns int
	MaxIdleConns int
	Logger       *zap.Logger
}

// Store reads WordPress records through database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	prefix  string
	logger  *zap.Logger
}

// Open opens a connection pool as described by opts.
func Open(opts Options) (*Store, error) {
	driverName, err := opts.Driver.driverName()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, opts.DSN)
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	return New(db, opts.Driver, opts.TablePrefix, opts.Logger), nil
}

// New wraps an existing pool.
func New(db *sql.DB, dialect Dialect, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = "wp_"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, dialect: dialect, prefix: prefix, logger: logger}
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) table(name string) string {
	return s.prefix + name
}

// rebind rewrites ? placeholders for dialects that number them.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) Get(ctx context.Context, kind store.Kind, id string) (*store.Record, error) {
	switch kind {
	case store.KindPost:
		return s.one(ctx, kind, s.postSelect()+" WHERE p.ID = ?", postColumns, id)
	case store.KindMenuItem:
		rec, err := s.one(ctx, kind, s.postSelect()+" WHERE p.ID = ? AND p.post_type = 'nav_menu_item'", postColumns, id)
		if err != nil {
			return nil, err
		}
		return rec, s.loadMenuItemMeta(ctx, rec)
	case store.KindUser:
		rec, err := s.one(ctx, kind, s.userSelect()+" WHERE ID = ?", userColumns, id)
		if err != nil {
			return nil, err
		}
		return rec, s.loadUserMeta(ctx, rec)
	case store.KindComment:
		return s.one(ctx, kind, s.commentSelect()+" WHERE comment_ID = ?", commentColumns, id)
	case store.KindTerm:
		return s.one(ctx, kind, s.termSelect()+" WHERE t.term_id = ?", termColumns, id)
	case store.KindMenu:
		return s.one(ctx, kind, s.termSelect()+" WHERE t.term_id = ? AND tt.taxonomy = 'nav_menu'", termColumns, id)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

func (s *Store) GetByName(ctx context.Context, kind store.Kind, name string) (*store.Record, error) {
	switch kind {
	case store.KindPost:
		return s.one(ctx, kind, s.postSelect()+" WHERE p.post_name = ? ORDER BY p.ID", postColumns, name)
	case store.KindUser:
		rec, err := s.one(ctx, kind, s.userSelect()+" WHERE user_login = ? OR user_nicename = ?", userColumns, name, name)
		if err != nil {
			return nil, err
		}
		return rec, s.loadUserMeta(ctx, rec)
	case store.KindTerm:
		return s.one(ctx, kind, s.termSelect()+" WHERE t.slug = ? OR t.name = ? ORDER BY t.term_id", termColumns, name, name)
	case store.KindMenu:
		return s.one(ctx, kind, s.termSelect()+" WHERE (t.slug = ? OR t.name = ?) AND tt.taxonomy = 'nav_menu' ORDER BY t.term_id", termColumns, name, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

func (s *Store) List(ctx context.Context, kind store.Kind, filter store.Filter) ([]*store.Record, error) {
	switch kind {
	case store.KindPost:
		q, args := s.postQuery(filter)
		return s.many(ctx, kind, q, postColumns, args...)
	case store.KindMenuItem:
		q, args := s.menuItemQuery(filter)
		recs, err := s.many(ctx, kind, q, postColumns, args...)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if err := s.loadMenuItemMeta(ctx, rec); err != nil {
				return nil, err
			}
		}
		return recs, nil
	case store.KindUser:
		q := s.userSelect() + " ORDER BY ID" + s.window(filter)
		recs, err := s.many(ctx, kind, q, userColumns)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if err := s.loadUserMeta(ctx, rec); err != nil {
				return nil, err
			}
		}
		return recs, nil
	case store.KindComment:
		q, args := s.commentQuery(filter)
		return s.many(ctx, kind, q, commentColumns, args...)
	case store.KindTerm:
		q, args := s.termQuery(filter, "")
		return s.many(ctx, kind, q, termColumns, args...)
	case store.KindMenu:
		q, args := s.termQuery(filter, "nav_menu")
		return s.many(ctx, kind, q, termColumns, args...)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

// window renders LIMIT/OFFSET. A zero limit returns every row, as in
// store.Filter.Window. An offset without a limit still needs a LIMIT
// clause on MySQL.
func (s *Store) window(f store.Filter) string {
	limit := int64(-1)
	if f.Limit != nil && *f.Limit > 0 {
		limit = int64(*f.Limit)
	}
	offset := 0
	if f.Offset != nil && *f.Offset > 0 {
		offset = *f.Offset
	}
	switch {
	case limit < 0 && offset == 0:
		return ""
	case limit < 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", int64(1<<62), offset)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

func (s *Store) one(ctx context.Context, kind store.Kind, query string, cols []string, args ...interface{}) (*store.Record, error) {
	recs, err := s.many(ctx, kind, query, cols, args...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.ErrNotFound
	}
	return recs[0], nil
}

func (s *Store) many(ctx context.Context, kind store.Kind, query string, cols []string, args ...interface{}) ([]*store.Record, error) {
	query = s.rebind(query)
	s.logger.Debug("query", zap.String("kind", string(kind)), zap.String("sql", query))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query %s: %w", kind, err)
	}
	defer rows.Close()

	recs := make([]*store.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlstore: scan %s: %w", kind, err)
		}
		data := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			data[col] = normalize(values[i])
		}
		recs = append(recs, store.NewRecord(kind, data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: rows %s: %w", kind, err)
	}
	return recs, nil
}

// normalize turns driver byte slices into strings so the values serialize as
// GraphQL strings.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(list []int64) []interface{} {
	out := make([]interface{}, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}

func stringArgs(list []string) []interface{} {
	out := make([]interface{}, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}
