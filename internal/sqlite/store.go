package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// maxBindVars caps the number of bind parameters per statement. Membership
// predicates larger than this are split into several statements inside one
// logical call.
const maxBindVars = 999

// identPattern matches the table and column identifiers the survey schema
// uses. Anything else is rejected before it reaches a statement.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store implements types.Reader and types.Writer over a SQLite database
// file. Entity names are validated against the schema graph; column names
// against identPattern.
type Store struct {
	mu    sync.RWMutex
	db    *sql.DB
	graph *schema.Graph
}

// Open opens (or creates) the database file and verifies the connection.
func Open(path string, graph *schema.Graph) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return &Store{db: db, graph: graph}, nil
}

// Init creates the survey tables if they do not exist.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return types.ErrStoreClosed
	}
	for _, stmt := range createStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close releases the database connection. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// FetchIDs returns the primary keys of rows matching the predicate.
func (s *Store) FetchIDs(ctx context.Context, entity string, p types.Predicate) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ent, err := s.check(entity, p)
	if err != nil {
		return nil, err
	}
	if len(p.Values) == 0 {
		return nil, nil
	}

	var ids []string
	for _, chunk := range chunks(p.Values) {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s)",
			ent.KeyField, ent.Name, p.Field, placeholders(len(chunk)))
		rows, err := s.db.QueryContext(ctx, query, args(chunk)...)
		if err != nil {
			return nil, fmt.Errorf("select %s ids: %w", entity, err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s id: %w", entity, err)
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate %s ids: %w", entity, err)
		}
		rows.Close()
	}
	return ids, nil
}

// FetchRows returns the full rows matching the predicate, ordered by primary
// key so that output is stable across invocations.
func (s *Store) FetchRows(ctx context.Context, entity string, p types.Predicate) ([]types.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ent, err := s.check(entity, p)
	if err != nil {
		return nil, err
	}
	if len(p.Values) == 0 {
		return nil, nil
	}

	var out []types.Row
	for _, chunk := range chunks(p.Values) {
		query := fmt.Sprintf("SELECT * FROM %s WHERE %s IN (%s) ORDER BY %s",
			ent.Name, p.Field, placeholders(len(chunk)), ent.KeyField)
		rows, err := s.db.QueryContext(ctx, query, args(chunk)...)
		if err != nil {
			return nil, fmt.Errorf("select %s rows: %w", entity, err)
		}
		scanned, err := scanRows(rows)
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("scan %s rows: %w", entity, err)
		}
		out = append(out, scanned...)
	}
	return out, nil
}

// InsertRow inserts one row. Column order is sorted so statements are
// deterministic for identical rows.
func (s *Store) InsertRow(ctx context.Context, entity string, row types.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.ErrStoreClosed
	}
	ent, ok := s.graph.Entity(entity)
	if !ok {
		return fmt.Errorf("%s: %w", entity, types.ErrUnknownEntity)
	}
	if row.String(ent.KeyField) == "" {
		return types.ErrMissingKey
	}

	cols := make([]string, 0, len(row))
	for col := range row {
		if !identPattern.MatchString(col) {
			return fmt.Errorf("column %q: %w", col, types.ErrInvalidPredicate)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	vals := make([]any, 0, len(cols))
	for _, col := range cols {
		vals = append(vals, row[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ent.Name, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := s.db.ExecContext(ctx, query, vals...); err != nil {
		return fmt.Errorf("insert %s: %w", entity, err)
	}
	return nil
}

// check validates the entity name, predicate and store state for a read.
func (s *Store) check(entity string, p types.Predicate) (schema.Entity, error) {
	if s.db == nil {
		return schema.Entity{}, types.ErrStoreClosed
	}
	ent, ok := s.graph.Entity(entity)
	if !ok {
		return schema.Entity{}, fmt.Errorf("%s: %w", entity, types.ErrUnknownEntity)
	}
	if err := p.Validate(); err != nil {
		return schema.Entity{}, err
	}
	if !identPattern.MatchString(p.Field) {
		return schema.Entity{}, fmt.Errorf("field %q: %w", p.Field, types.ErrInvalidPredicate)
	}
	return ent, nil
}

// scanRows converts a generic result set into rows keyed by column name.
// BLOB and TEXT columns arrive as []byte from the driver and are normalized
// to string.
func scanRows(rows *sql.Rows) ([]types.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []types.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(types.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// chunks splits values into slices of at most maxBindVars elements.
func chunks(values []string) [][]string {
	var out [][]string
	for len(values) > maxBindVars {
		out = append(out, values[:maxBindVars])
		values = values[maxBindVars:]
	}
	if len(values) > 0 {
		out = append(out, values)
	}
	return out
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// args converts a string slice to driver arguments.
func args(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
