package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/coreybb/shiftmate/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// dialect covers what differs between the SQL backends.
type dialect interface {
	placeholder(n int) string
	encode(column string, v any) any
	decode(column string, v any) any
}

// SQLStore is a Gateway over database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
	newID   func() string
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: d,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *SQLStore) Insert(ctx context.Context, c models.Collection, rec models.Record) (models.Record, error) {
	if err := checkRecordCollection(c); err != nil {
		return nil, failure("insert", c, err)
	}

	row := make(models.Record, len(rec)+2)
	for k, v := range rec {
		row[k] = v
	}
	if _, ok := row["id"]; !ok {
		row["id"] = s.newID()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = s.now().UTC()
	}

	query, args, err := s.buildInsert(c, row)
	if err != nil {
		return nil, failure("insert", c, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, failure("insert", c, err)
	}
	defer rows.Close()

	stored, err := scanRecords(rows, s.dialect)
	if err != nil {
		return nil, failure("insert", c, err)
	}
	if len(stored) != 1 {
		return nil, failure("insert", c, fmt.Errorf("expected 1 returned row, got %d", len(stored)))
	}

	slog.DebugContext(ctx, "Record stored", "collection", c, "id", stored[0]["id"])
	return stored[0], nil
}

func (s *SQLStore) ListByUser(ctx context.Context, c models.Collection, userID, orderField string, descending bool) ([]models.Record, error) {
	if err := checkRecordCollection(c); err != nil {
		return nil, failure("list", c, err)
	}
	if !hasColumn(c, orderField) {
		return nil, failure("list", c, fmt.Errorf("unknown order field %q", orderField))
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = %s ORDER BY %s %s",
		pq.QuoteIdentifier(string(c)),
		pq.QuoteIdentifier("user_id"),
		s.dialect.placeholder(1),
		pq.QuoteIdentifier(orderField),
		direction,
	)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, failure("list", c, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, s.dialect)
	if err != nil {
		return nil, failure("list", c, err)
	}
	return records, nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]models.Record, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s ORDER BY %s DESC",
		pq.QuoteIdentifier(string(models.CollectionUsers)),
		pq.QuoteIdentifier("created_at"),
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, failure("list", models.CollectionUsers, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, s.dialect)
	if err != nil {
		return nil, failure("list", models.CollectionUsers, err)
	}
	return records, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) buildInsert(c models.Collection, row models.Record) (string, []any, error) {
	columns := make([]string, 0, len(row))
	for col := range row {
		if !hasColumn(c, col) {
			return "", nil, fmt.Errorf("unknown column %q", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
		placeholders[i] = s.dialect.placeholder(i + 1)
		args[i] = s.dialect.encode(col, row[col])
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(string(c)),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args, nil
}

// scanRecords reads every row into a Record. NULL columns are left out.
func scanRecords(rows *sql.Rows, d dialect) ([]models.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := []models.Record{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(models.Record, len(columns))
		for i, col := range columns {
			v := values[i]
			if v == nil {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec[col] = d.decode(col, v)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}
