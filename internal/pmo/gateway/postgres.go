package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// PostgresGateway implements Gateway over a gorm Postgres connection.
// Rows are generic maps; statements are built per call with RETURNING so the
// canonical row (server-minted id, defaults) comes back in one round trip.
type PostgresGateway struct {
	db *gorm.DB
}

func NewPostgresGateway(db *gorm.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// Select fetches every row of a table.
func (g *PostgresGateway) Select(ctx context.Context, table string) ([]Row, error) {
	if !KnownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var rows []map[string]any
	if err := g.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}
	return out, nil
}

// Insert creates a row and returns it as persisted. When the caller omits
// "id" the column default (gen_random_uuid) mints the canonical id.
func (g *PostgresGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if !KnownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	cols, vals := orderedColumns(row)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), placeholders)

	var returned []map[string]any
	if err := g.db.WithContext(ctx).Raw(sql, vals...).Scan(&returned).Error; err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	if len(returned) == 0 {
		return nil, fmt.Errorf("insert %s: no row returned", table)
	}
	return Row(returned[0]), nil
}

// Update patches a row by id and returns it as persisted.
func (g *PostgresGateway) Update(ctx context.Context, table, id string, patch Row) (Row, error) {
	if !KnownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	cols, vals := orderedColumns(patch)
	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = c + " = ?"
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING *",
		table, strings.Join(assignments, ", "))
	vals = append(vals, id)

	var returned []map[string]any
	if err := g.db.WithContext(ctx).Raw(sql, vals...).Scan(&returned).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	if len(returned) == 0 {
		return nil, fmt.Errorf("update %s id=%s: %w", table, id, ErrNotFound)
	}
	return Row(returned[0]), nil
}

// Delete removes a row by id. Deleting an absent row is not an error; the
// store's ON DELETE CASCADE handles dependents of a project.
func (g *PostgresGateway) Delete(ctx context.Context, table, id string) error {
	if !KnownTable(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if err := g.db.WithContext(ctx).Exec(sql, id).Error; err != nil {
		return fmt.Errorf("delete %s id=%s: %w", table, id, err)
	}
	return nil
}

// orderedColumns yields a deterministic column order; "id" never appears in a
// patch applied by Update callers, but sorting keeps generated SQL stable
// either way.
func orderedColumns(row Row) ([]string, []any) {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = row[c]
	}
	return cols, vals
}
