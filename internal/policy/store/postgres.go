package store

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSource reads the policy from the rdap_policy table.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource constructs a PostgreSQL-backed policy source.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// LoadAll returns every model type with its hidden fields, in table order.
func (s *PostgresSource) LoadAll(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT model_type, field_name
		FROM rdap_policy
		ORDER BY model_type, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query policy: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var modelType, field string
		if err := rows.Scan(&modelType, &field); err != nil {
			return nil, fmt.Errorf("scan policy row: %w", err)
		}
		out[modelType] = append(out[modelType], field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policy rows: %w", err)
	}
	return out, nil
}
