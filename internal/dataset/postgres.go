package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/config"
)

// PostgresSource supplies the reference corpus from a Postgres table. It is
// the database-side input acquisition collaborator; the matching core only
// ever sees the rectangular table it returns.
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres connects using the standard PG* environment variables.
func OpenPostgres() (*PostgresSource, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "user")
	password := config.GetEnv("PGPASSWORD", "password")
	dbname := config.GetEnv("PGDATABASE", "matching")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &PostgresSource{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Ping verifies connectivity.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ReferenceTable loads the named columns of a reference table, ordered by
// physical insertion so repeated runs see the same row order. NULLs load as
// empty strings.
func (s *PostgresSource) ReferenceTable(ctx context.Context, table string, columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no reference columns configured for table %q", table)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY ctid",
		strings.Join(quoted, ", "), pq.QuoteIdentifier(table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying reference table %s: %w", table, err)
	}
	defer rows.Close()

	values := make([][]string, len(columns))
	scan := make([]sql.NullString, len(columns))
	targets := make([]interface{}, len(columns))
	for i := range scan {
		targets[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning reference row: %w", err)
		}
		for i, cell := range scan {
			value := ""
			if cell.Valid {
				value = cell.String
			}
			values[i] = append(values[i], value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reference rows: %w", err)
	}

	result := NewTable()
	for i, name := range columns {
		if err := result.AddColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}
