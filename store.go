package stripehelper

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/billdeck/stripehelper/internal/enrichdb"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store reads order/user enrichment rows from the relational store. The
// connection is opened lazily on first use; the export pipeline issues
// exactly one batched query per run, and any failure is fatal to the run.
type Store struct {
	driverName string
	dataSource string
	debug      *DebugLogger

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// NewStore prepares a store for the given DSN without connecting.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, ErrNoEnrichmentStore
	}
	driver, source := enrichdb.DriverForDSN(dsn)
	return &Store{driverName: driver, dataSource: source}, nil
}

// NewStoreWithDB wraps an already-open database handle. Used by tests to
// inject sqlmock or a prepared fixture database.
func NewStoreWithDB(db *sql.DB, driverName string) *Store {
	return &Store{driverName: driverName, db: db}
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open(s.driverName, s.dataSource)
	if err != nil {
		return nil, fmt.Errorf("store: open %s connection: %w", s.driverName, err)
	}
	s.db = db
	return db, nil
}

// lookupQuery joins subscription → order → user and projects the three
// enrichment fields, keyed by Stripe subscription ID.
const lookupQuery = `
SELECT s.stripe_subscription_id, o.created_at, u.id, u.parse_id
FROM subscriptions s
JOIN orders o ON o.id = s.order_id
JOIN users u ON u.id = o.user_id
WHERE s.stripe_subscription_id IN (%s)`

// Lookup fetches enrichment rows for every given subscription ID in a single
// IN (...) query and returns them keyed by subscription ID. IDs with no match
// are simply absent from the result; that is not an error.
func (s *Store) Lookup(ctx context.Context, ids []string) (map[string]EnrichmentRow, error) {
	result := make(map[string]EnrichmentRow, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(lookupQuery, enrichdb.Placeholders(s.driverName, len(ids), 0))

	s.debug.LogQuery(s.driverName, len(ids))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: enrichment lookup: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row       EnrichmentRow
			orderDate dbTime
		)
		if err := rows.Scan(&row.SubscriptionID, &orderDate, &row.UserID, &row.ParseID); err != nil {
			return nil, fmt.Errorf("store: scan enrichment row: %w", err)
		}
		row.OrderDate = orderDate.Time
		result[row.SubscriptionID] = row
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate enrichment rows: %w", err)
	}

	return result, nil
}

// Close closes the underlying connection if one was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// dbTime scans a timestamp column across drivers: lib/pq yields time.Time,
// SQLite yields TEXT.
type dbTime struct {
	Time  time.Time
	Valid bool
}

var dbTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (d *dbTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		d.Time, d.Valid = v.UTC(), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("store: cannot scan %T into timestamp", value)
	}
}

func (d *dbTime) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dbTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("store: unparseable timestamp %q", s)
}
