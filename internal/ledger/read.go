package ledger

import (
	"context"
	"fmt"
	"time"
)

// ListOrdered returns every record in sequence order.
// Returns an empty slice (not nil) for an empty ledger.
func (s *Store) ListOrdered(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, created_at, payload, content_hash
		FROM records
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec       Record
			createdAt float64
		)
		if err := rows.Scan(&rec.Seq, &createdAt, &rec.Payload, &rec.ContentHash); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.CreatedAt = time.Unix(0, int64(createdAt*float64(time.Second)))
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Count returns the number of records in the ledger.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
