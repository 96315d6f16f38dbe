package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/replicaudit/internal/merkle"
)

// Append inserts a new record and returns its assigned sequence number.
// The insertion time and the payload's content hash are recorded with it.
//
// There is no update or delete counterpart: the log only grows.
func (s *Store) Append(ctx context.Context, payload string) (int64, error) {
	createdAt := float64(time.Now().UnixNano()) / float64(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO records (created_at, payload, content_hash)
		VALUES (?, ?, ?)
	`,
		createdAt,
		payload,
		merkle.SumString(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append record: last insert id: %w", err)
	}

	return seq, nil
}
