// Package sequence allocates the per-order sequence numbers carried on published events.
package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const nextSQL = `
	INSERT INTO event_sequence (partition_key, last_sequence)
	VALUES ($1, 1)
	ON CONFLICT (partition_key)
	DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = now()
	RETURNING last_sequence`

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps sequences in the event_sequence table so numbering survives restarts
// and stays monotonic across replicas.
type Postgres struct {
	q Querier
}

func NewPostgres(q Querier) *Postgres {
	return &Postgres{q: q}
}

func (p *Postgres) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	var seq int64
	if err := p.q.QueryRow(ctx, nextSQL, partitionKey).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", partitionKey, err)
	}
	return seq, nil
}
