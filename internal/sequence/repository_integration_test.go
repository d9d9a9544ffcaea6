//go:build integration

package sequence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/testutil"
)

func TestNextSequenceIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dsn := testutil.StartPostgres(t)
	require.NoError(t, db.RunMigrations(dsn, zap.NewNop()))
	// second run is a no-op
	require.NoError(t, db.RunMigrations(dsn, zap.NewNop()))

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgres(pool)
	for want := int64(1); want <= 3; want++ {
		got, err := repo.NextSequence(ctx, "ORD-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.NextSequence(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
