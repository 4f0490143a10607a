package store

import (
	"context"
	"os"
	"testing"
	"time"

	"class-order/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore connects to the database named by TEST_DATABASE_URL, or skips.
// The schema must already be migrated.
func testStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return New(pool)
}

func TestOrderRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	userID := "it-05"
	defer s.DeleteOrder(ctx, userID)

	o := models.Order{
		ID:         "ord_store_test",
		UserID:     userID,
		UserName:   "小明",
		SeatNumber: "05",
		Items:      []models.CartLine{},
		Status:     models.StatusDraft,
		Timestamp:  time.Now().UnixMilli(),
	}
	require.NoError(t, s.PutOrder(ctx, userID, o))

	orders, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	got, ok := orders[userID]
	require.True(t, ok)
	assert.Equal(t, o.ID, got.ID)
	// The jsonb document drops the empty items sequence; loading
	// restores it.
	assert.NotNil(t, got.Items)

	// Upsert replaces the whole document.
	o.Status = models.StatusSubmitted
	require.NoError(t, s.PutOrder(ctx, userID, o))
	orders, err = s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, orders[userID].Status)

	require.NoError(t, s.DeleteOrder(ctx, userID))
	orders, err = s.LoadOrders(ctx)
	require.NoError(t, err)
	_, ok = orders[userID]
	assert.False(t, ok)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	want := models.DefaultSettings()
	want.MaxPrice = 185
	require.NoError(t, s.PutSettings(ctx, want))

	got, ok, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestWatchSignalsOnWrite(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	// Give the listener a moment to attach before writing.
	time.Sleep(500 * time.Millisecond)

	userID := "it-watch"
	defer s.DeleteOrder(context.Background(), userID)
	require.NoError(t, s.PutOrder(ctx, userID, models.Order{
		ID: "ord_watch_test", UserID: userID, Status: models.StatusDraft,
	}))

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after write")
	}
}
