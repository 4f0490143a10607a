// Package store is the client for the shared remote store. The contract is
// deliberately small: two collections (orders keyed by sanitized user id,
// one settings singleton), full-document replace, full-collection delete,
// and a push channel that fires on any change. There are no partial
// updates and no server-side validation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"class-order/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadOrders reads the whole orders collection as one snapshot.
func (s *Store) LoadOrders(ctx context.Context) (map[string]models.Order, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, doc FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer rows.Close()

	orders := make(map[string]models.Order)
	for rows.Next() {
		var userID string
		var doc []byte
		if err := rows.Scan(&userID, &doc); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var o models.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", userID, err)
		}
		o.Normalize()
		orders[userID] = o
	}
	return orders, rows.Err()
}

// LoadSettings reads the settings singleton. The second return value is
// false when no settings document has been written yet.
func (s *Store) LoadSettings(ctx context.Context) (models.SystemSettings, bool, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SystemSettings{}, false, nil
	}
	if err != nil {
		return models.SystemSettings{}, false, fmt.Errorf("load settings: %w", err)
	}
	var st models.SystemSettings
	if err := json.Unmarshal(doc, &st); err != nil {
		return models.SystemSettings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	return st, true, nil
}

// PutOrder replaces the full order document for one user.
func (s *Store) PutOrder(ctx context.Context, userID string, o models.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (user_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			doc = $2,
			updated_at = now()`,
		userID, doc,
	)
	if err != nil {
		return fmt.Errorf("put order %s: %w", userID, err)
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", userID, err)
	}
	return nil
}

func (s *Store) DeleteAllOrders(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return fmt.Errorf("delete all orders: %w", err)
	}
	return nil
}

// PutSettings replaces the settings singleton document.
func (s *Store) PutSettings(ctx context.Context, st models.SystemSettings) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO settings (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			doc = $1,
			updated_at = now()`,
		doc,
	)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
