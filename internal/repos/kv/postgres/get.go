package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/billionspend/internal/repos/kv"
)

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := r.db.QueryRowContext(ctx, `
		SELECT value::text
		FROM kv_store
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	return []byte(value), nil
}
