package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/billionspend/internal/infra/pgutils"
)

// Remove deletes all keys in a single transaction. Missing keys are ignored.
func (r *kvRepo) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := pgutils.WithTx(ctx, r.db, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sql.Tx) error {
		for _, key := range keys {
			_, err := tx.ExecContext(ctx, `
				DELETE FROM kv_store
				WHERE key = $1
			`, key)
			if err != nil {
				return fmt.Errorf("delete %q: %w", key, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("remove keys: %w", err)
	}

	return nil
}
