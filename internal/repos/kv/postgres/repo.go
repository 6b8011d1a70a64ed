package kv

import (
	"database/sql"

	"github.com/fastprodman/billionspend/internal/repos/kv"
)

var _ kv.Store = (*kvRepo)(nil)

type kvRepo struct{ db *sql.DB }

func New(db *sql.DB) *kvRepo {
	return &kvRepo{db: db}
}
