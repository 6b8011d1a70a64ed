package kv

import (
	"database/sql"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/fastprodman/billionspend/internal/infra/pgtestutil"
	"github.com/fastprodman/billionspend/internal/repos/kv"
)

func TestKV_Get_TableDriven(t *testing.T) {
	t.Parallel()

	type tc struct {
		name      string
		seed      func(db *sql.DB, t *testing.T)
		key       string
		wantValue string
		wantErr   error
	}

	tests := []tc{
		{
			name: "ok_key_exists",
			seed: func(db *sql.DB, t *testing.T) {
				pgtestutil.PutRaw(t, db, "@gameState", `{"currentBudget": 42}`)
			},
			key:       "@gameState",
			wantValue: `{"currentBudget":42}`,
		},
		{
			name:    "error_key_missing",
			seed:    nil,
			key:     "@nothing",
			wantErr: kv.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := pgtestutil.NewTestDB(t)

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			got, err := repo.Get(t.Context(), tt.key)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertSameJSON(t, tt.wantValue, string(got))
		})
	}
}

func assertSameJSON(t *testing.T, want, got string) {
	t.Helper()

	var w, g any

	err := json.Unmarshal([]byte(want), &w)
	if err != nil {
		t.Fatalf("bad want json: %v", err)
	}

	err = json.Unmarshal([]byte(got), &g)
	if err != nil {
		t.Fatalf("bad got json %q: %v", got, err)
	}

	if !reflect.DeepEqual(w, g) {
		t.Fatalf("json mismatch:\nwant %s\ngot  %s", want, got)
	}
}
