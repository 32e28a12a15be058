package repo

import (
	"context"
	"testing"
	"time"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store/storetest"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestGet_ScansRecord(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	db := &storetest.DB{OnQuery: func(_ string, args []any) ([][]any, error) {
		if args[0] != int64(1) {
			return nil, nil
		}
		return [][]any{{int64(1), "helpdesk", true, "secret-token-abcd", nil, created, created}}, nil
	}}
	r := NewPG().Bind(db)

	rec, err := r.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Name != "helpdesk" || rec.Token != "secret-token-abcd" || rec.TokenRotatedAt != nil {
		t.Fatalf("unexpected record %+v", rec)
	}
	if v := rec.View(); v.TokenHint != "****abcd" {
		t.Fatalf("hint = %q", v.TokenHint)
	}

	if _, err := r.Get(context.Background(), 2); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestInsert_DuplicateToken(t *testing.T) {
	db := &storetest.DB{OnQuery: func(string, []any) ([][]any, error) {
		return nil, &pgconn.PgError{Code: "23505", ConstraintName: "discord_bot_discord_bot_token_key"}
	}}
	_, err := NewPG().Bind(db).Insert(context.Background(), "x", true, "0123456789")
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("want duplicate key, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "bot_token" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestWrites_ZeroRowsIsNotFound(t *testing.T) {
	db := &storetest.DB{OnExec: func(string, []any) (int64, error) { return 0, nil }}
	r := NewPG().Bind(db)
	ctx := context.Background()

	if err := r.Update(ctx, 1, "x", true); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Update: want not found, got %v", err)
	}
	if err := r.RotateToken(ctx, 1, "0123456789"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("RotateToken: want not found, got %v", err)
	}
	if err := r.Delete(ctx, 1); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Delete: want not found, got %v", err)
	}
	if n, err := r.DeletePersonas(ctx, 1, "__p__"); err != nil || n != 0 {
		t.Fatalf("DeletePersonas: n=%d err=%v", n, err)
	}
	if !db.Saw("starts_with(name, $2)") {
		t.Fatalf("persona cleanup must match by prefix")
	}
}
