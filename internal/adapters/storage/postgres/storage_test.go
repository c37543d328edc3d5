package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"automix-bot/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresStore_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotSQL string
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				return pgconn.NewCommandTag("CREATE TABLE"), nil
			},
		}

		if err := newStore(mockDB, DefaultKey).Migrate(ctx); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(gotSQL, "CREATE TABLE IF NOT EXISTS leaderboard_message") {
			t.Errorf("unexpected migration SQL: %s", gotSQL)
		}
	})

	t.Run("Error", func(t *testing.T) {
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("permission denied")
			},
		}

		if err := newStore(mockDB, DefaultKey).Migrate(ctx); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

func TestPostgresStore_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotArgs []any
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotArgs = args
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		}

		err := newStore(mockDB, "board").Sync(ctx, domain.MessageIdentity{ID: "123"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(gotArgs) != 2 || gotArgs[0] != "board" || gotArgs[1] != "123" {
			t.Errorf("unexpected args: %v", gotArgs)
		}
	})

	t.Run("Error", func(t *testing.T) {
		mockDB := &MockDB{
			ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("db error")
			},
		}

		if err := newStore(mockDB, DefaultKey).Sync(ctx, domain.MessageIdentity{ID: "1"}); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

func TestPostgresStore_Restore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		scan    func(dest ...any) error
		wantID  string
		wantErr error
	}{
		{
			name: "Found",
			scan: func(dest ...any) error {
				*dest[0].(*string) = "987"
				return nil
			},
			wantID: "987",
		},
		{
			name:    "NoRows",
			scan:    func(dest ...any) error { return pgx.ErrNoRows },
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "EmptyID",
			scan:    func(dest ...any) error { return nil },
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDB{
				QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
					return &MockRow{ScanFunc: tt.scan}
				},
			}

			got, err := newStore(mockDB, DefaultKey).Restore(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("expected %s, got %s", tt.wantID, got.ID)
			}
		})
	}

	t.Run("QueryError", func(t *testing.T) {
		mockDB := &MockDB{
			QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				return &MockRow{ScanFunc: func(dest ...any) error { return errors.New("conn reset") }}
			},
		}

		_, err := newStore(mockDB, DefaultKey).Restore(ctx)
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected query error, got %v", err)
		}
	})
}

func TestPostgresStore_Name(t *testing.T) {
	if got := newStore(&MockDB{}, DefaultKey).Name(); got != "postgres" {
		t.Errorf("expected postgres, got %s", got)
	}
}
