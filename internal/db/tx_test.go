package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		db.Close()
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM test_table`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestWithTx_Success(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if got := countRows(t, db); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	testErr := errors.New("test error")

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test"); err != nil {
			return err
		}
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Fatalf("WithTx should return the error: got %v, want %v", err, testErr)
	}

	if got := countRows(t, db); got != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", got)
	}
}

func TestWithTxContext_Canceled(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithTxContext(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test")
		return err
	})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if got := countRows(t, db); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestScanInt64s(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, v := range []string{"a", "b", "c"} {
		if _, err := db.Exec(`INSERT INTO test_table (value) VALUES (?)`, v); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	rows, err := db.Query(`SELECT id FROM test_table WHERE id IN (`+Placeholders(2)+`) ORDER BY id`,
		Int64Args([]int64{1, 3})...)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	ids, err := ScanInt64s(rows)
	if err != nil {
		t.Fatalf("ScanInt64s: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestNullHelpers(t *testing.T) {
	if got := NullInt64Value(sql.NullInt64{}); got != 0 {
		t.Errorf("NullInt64Value(invalid) = %d, want 0", got)
	}
	if got := NullInt64Value(sql.NullInt64{Int64: 7, Valid: true}); got != 7 {
		t.Errorf("NullInt64Value(7) = %d, want 7", got)
	}
	if got := NullStringValue(sql.NullString{}); got != "" {
		t.Errorf("NullStringValue(invalid) = %q, want empty", got)
	}
	if got := NullStringValue(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("NullStringValue(x) = %q, want x", got)
	}
}
