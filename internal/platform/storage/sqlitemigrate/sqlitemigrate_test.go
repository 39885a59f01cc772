package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testFS(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate-test.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return sqlDB
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	err := ApplyMigrations(nil, testFS(nil))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyMigrationsCreatesTables(t *testing.T) {
	sqlDB := openTestDB(t)

	err := ApplyMigrations(sqlDB, testFS(map[string]string{
		"0001_things.sql": "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT NOT NULL);",
	}))
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (name) VALUES ('a')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
}

func TestApplyMigrationsRunsEachFileOnce(t *testing.T) {
	sqlDB := openTestDB(t)
	migrations := testFS(map[string]string{
		"0001_things.sql": "CREATE TABLE things (id INTEGER PRIMARY KEY);",
	})

	if err := ApplyMigrations(sqlDB, migrations); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := ApplyMigrations(sqlDB, migrations); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var count int
	row := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestApplyMigrationsOrdersByFilename(t *testing.T) {
	sqlDB := openTestDB(t)

	err := ApplyMigrations(sqlDB, testFS(map[string]string{
		"0002_add_column.sql": "ALTER TABLE things ADD COLUMN name TEXT;",
		"0001_things.sql":     "CREATE TABLE things (id INTEGER PRIMARY KEY);",
	}))
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	sqlDB := openTestDB(t)
	if _, err := sqlDB.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	_, err := sqlDB.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY)")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAlreadyExistsError(err) {
		t.Fatalf("expected already-exists classification, got %v", err)
	}
}
