package sqlite

import (
	"fmt"
	"net/url"
	"testing"
)

// setupTestDB opens a migrated audit database in memory, wired like NewDB:
// a single-connection writer and a small reader pool sharing one store via
// cache=shared. The DSN name comes from t.Name() (percent-encoded so it
// cannot leak into the query string) to isolate parallel tests. Pragmas
// match the production DSN minus WAL, which does not apply in memory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := open(dsn, 1)
	if err != nil {
		t.Fatalf("open test writer: %v", err)
	}
	reader, err := open(dsn, 4)
	if err != nil {
		_ = writer.Close()
		t.Fatalf("open test reader: %v", err)
	}

	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
