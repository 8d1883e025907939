package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/store/storetest"
)

func makeSqliteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "somnologia-test.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSqliteStore)
}
