package system

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitboard/internal/cli"
	"github.com/julianstephens/habitboard/internal/config"
	"github.com/julianstephens/habitboard/internal/storage/sqlite"
)

// newTestContext returns a context over an uninitialized SQLite store.
func newTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitboard.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	ctx, err := cli.NewContext(context.Background(), store, &config.Config{Timezone: "UTC"}, "")
	if err != nil {
		t.Fatalf("NewContext() failed: %v", err)
	}
	return ctx, dbPath
}

// newInitializedContext is newTestContext after Init.
func newInitializedContext(t *testing.T) *cli.Context {
	t.Helper()
	ctx, _ := newTestContext(t)
	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return ctx
}
