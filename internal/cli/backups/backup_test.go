package backups

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitboard/internal/backup"
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/cli"
	"github.com/julianstephens/habitboard/internal/config"
	"github.com/julianstephens/habitboard/internal/storage/postgres"
	"github.com/julianstephens/habitboard/internal/storage/sqlite"
	"github.com/julianstephens/habitboard/internal/storage/storagetest"
)

func setupContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitboard.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx, err := cli.NewContext(context.Background(), store, &config.Config{Timezone: "UTC"}, "")
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestBackupCreateAndList(t *testing.T) {
	ctx := setupContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() failed: %v", err)
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestBackupRestoreByFilename(t *testing.T) {
	ctx := setupContext(t)
	user, err := ctx.User()
	if err != nil {
		t.Fatal(err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	storagetest.NewHabit(t, ctx.Store, user.ID, "Read", "08:00", calendar.MustDate(2024, 3, 1))

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(path), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() failed: %v", err)
	}

	if err := ctx.Store.Load(ctx.Ctx()); err != nil {
		t.Fatal(err)
	}
	habits, err := ctx.Store.GetAllHabits(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Errorf("expected the pre-habit snapshot to be restored, got %d habits", len(habits))
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx := setupContext(t)

	cmd := &BackupRestoreCmd{BackupFile: "habitboard-19990101-0000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("restore of a missing backup should fail")
	}
	if _, err := os.Stat(ctx.Store.GetConfigPath()); err != nil {
		t.Errorf("database should be untouched: %v", err)
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://user@localhost/habitboard")}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("backup create should fail for PostgreSQL")
	}
}
