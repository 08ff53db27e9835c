package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitboard/internal/cli"
	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/storage"
	"github.com/julianstephens/habitboard/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	u, err := ctx.Service.EnsureDefaultUser(ctx.Ctx())
	if err != nil {
		return err
	}
	fmt.Printf("Default user: @%s (friend code %s)\n", u.Username, u.FriendCode)
	return nil
}

// reset deletes an existing SQLite file. PostgreSQL databases are never
// dropped from here.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	if postgres.IsConnString(c.Source) || strings.Contains(c.Source, "host=") {
		if valid, err := postgres.ValidateConnString(c.Source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	snap, err := storage.Export(ctx.Ctx(), source)
	if err != nil {
		return fmt.Errorf("failed to read source database: %w", err)
	}
	if err := ctx.Store.Import(ctx.Ctx(), snap); err != nil {
		return fmt.Errorf("failed to write destination database: %w", err)
	}

	fmt.Printf("    Migrated %d users\n", len(snap.Users))
	fmt.Printf("    Migrated %d habits\n", len(snap.Habits))
	fmt.Printf("    Migrated %d logs\n", len(snap.Logs))
	fmt.Printf("    Migrated %d friendships\n", len(snap.Friendships))
	return nil
}
