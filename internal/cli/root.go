package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitboard/internal/backup"
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/config"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/service"
	"github.com/julianstephens/habitboard/internal/storage"
	"github.com/julianstephens/habitboard/internal/storage/postgres"
	"github.com/julianstephens/habitboard/internal/storage/sqlite"
	"github.com/julianstephens/habitboard/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store   storage.Provider
	Service *service.Service
	Config  *config.Config
	// Username selects the acting user; empty means the default user.
	Username string

	ctx context.Context
}

// NewContext builds a command context over an unloaded store.
func NewContext(ctx context.Context, store storage.Provider, cfg *config.Config, username string) (*Context, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:    store,
		Config:   cfg,
		Username: username,
		Service: service.New(store, service.Options{
			Location:    loc,
			DefaultUser: cfg.DefaultUser,
		}),
		ctx: ctx,
	}, nil
}

// Ctx returns the context commands pass to blocking calls.
func (c *Context) Ctx() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// User resolves the acting user.
func (c *Context) User() (models.User, error) {
	return c.Service.CurrentUser(c.Ctx(), c.Username)
}

// IsSQLite reports whether the store is file backed.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates a backup of a SQLite store and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(c.Ctx()); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore returns the backend for target: a PostgreSQL connection string
// or a SQLite file path.
func OpenStore(target string) (storage.Provider, error) {
	if postgres.IsConnString(target) || strings.Contains(target, "host=") {
		return postgres.New(target), nil
	}
	if target == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	return sqlite.NewStore(utils.ExpandPath(target)), nil
}

// FindHabit matches ref against habit ids, then names (case-insensitive).
func FindHabit(habits []models.Habit, ref string) (models.Habit, error) {
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperrors.ErrUnknownHabit)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous, use its id", ref)
	}
}

// ParseDateOr parses a YYYY-MM-DD flag, falling back to fallback when empty.
func ParseDateOr(s string, fallback calendar.Date) (calendar.Date, error) {
	if s == "" {
		return fallback, nil
	}
	return calendar.ParseDate(s)
}

// Confirm asks a yes/no question on stdin.
func Confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N]: ")
	var response string
	if _, err := fmt.Fscanln(os.Stdin, &response); err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
